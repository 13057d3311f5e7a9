package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend keeps the snapshot in a MongoDB collection, one document per
// appointment keyed by _id.
type MongoBackend struct {
	coll *mongo.Collection
}

func NewMongoBackend(client *mongo.Client, dbName string) *MongoBackend {
	return &MongoBackend{
		coll: client.Database(dbName).Collection("appointments"),
	}
}

func (b *MongoBackend) Load(ctx context.Context) (map[string]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := b.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := make(map[string]models.Appointment)
	for cursor.Next(ctx) {
		var appt models.Appointment
		if err := cursor.Decode(&appt); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments[appt.ID] = appt
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error loading appointments: %w", err)
	}
	return appointments, nil
}

// Save upserts every record in the snapshot and prunes documents whose ids are
// no longer present, bringing the collection in line with the in-memory set.
func (b *MongoBackend) Save(ctx context.Context, appointments map[string]models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ids := make([]string, 0, len(appointments))
	writes := make([]mongo.WriteModel, 0, len(appointments))
	for id, appt := range appointments {
		ids = append(ids, id)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(appt).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		if _, err := b.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return fmt.Errorf("failed to upsert appointments: %w", err)
		}
	}
	if _, err := b.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
		return fmt.Errorf("failed to prune appointments: %w", err)
	}
	return nil
}
