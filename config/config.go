package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Persistence. When DATABASE_URL is set the Mongo backend is used,
	// otherwise appointments are snapshotted to APPOINTMENTS_FILE.
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseName     string `mapstructure:"DATABASE_NAME"`
	AppointmentsFile string `mapstructure:"APPOINTMENTS_FILE"`

	// Redis configuration. Leave REDIS_ADDR empty to disable the
	// availability cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	SlotCacheTTL  int    `mapstructure:"SLOT_CACHE_TTL_SECONDS"`

	// Clinic hours and slot grid.
	ClinicOpenTime  string `mapstructure:"CLINIC_OPEN_TIME"`
	ClinicCloseTime string `mapstructure:"CLINIC_CLOSE_TIME"`
	LunchStartTime  string `mapstructure:"LUNCH_START_TIME"`
	LunchEndTime    string `mapstructure:"LUNCH_END_TIME"`
	SlotMinutes     int    `mapstructure:"SLOT_MINUTES"`
	ScheduleDays    int    `mapstructure:"SCHEDULE_DAYS_AHEAD"`

	// Booking rules.
	MinAdvanceHours   int `mapstructure:"MIN_ADVANCE_HOURS"`
	MaxAdvanceDays    int `mapstructure:"MAX_ADVANCE_DAYS"`
	CancellationHours int `mapstructure:"CANCELLATION_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_NAME", "clinicbook")
	viper.SetDefault("APPOINTMENTS_FILE", "appointments.json")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("SLOT_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("CLINIC_OPEN_TIME", "09:00")
	viper.SetDefault("CLINIC_CLOSE_TIME", "18:00")
	viper.SetDefault("LUNCH_START_TIME", "12:00")
	viper.SetDefault("LUNCH_END_TIME", "13:00")
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("SCHEDULE_DAYS_AHEAD", 90)
	viper.SetDefault("MIN_ADVANCE_HOURS", 2)
	viper.SetDefault("MAX_ADVANCE_DAYS", 90)
	viper.SetDefault("CANCELLATION_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
