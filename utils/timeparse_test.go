package utils

import "testing"

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"17:00", "17:00"},
		{"9:00", "09:00"},
		{"09:30", "09:30"},
		{"5pm", "17:00"},
		{"5 pm", "17:00"},
		{"5:30pm", "17:30"},
		{"5:30 PM", "17:30"},
		{"11am", "11:00"},
		{"12am", "00:00"},
		{"12pm", "12:00"},
		{"12:30am", "00:30"},
		{"9", "09:00"},
		{"  10:00  ", "10:00"},
		{"٥ مساء", "17:00"},
		{"٥:٣٠ مساءً", "17:30"},
		{"٩ صباحا", "09:00"},
		{"٩ ص", "09:00"},
		{"٥ م", "17:00"},
		{"١٢ ظهرا", "12:00"},
	}
	for _, c := range cases {
		got, err := NormalizeTime(c.in)
		if err != nil {
			t.Errorf("NormalizeTime(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeTime(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTime_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "noon", "25:00", "13pm", "0am", "10:75", "5:3pm", "17:00:00",
	} {
		if got, err := NormalizeTime(in); err == nil {
			t.Errorf("NormalizeTime(%q) = %q, expected error", in, got)
		}
	}
}
