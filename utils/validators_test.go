package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Passw0rd!", true},
		{"abc1!x", true},
		{"short", false},
		{"noNumbers!", false},
		{"nospecial123", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidatePassword(tc.password); got != tc.valid {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.valid)
		}
	}
}

func TestValidateObjectID(t *testing.T) {
	if !ValidateObjectID(uuid.NewString()) {
		t.Error("valid uuid rejected")
	}
	for _, bad := range []string{"", "not-a-uuid", "12345", "' OR 1=1 --"} {
		if ValidateObjectID(bad) {
			t.Errorf("ValidateObjectID(%q) = true, want false", bad)
		}
	}
}

func TestValidateReminderTime(t *testing.T) {
	if !ValidateReminderTime("2026-09-01T10:00:00Z") {
		t.Error("RFC3339 timestamp rejected")
	}
	if !ValidateReminderTime("2026-09-01T10:00:00+02:00") {
		t.Error("RFC3339 timestamp with offset rejected")
	}
	for _, bad := range []string{"", "tomorrow", "2026-09-01", "01/09/2026 10:00"} {
		if ValidateReminderTime(bad) {
			t.Errorf("ValidateReminderTime(%q) = true, want false", bad)
		}
	}
}
