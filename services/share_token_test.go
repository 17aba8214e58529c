package services

import (
	"encoding/hex"
	"testing"
)

func TestGenerateShareToken(t *testing.T) {
	token, err := GenerateShareToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(token) != ShareTokenBytes*2 {
		t.Fatalf("token length %d, want %d", len(token), ShareTokenBytes*2)
	}

	raw, err := hex.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not hex: %v", err)
	}
	if len(raw) != ShareTokenBytes {
		t.Fatalf("decoded length %d, want %d", len(raw), ShareTokenBytes)
	}
}

func TestGenerateShareTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := GenerateShareToken()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[token] = true
	}
}
