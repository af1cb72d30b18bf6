package domain

import (
	"encoding/json"
	"testing"
)

func TestTruncate3(t *testing.T) {
	tests := []struct {
		in   float64
		want Score
	}{
		{0.8421, 0.842},
		{0.8429, 0.842},
		{0.9999, 0.999},
		{0.1, 0.1},
		{0, 0},
		{1, 1},
	}

	for _, tt := range tests {
		if got := Truncate3(tt.in); got != tt.want {
			t.Errorf("Truncate3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestScoreMarshalJSON(t *testing.T) {
	tests := []struct {
		in   Score
		want string
	}{
		{Truncate3(0.8421), "0.842"},
		{Truncate3(0.9999), "0.999"},
		{Truncate3(0.5), "0.500"},
		{Truncate3(1), "1.000"},
		{Truncate3(0), "0.000"},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.in)
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.in, err)
		}
		if string(data) != tt.want {
			t.Errorf("marshal %v = %s, want %s", float64(tt.in), data, tt.want)
		}
	}
}

func TestScoreRoundTripInResult(t *testing.T) {
	result := DeveloperResult{
		ID:         "u1",
		Username:   "alice",
		Similarity: Truncate3(0.87654),
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded DeveloperResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Similarity != 0.876 {
		t.Errorf("similarity = %v, want 0.876", decoded.Similarity)
	}
}
