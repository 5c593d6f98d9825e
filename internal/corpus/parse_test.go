package corpus

import "testing"

func TestParseSessionFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantNo   *int
		wantDate string
	}{
		{"number only", "Session 14.md", intPtr(14), ""},
		{"date and number", "2024-12-30 - Session 14.md", intPtr(14), "2024-12-30"},
		{"lowercase session", "session 3.md", intPtr(3), ""},
		{"no match", "notes.md", nil, ""},
		{"date only", "2025-01-15 downtime.md", nil, "2025-01-15"},
		{"date not at start ignored", "recap 2024-12-30.md", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNo, gotDate := ParseSessionFilename(tt.filename)
			if (gotNo == nil) != (tt.wantNo == nil) {
				t.Fatalf("session number presence mismatch: got %v, want %v", gotNo, tt.wantNo)
			}
			if gotNo != nil && *gotNo != *tt.wantNo {
				t.Errorf("session number = %d, want %d", *gotNo, *tt.wantNo)
			}
			if gotDate != tt.wantDate {
				t.Errorf("session date = %q, want %q", gotDate, tt.wantDate)
			}
		})
	}
}

func intPtr(n int) *int {
	return &n
}
