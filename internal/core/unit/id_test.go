package unit

import "testing"

func TestGenerateUnitID(t *testing.T) {
	tests := []struct {
		lastIssued int
		want       string
	}{
		{0, "UNIT-001"},
		{9, "UNIT-010"},
		{999, "UNIT-1000"},
	}

	for _, tt := range tests {
		if got := GenerateUnitID(tt.lastIssued); got != tt.want {
			t.Errorf("GenerateUnitID(%d) = %q, want %q", tt.lastIssued, got, tt.want)
		}
	}
}
