package payment

import "testing"

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		major int
		want  int
	}{
		{250, 25000},
		{1, 100},
		{0, 0},
		{999, 99900},
	}
	for _, tt := range tests {
		if got := toMinorUnits(tt.major); got != tt.want {
			t.Errorf("toMinorUnits(%d) = %d, want %d", tt.major, got, tt.want)
		}
	}
}
