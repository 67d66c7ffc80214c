package siescene

import "testing"

func TestClampf(t *testing.T) {
	testCases := []struct {
		name            string
		value, min, max float64
		want            float64
	}{
		{"Inside", 0.5, 0, 1, 0.5},
		{"Below", -2, 0, 1, 0},
		{"Above", 3, 0, 1, 1},
		{"On edge", 1, 0, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampf(tc.value, tc.min, tc.max); got != tc.want {
				t.Errorf("clampf(%v, %v, %v) = %v, want %v", tc.value, tc.min, tc.max, got, tc.want)
			}
		})
	}
}
