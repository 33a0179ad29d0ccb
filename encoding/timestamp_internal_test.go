package encoding

import "testing"

func TestReverseNanos(t *testing.T) {
	tests := []struct {
		nanos   int
		decimal int
	}{
		{0, 0},
		{1, 100000000},
		{1000, 100000},
		{123000000, 321},
		{999999999, 999999999},
		{100000000, 1},
		{120000000, 21},
	}

	for _, test := range tests {
		if decimal := reverseNanos(test.nanos); decimal != test.decimal {
			t.Errorf("reverseNanos(%d): want=%d got=%d", test.nanos, test.decimal, decimal)
		}
		if nanos := unreverseNanos(test.decimal); nanos != test.nanos {
			t.Errorf("unreverseNanos(%d): want=%d got=%d", test.decimal, test.nanos, nanos)
		}
	}
}
