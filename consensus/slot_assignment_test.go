package consensus

import "testing"

// Scenario C: outside-in assignment with EpochLength = 4.
// s=0 -> t1, s=1 -> t3, s=2 -> t2, s=3 -> t0.
func TestSlotTicketIndexOutsideIn(t *testing.T) {
	const length = 4
	cases := []struct {
		slotIdx uint64
		want    uint64
	}{
		{0, 1},
		{1, 3},
		{2, 2},
		{3, 0},
	}
	for _, c := range cases {
		got := SlotTicketIndex(c.slotIdx, length)
		if got != c.want {
			t.Errorf("SlotTicketIndex(%d, %d) = %d, want %d", c.slotIdx, length, got, c.want)
		}
	}
}

func TestSlotTicketIndexIsAPermutation(t *testing.T) {
	const length = 10
	seen := make(map[uint64]bool)
	for s := uint64(0); s < length; s++ {
		idx := SlotTicketIndex(s, length)
		if idx >= length {
			t.Fatalf("SlotTicketIndex(%d, %d) = %d out of range", s, length, idx)
		}
		if seen[idx] {
			t.Fatalf("SlotTicketIndex produced duplicate index %d for slot %d", idx, s)
		}
		seen[idx] = true
	}
	if len(seen) != length {
		t.Fatalf("expected a full permutation of %d indices, got %d", length, len(seen))
	}
}
