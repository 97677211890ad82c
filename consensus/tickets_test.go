package consensus

import (
	"testing"

	"github.com/eth2030/sassafras/crypto"
)

func TestAppendTicketsFillsSegmentsInOrder(t *testing.T) {
	s := newTestState(8)

	batch := make([]crypto.TicketId, 0, 200)
	for i := uint64(0); i < 200; i++ {
		batch = append(batch, idFromUint64(i))
	}
	s.AppendTickets(batch)

	if s.TicketsMeta.UnsortedTicketsCount != 200 {
		t.Fatalf("UnsortedTicketsCount = %d, want 200", s.TicketsMeta.UnsortedTicketsCount)
	}

	total := 0
	for _, seg := range s.UnsortedSegments {
		if len(seg) > SegmentMaxSize {
			t.Fatalf("segment exceeds SegmentMaxSize: len=%d", len(seg))
		}
		total += len(seg)
	}
	if total != 200 {
		t.Fatalf("sum of segment lengths = %d, want 200", total)
	}
	if len(s.UnsortedSegments[0]) != SegmentMaxSize || len(s.UnsortedSegments[1]) != 200-SegmentMaxSize {
		t.Fatalf("segment lengths = %d, %d, want %d, %d", len(s.UnsortedSegments[0]), len(s.UnsortedSegments[1]), SegmentMaxSize, 200-SegmentMaxSize)
	}
	if s.UnsortedSegments[1][0] != idFromUint64(SegmentMaxSize) {
		t.Fatalf("segment 1 starts with %x, want id %d", s.UnsortedSegments[1][0].Bytes(), SegmentMaxSize)
	}
}

func TestAppendTicketsInvariantUnsortedCountMatchesSegments(t *testing.T) {
	s := newTestState(8)
	for _, n := range []int{5, 130, 1, 250} {
		batch := make([]crypto.TicketId, n)
		for i := range batch {
			batch[i] = idFromUint64(uint64(i + 1))
		}
		s.AppendTickets(batch)

		var total uint32
		for _, seg := range s.UnsortedSegments {
			total += uint32(len(seg))
		}
		if total != s.TicketsMeta.UnsortedTicketsCount {
			t.Fatalf("invariant violated: sum(segments)=%d != unsorted_tickets_count=%d", total, s.TicketsMeta.UnsortedTicketsCount)
		}
	}
}

func TestClearEpochHalfRemovesTicketsDataAndResetsCount(t *testing.T) {
	s := newTestState(4)
	tag := uint8(0)
	s.TicketsIds[tag] = map[uint32]crypto.TicketId{}
	for i := uint32(0); i < 3; i++ {
		id := idFromUint64(uint64(i))
		s.TicketsIds[tag][i] = id
		s.TicketsData[id] = crypto.TicketBody{AttemptIdx: i}
	}
	s.TicketsMeta.TicketsCount[tag] = 3

	s.clearEpochHalf(tag)

	if s.TicketsMeta.TicketsCount[tag] != 0 {
		t.Errorf("TicketsCount[%d] = %d, want 0", tag, s.TicketsMeta.TicketsCount[tag])
	}
	if len(s.TicketsData) != 0 {
		t.Errorf("expected TicketsData to be empty, got %d entries", len(s.TicketsData))
	}
}

func TestResetTicketsDataClearsEverything(t *testing.T) {
	s := newTestState(4)
	s.AppendTickets([]crypto.TicketId{idFromUint64(1), idFromUint64(2)})
	s.TicketsData[idFromUint64(1)] = crypto.TicketBody{}
	s.SortedCandidates = []crypto.TicketId{idFromUint64(1)}
	s.TicketsMeta.TicketsCount[0] = 1

	s.resetTicketsData()

	if s.TicketsMeta.UnsortedTicketsCount != 0 {
		t.Errorf("UnsortedTicketsCount = %d, want 0", s.TicketsMeta.UnsortedTicketsCount)
	}
	if s.TicketsMeta.TicketsCount[0] != 0 || s.TicketsMeta.TicketsCount[1] != 0 {
		t.Errorf("TicketsCount = %v, want [0 0]", s.TicketsMeta.TicketsCount)
	}
	if len(s.TicketsData) != 0 {
		t.Errorf("expected TicketsData empty after reset")
	}
	if len(s.UnsortedSegments) != 0 {
		t.Errorf("expected UnsortedSegments empty after reset")
	}
	if s.SortedCandidates != nil {
		t.Errorf("expected SortedCandidates nil after reset")
	}
}
