package consensus

import (
	"sort"

	"github.com/eth2030/sassafras/crypto"
)

// SlotTicketIndex computes the outside-in slot-to-ticket-index permutation
// for a slot offset within an epoch of the given length (spec §4.2):
//
//	idx(s) = 2*s + 1        if s < L/2
//	idx(s) = 2*(L - 1 - s)  if s >= L/2
func SlotTicketIndex(slotIdx, epochLength uint64) uint64 {
	if slotIdx < epochLength/2 {
		return 2*slotIdx + 1
	}
	return 2 * (epochLength - (slotIdx + 1))
}

// SortTickets performs at most maxSegments segment consumptions of the
// lexicographic incremental sort (spec §4.2 sort_tickets). It loads
// SortedCandidates, consumes the highest-indexed unsorted segments,
// filtering by the current admission upper bound and evicting stale
// TicketsData as it goes, truncating to MaxTickets whenever the staging
// vector overflows it. If the unsorted backlog is fully drained, the
// result is committed into TicketsIds under epochTag; otherwise the
// partial result is kept in SortedCandidates for a future call.
func (s *State) SortTickets(maxSegments uint32, epochTag uint8, meter WeightMeter) {
	meter.ChargeSortSegments(int(maxSegments))
	unsortedSegmentsCount := ceilDiv(s.TicketsMeta.UnsortedTicketsCount, SegmentMaxSize)
	if maxSegments > unsortedSegmentsCount {
		maxSegments = unsortedSegmentsCount
	}
	maxTickets := int(s.Params.MaxTickets())

	candidates := s.SortedCandidates
	s.SortedCandidates = nil

	requireSort := maxSegments != 0

	upperBound := crypto.TicketIdMax
	if len(candidates) >= maxTickets && maxTickets > 0 {
		upperBound = candidates[maxTickets-1]
	}

	for i := uint32(0); i < maxSegments; i++ {
		unsortedSegmentsCount--
		segment := s.UnsortedSegments[unsortedSegmentsCount]
		delete(s.UnsortedSegments, unsortedSegmentsCount)
		s.TicketsMeta.UnsortedTicketsCount -= uint32(len(segment))

		for _, id := range segment {
			if id.Less(upperBound) {
				candidates = append(candidates, id)
			} else {
				delete(s.TicketsData, id)
			}
		}

		if len(candidates) > maxTickets {
			requireSort = false
			sortTicketIds(candidates)
			for _, id := range candidates[maxTickets:] {
				delete(s.TicketsData, id)
			}
			candidates = candidates[:maxTickets]
			upperBound = candidates[maxTickets-1]
		}
	}

	if requireSort {
		sortTicketIds(candidates)
	}

	if s.TicketsMeta.UnsortedTicketsCount == 0 {
		next := map[uint32]crypto.TicketId{}
		for i, id := range candidates {
			next[uint32(i)] = id
		}
		s.TicketsIds[epochTag] = next
		s.TicketsMeta.TicketsCount[epochTag] = uint32(len(candidates))
	} else {
		s.SortedCandidates = candidates
	}
}

// sortTicketIds sorts ticket ids in place, ascending. Unstable is fine:
// ticket ids are 128-bit and pairwise distinct within the admitted set, so
// no tie-break policy is needed (spec §9 "Deterministic sort").
func sortTicketIds(ids []crypto.TicketId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
