package consensus

import "github.com/eth2030/sassafras/crypto"

// AppendTickets bin-packs batch into UnsortedSegments, filling the tail of
// the current segment before opening a new one. The current segment
// cursor is floor(unsorted_tickets_count / SegmentMaxSize). Mirrors
// append_tickets in the original pallet exactly.
func (s *State) AppendTickets(batch []crypto.TicketId) {
	cursor := s.TicketsMeta.UnsortedTicketsCount / SegmentMaxSize
	remaining := batch
	for len(remaining) > 0 {
		seg := s.UnsortedSegments[cursor]
		free := SegmentMaxSize - len(seg)
		if free <= 0 {
			cursor++
			continue
		}
		take := free
		if take > len(remaining) {
			take = len(remaining)
		}
		s.UnsortedSegments[cursor] = append(seg, remaining[:take]...)
		remaining = remaining[take:]
		s.TicketsMeta.UnsortedTicketsCount += uint32(take)
		if len(remaining) > 0 {
			cursor++
		}
	}
}

// resetTicketsData fully clears tickets-related state: both halves of
// TicketsIds, all TicketsData entries, the unsorted segment backlog, the
// sorted-candidates staging buffer, and TicketsMeta. Invoked when one or
// more epochs were skipped (spec §4.3 step 3, scenario E), since every
// previously admitted ticket is now for an epoch that never happened.
func (s *State) resetTicketsData() {
	s.TicketsIds[0] = map[uint32]crypto.TicketId{}
	s.TicketsIds[1] = map[uint32]crypto.TicketId{}
	s.TicketsData = map[crypto.TicketId]crypto.TicketBody{}
	s.UnsortedSegments = map[uint32][]crypto.TicketId{}
	s.SortedCandidates = nil
	s.TicketsMeta = TicketsMetadata{}
}

// clearEpochHalf clears the ring-buffer half for tag, removing the
// corresponding TicketsData entries and resetting its count to zero
// (spec §4.3 step 9, invariant 7).
func (s *State) clearEpochHalf(tag uint8) {
	count := s.TicketsMeta.TicketsCount[tag]
	for idx := uint32(0); idx < count; idx++ {
		if id, ok := s.TicketsIds[tag][idx]; ok {
			delete(s.TicketsData, id)
			delete(s.TicketsIds[tag], idx)
		}
	}
	s.TicketsMeta.TicketsCount[tag] = 0
}

// SlotTicketId resolves which epoch half slot falls in by comparing its
// offset from the current epoch start against EpochLength and
// 2*EpochLength, opportunistically draining outstanding sort work for the
// next epoch before answering if needed, then returns the ticket assigned
// to that slot via the outside-in permutation (spec §4.2, §4.3).
func (s *State) SlotTicketId(slot uint64, epochStart uint64, meter WeightMeter) (crypto.TicketId, bool) {
	length := s.Params.EpochLength
	if slot < epochStart || slot >= epochStart+2*length {
		return crypto.TicketId{}, false
	}
	offset := slot - epochStart
	tag := s.currentEpochTag()
	slotIdx := offset
	if offset >= length {
		tag = s.nextEpochTag()
		slotIdx = offset - length
		if s.TicketsMeta.UnsortedTicketsCount > 0 {
			s.SortTickets(^uint32(0), tag, meter)
		}
	}
	idx := SlotTicketIndex(slotIdx, length)
	count := s.TicketsMeta.TicketsCount[tag]
	if idx >= uint64(count) {
		return crypto.TicketId{}, false
	}
	id, ok := s.TicketsIds[tag][uint32(idx)]
	return id, ok
}

// SlotTicket resolves the full (TicketId, TicketBody) pair assigned to a
// slot, or false if no ticket is assigned.
func (s *State) SlotTicket(slot uint64, epochStart uint64, meter WeightMeter) (crypto.TicketId, crypto.TicketBody, bool) {
	id, ok := s.SlotTicketId(slot, epochStart, meter)
	if !ok {
		return crypto.TicketId{}, crypto.TicketBody{}, false
	}
	body, ok := s.TicketsData[id]
	return id, body, ok
}
