package consensus

import (
	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// EpochChangeTrigger decides, on every block, whether to enact an epoch
// change. The originating pallet ships two strategies: one that defers
// entirely to an external session-rotation authority, and one that
// recycles the current authority set when nothing else rotates it.
type EpochChangeTrigger interface {
	// Trigger is called from OnInitialize with the block number just
	// initialized. Implementations that decide to rotate call
	// s.EnactEpochChange themselves.
	Trigger(s *State, blockNum uint64, digest Digest, meter WeightMeter)
}

// ExternalTrigger defers epoch rotation entirely to an external
// session-management component (e.g. a validator-set pallet) that is
// expected to call EnactEpochChange itself when it rotates. This trigger
// never calls it on its own.
type ExternalTrigger struct{}

func (ExternalTrigger) Trigger(*State, uint64, Digest, WeightMeter) {}

// InternalTrigger rotates the epoch by recycling the current
// authority/next-authority sets whenever ShouldEndEpoch reports the
// current epoch is over, the same way the original pallet's default
// trigger implementation calls enact_epoch_change(NextAuthorities,
// NextAuthorities) when nothing external has updated the rotation.
type InternalTrigger struct{}

func (InternalTrigger) Trigger(s *State, blockNum uint64, digest Digest, meter WeightMeter) {
	if s.ShouldEndEpoch(blockNum) {
		s.EnactEpochChange(s.NextAuthorities, s.NextAuthorities, digest, meter)
	}
}

// ShouldEndEpoch reports whether the current epoch has run its full
// length: true iff blockNum > 1 and the current slot index has reached or
// exceeded EpochLength (spec §4.3).
func (s *State) ShouldEndEpoch(blockNum uint64) bool {
	return blockNum > 1 && s.CurrentSlotIndex() >= s.Params.EpochLength
}

// OnInitialize processes the block-start hook: reads the slot claim from
// the header digest (panicking if absent — any valid block must carry
// one), records the claim into CurrentSlot and ClaimTemporaryData, sets
// GenesisSlot and deposits the initial epoch descriptor on block 1, and
// finally invokes the configured EpochChangeTrigger (spec §4.3).
func (s *State) OnInitialize(blockNum uint64, digest Digest, trigger EpochChangeTrigger, meter WeightMeter) {
	meter.ChargeOnInitialize()

	claim, ok := digest.SlotClaim()
	if !ok {
		panicViolation("missing slot claim in block digest")
	}

	s.CurrentSlot = claim.Slot

	if blockNum == 1 {
		s.GenesisSlot = claim.Slot
		digest.DepositNextEpochDescriptor(NextEpochDescriptor{
			Randomness:  s.NextRandomness,
			Authorities: append([]types.AuthorityId(nil), s.NextAuthorities...),
			Config:      s.NextEpochConfigValue,
		})
	}

	output, ok := claim.Signature.Output()
	if ok {
		s.ClaimTemporaryData = &output
	} else {
		s.ClaimTemporaryData = nil
	}

	trigger.Trigger(s, blockNum, digest, meter)
}

// OnFinalize processes the block-end hook: folds this block's slot-claim
// VRF output into the randomness accumulator, clears ClaimTemporaryData,
// and, once past the epoch midpoint, runs one bounded incremental sort
// pass sized so that all outstanding segments finish sorting before the
// epoch boundary (spec §4.3, §4.2 "Scheduling").
func (s *State) OnFinalize(meter WeightMeter) {
	if s.ClaimTemporaryData != nil {
		input := crypto.SlotClaimVrfInput(s.CurrentRandomness, s.CurrentSlot, s.EpochIndexValue)
		s.DepositSlotRandomness(slotContribution(*s.ClaimTemporaryData, input))
	}
	s.ClaimTemporaryData = nil

	slotIdx := s.CurrentSlotIndex()
	midpoint := s.Params.Midpoint()
	if slotIdx >= midpoint && s.TicketsMeta.UnsortedTicketsCount > 0 {
		slotsLeft := uint64(1)
		if s.Params.EpochLength > slotIdx {
			slotsLeft = s.Params.EpochLength - slotIdx
		}
		passSize := ceilDiv(s.TicketsMeta.UnsortedTicketsCount, SegmentMaxSize*uint32(slotsLeft))
		if passSize == 0 {
			passSize = 1
		}
		s.SortTickets(passSize, s.nextEpochTag(), meter)
	}
}

// EnactEpochChange rotates authorities, randomness, config and tickets
// into the next epoch (spec §4.3). authorities/nextAuthorities are the
// values to install as the new Authorities/NextAuthorities; a caller that
// recycles (InternalTrigger) passes the same slice for both.
func (s *State) EnactEpochChange(authorities, nextAuthorities []types.AuthorityId, digest Digest, meter WeightMeter) {
	if !authorityListsEqual(nextAuthorities, authorities) {
		s.UpdateRingVerifier(nextAuthorities, meter)
	}
	s.Authorities = append([]types.AuthorityId(nil), authorities...)
	s.NextAuthorities = append([]types.AuthorityId(nil), nextAuthorities...)

	epochIdx := s.EpochIndexValue + 1
	epochStart := s.EpochStart(epochIdx)
	slotIdx := uint64(0)
	if s.CurrentSlot > epochStart {
		slotIdx = uint64(s.CurrentSlot) - uint64(epochStart)
	}
	if slotIdx >= s.Params.EpochLength {
		// Detected one or more skipped epochs: invalidate all tickets and
		// advance the epoch index to the epoch containing CurrentSlot.
		s.resetTicketsData()
		skipped := slotIdx / s.Params.EpochLength
		epochIdx += types.EpochIndex(skipped)
		logger.Warn("detected skipped epochs", "count", skipped, "resuming_at", epochIdx)
	}
	s.EpochIndexValue = epochIdx

	nextRandomness := s.UpdateEpochRandomness(epochIdx + 1)

	// NextEpochConfig::take() semantics: promote into EpochConfig then
	// clear, so the descriptor below reports only what PendingEpochConfigChange
	// (if any) just promoted into it.
	if s.NextEpochConfigValue != nil {
		s.EpochConfigValue = *s.NextEpochConfigValue
	}
	s.NextEpochConfigValue = nil
	if s.PendingEpochConfigChange != nil {
		cfg := *s.PendingEpochConfigChange
		s.NextEpochConfigValue = &cfg
		s.PendingEpochConfigChange = nil
	}

	digest.DepositNextEpochDescriptor(NextEpochDescriptor{
		Randomness:  nextRandomness,
		Authorities: append([]types.AuthorityId(nil), nextAuthorities...),
		Config:      s.NextEpochConfigValue,
	})

	tag := uint8(epochIdx % 2)
	if s.TicketsMeta.UnsortedTicketsCount != 0 {
		s.SortTickets(^uint32(0), tag, meter)
	}

	prevTag := tag ^ 1
	if s.TicketsMeta.TicketsCount[prevTag] != 0 {
		s.clearEpochHalf(prevTag)
	}
}
