package consensus

import (
	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// DepositSlotRandomness folds a newly observed per-slot randomness value
// into RandomnessAccumulator (spec §4.3 on_finalize step 2).
func (s *State) DepositSlotRandomness(randomness types.Randomness) {
	s.RandomnessAccumulator = crypto.FoldSlotRandomness(s.RandomnessAccumulator, randomness)
}

// UpdateEpochRandomness enacts current epoch randomness on epoch change:
// promotes NextRandomness into CurrentRandomness, then recomputes
// NextRandomness from the accumulator folded with the just-promoted
// current randomness and nextEpochIndex, the index of the epoch after the
// one now beginning (EnactEpochChange passes epochIdx+1). Returns
// the newly computed NextRandomness. Mirrors update_epoch_randomness in
// the original pallet; order matters (spec §4.3 step 5).
func (s *State) UpdateEpochRandomness(nextEpochIndex types.EpochIndex) types.Randomness {
	currEpochRandomness := s.NextRandomness
	s.CurrentRandomness = currEpochRandomness
	next := crypto.FoldEpochRandomness(s.RandomnessAccumulator, currEpochRandomness, nextEpochIndex)
	s.NextRandomness = next
	return next
}

// slotContribution computes this block's contribution to the randomness
// accumulator from the slot claim's VRF output (spec §4.3 on_finalize
// step 1): input = slot_claim_input(...), randomness =
// make_bytes(output, RandomnessVrfContext, input).
func slotContribution(output crypto.VrfOutput, input crypto.VrfInput) types.Randomness {
	return types.Randomness(crypto.MakeBytes(output, RandomnessVrfContext, input))
}
