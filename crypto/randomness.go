package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/eth2030/sassafras/types"
)

// blake2_256 hashes buf with blake2b-256, matching the hashing::blake2_256
// primitive the original pallet folds randomness with.
func blake2_256(buf []byte) types.Randomness {
	sum := blake2b.Sum256(buf)
	return types.Randomness(sum)
}

// FoldSlotRandomness folds a newly observed per-slot randomness value into
// the running accumulator: accumulator' = blake2_256(accumulator ||
// randomness). Mirrors deposit_slot_randomness in the original pallet,
// called once per block from the slot claim's VRF output.
func FoldSlotRandomness(accumulator, randomness types.Randomness) types.Randomness {
	var buf [2 * types.RandomnessLength]byte
	copy(buf[:types.RandomnessLength], accumulator.Bytes())
	copy(buf[types.RandomnessLength:], randomness.Bytes())
	return blake2_256(buf[:])
}

// FoldEpochRandomness derives the next epoch's randomness value from the
// current accumulator, the current epoch's randomness, and the index of
// the epoch this randomness will become active for:
// next = blake2_256(accumulator || currentEpochRandomness || nextEpochIndex).
// Mirrors update_epoch_randomness in the original pallet.
func FoldEpochRandomness(accumulator, currentEpochRandomness types.Randomness, nextEpochIndex types.EpochIndex) types.Randomness {
	var buf [2*types.RandomnessLength + 8]byte
	copy(buf[:types.RandomnessLength], accumulator.Bytes())
	copy(buf[types.RandomnessLength:2*types.RandomnessLength], currentEpochRandomness.Bytes())
	binary.LittleEndian.PutUint64(buf[2*types.RandomnessLength:], uint64(nextEpochIndex))
	return blake2_256(buf[:])
}
