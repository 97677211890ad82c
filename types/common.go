// Package types defines the small set of primitive values shared across
// the sassafras module: slots, epoch indices, randomness, and authority
// identifiers.
package types

import "fmt"

// Slot is a fixed-width time interval with a globally known index. Every
// block is stamped with exactly one slot.
type Slot uint64

// EpochIndex counts epochs since genesis. It is monotonically
// non-decreasing and may jump forward across skipped epochs.
type EpochIndex uint64

// RandomnessLength is the byte length of a Randomness value.
const RandomnessLength = 32

// Randomness is a 32-byte accumulated or per-epoch randomness value.
type Randomness [RandomnessLength]byte

// Bytes returns the byte representation of the randomness value.
func (r Randomness) Bytes() []byte { return r[:] }

// IsZero returns whether the randomness value is all zeros.
func (r Randomness) IsZero() bool { return r == Randomness{} }

// String implements fmt.Stringer.
func (r Randomness) String() string { return fmt.Sprintf("0x%x", r[:]) }

// AuthorityIdLength is the byte length of a compressed BLS12-381 G1 point,
// used as the public-key encoding for an AuthorityId.
const AuthorityIdLength = 48

// AuthorityId is the compressed public key identifying a validator eligible
// to author ring-VRF tickets and claim slots.
type AuthorityId [AuthorityIdLength]byte

// Bytes returns the byte representation of the authority id.
func (a AuthorityId) Bytes() []byte { return a[:] }

// IsZero returns whether the authority id is all zeros.
func (a AuthorityId) IsZero() bool { return a == AuthorityId{} }

// String implements fmt.Stringer.
func (a AuthorityId) String() string { return fmt.Sprintf("0x%x", a[:]) }

// BytesToAuthorityId converts a byte slice to an AuthorityId, left-padding
// if shorter than AuthorityIdLength and truncating from the left if longer.
func BytesToAuthorityId(b []byte) AuthorityId {
	var a AuthorityId
	if len(b) > AuthorityIdLength {
		b = b[len(b)-AuthorityIdLength:]
	}
	copy(a[AuthorityIdLength-len(b):], b)
	return a
}
