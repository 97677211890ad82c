package crypto

import (
	"fmt"

	"github.com/holiman/uint256"
)

// TicketIdLength is the byte length of a TicketId (128 bits).
const TicketIdLength = 16

// TicketId is a 128-bit value derived from a VRF input/output pair. Ticket
// ids are admitted into the lottery only below a per-epoch threshold and
// are otherwise opaque, comparable values.
type TicketId [TicketIdLength]byte

// TicketIdMax is the largest representable TicketId, used as the sorter's
// initial upper bound before any tickets have been accepted.
var TicketIdMax = func() TicketId {
	var id TicketId
	for i := range id {
		id[i] = 0xff
	}
	return id
}()

// Bytes returns the big-endian byte representation of the id.
func (t TicketId) Bytes() []byte { return t[:] }

// String renders the id the way the original pallet logs it: zero-padded
// lowercase hex, 32 digits.
func (t TicketId) String() string { return fmt.Sprintf("%032x", t[:]) }

// Uint256 returns the id as a big-endian 256-bit integer (top 128 bits
// zero), suitable for the threshold arithmetic in threshold.go.
func (t TicketId) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes(t[:])
}

// Cmp returns -1, 0 or +1 as t is numerically less than, equal to, or
// greater than other.
func (t TicketId) Cmp(other TicketId) int {
	for i := 0; i < TicketIdLength; i++ {
		if t[i] != other[i] {
			if t[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether t sorts strictly before other.
func (t TicketId) Less(other TicketId) bool { return t.Cmp(other) < 0 }

// ticketIdFromUint256 truncates a uint256.Int to its low 128 bits and
// returns the big-endian TicketId encoding.
func ticketIdFromUint256(v *uint256.Int) TicketId {
	var id TicketId
	b := v.Bytes32()
	copy(id[:], b[16:32])
	return id
}
