package crypto

import "github.com/holiman/uint256"

// TicketIdThreshold computes the admission threshold for ticket ids: the
// largest TicketId value (exclusive) a submitted ticket may have in order
// to be accepted into the lottery.
//
// The formula follows the originating pallet's ticket_id_threshold: the
// fraction (redundancy_factor * epoch_length) / (attempts_number *
// validator_count), clamped to [0, 1], scaled across the full 128-bit
// TicketId range. A denominator of zero (no attempts configured, or no
// validators) saturates the threshold to TicketIdMax rather than
// dividing by zero. EpochConfig.Validate in consensus/params.go rejects a
// zero attempts_number as InvalidConfiguration; an empty validator set is
// not rejected anywhere, so the arithmetic itself must not panic.
func TicketIdThreshold(redundancyFactor, epochLength, attemptsNumber, validatorCount uint32) TicketId {
	num := new(uint256.Int).Mul(
		uint256.NewInt(uint64(redundancyFactor)),
		uint256.NewInt(uint64(epochLength)),
	)
	den := new(uint256.Int).Mul(
		uint256.NewInt(uint64(attemptsNumber)),
		uint256.NewInt(uint64(validatorCount)),
	)
	if den.IsZero() || num.Cmp(den) >= 0 {
		return TicketIdMax
	}

	// scaled = floor(maxTicket * num / den), computed in 256-bit arithmetic.
	// maxTicket ~ 2^128 and num fits comfortably in 64 bits, so their
	// product fits well within 256 bits with no overflow.
	maxTicket := TicketIdMax.Uint256()
	scaled := new(uint256.Int).Mul(maxTicket, num)
	scaled.Div(scaled, den)
	return ticketIdFromUint256(scaled)
}
