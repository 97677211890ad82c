package consensus

import (
	"golang.org/x/crypto/blake2b"

	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// ValidTransaction describes the outcome of ValidateUnsignedSubmitTickets:
// the priority, longevity, and propagation hints the host's transaction
// pool attaches to an accepted unsigned submit_tickets call (spec §4.1
// pre-pool validation).
type ValidTransaction struct {
	Priority  uint64
	Longevity uint64
	Tag       [32]byte
	Propagate bool
}

// ValidateUnsignedSubmitTickets is the pre-pool gate: run before a
// submit_tickets call is admitted to the transaction pool, performing no
// state writes. Rejects external sources ("bad signer") and submissions
// past the epoch midpoint ("stale"); otherwise returns maximum-priority
// transaction validity bounded by the slots remaining until the midpoint.
func (s *State) ValidateUnsignedSubmitTickets(source TransactionSource, tickets []TicketEnvelope) (ValidTransaction, error) {
	if source == SourceExternal {
		return ValidTransaction{}, ErrBadSigner
	}
	slotIdx := s.CurrentSlotIndex()
	midpoint := s.Params.Midpoint()
	if slotIdx > midpoint {
		return ValidTransaction{}, ErrStale
	}

	tag := blake2b.Sum256(encodeTicketEnvelopes(tickets))
	return ValidTransaction{
		Priority:  ^uint64(0),
		Longevity: midpoint - slotIdx,
		Tag:       tag,
		Propagate: true,
	}, nil
}

// encodeTicketEnvelopes produces a deterministic byte encoding of a batch
// of envelopes for the pool's duplicate-detection tag; any stable encoding
// suffices since it is used only for tagging, not consensus.
func encodeTicketEnvelopes(tickets []TicketEnvelope) []byte {
	var buf []byte
	for _, t := range tickets {
		var abuf [4]byte
		abuf[0] = byte(t.Body.AttemptIdx)
		abuf[1] = byte(t.Body.AttemptIdx >> 8)
		abuf[2] = byte(t.Body.AttemptIdx >> 16)
		abuf[3] = byte(t.Body.AttemptIdx >> 24)
		buf = append(buf, abuf[:]...)
		buf = append(buf, t.Body.Extra...)
		buf = append(buf, t.Signature.Proof...)
	}
	return buf
}

// SubmitTickets is the in-block dispatch for submit_tickets (spec §4.1
// dispatch semantics). It requires an unsigned origin (enforced by the
// caller routing only unsigned calls here) and a ready RingVerifierData,
// validates each envelope independently and silently drops invalid ones,
// and appends every surviving ticket id in one batch via AppendTickets.
// The only hard error is an uninitialized verifier; individual envelope
// failures never roll back prior successful insertions within the same
// call.
func (s *State) SubmitTickets(tickets []TicketEnvelope, meter WeightMeter) error {
	meter.ChargeSubmitTickets(len(tickets))

	if s.RingVerifierData.IsZero() {
		return ErrRingVerifierNotReady
	}

	threshold := crypto.TicketIdThreshold(
		s.activeEpochConfig().RedundancyFactor,
		uint32(s.Params.EpochLength),
		s.activeEpochConfig().AttemptsNumber,
		uint32(len(s.NextAuthorities)),
	)
	randomness := s.NextRandomness
	epochIdx := s.EpochIndexValue + 1

	var accepted []crypto.TicketId
	for attempt, envelope := range tickets {
		id, reason, ok := s.validateEnvelope(envelope, randomness, epochIdx, threshold)
		if !ok {
			logger.Debug("dropped ticket envelope", "attempt", attempt, "reason", reason)
			continue
		}
		s.TicketsData[id] = envelope.Body
		accepted = append(accepted, id)
	}

	if len(accepted) > 0 {
		s.AppendTickets(accepted)
	}
	return nil
}

// validateEnvelope runs the per-envelope checks of spec §4.1 step 5,
// returning the computed ticket id, whether the envelope was accepted,
// and, when rejected, the specific dropReason so callers and tests can
// assert on why a ticket was dropped (spec §2.2 "Silent drops").
func (s *State) validateEnvelope(envelope TicketEnvelope, randomness types.Randomness, epochIdx types.EpochIndex, threshold crypto.TicketId) (crypto.TicketId, dropReason, bool) {
	input := crypto.TicketIdVrfInput(randomness, envelope.Body.AttemptIdx, epochIdx)

	output, ok := envelope.Signature.Output()
	if !ok {
		return crypto.TicketId{}, dropMissingVrfOutput, false
	}

	id := crypto.MakeTicketId(input, output)
	if !id.Less(threshold) {
		return crypto.TicketId{}, dropThresholdMiss, false
	}
	if _, exists := s.TicketsData[id]; exists {
		return crypto.TicketId{}, dropDuplicate, false
	}

	signData := crypto.BodySignData(envelope.Body, input)
	if !envelope.Signature.RingVrfVerify(signData, s.RingVerifierData) {
		return crypto.TicketId{}, dropBadProof, false
	}

	return id, "", true
}

// SubmitTicketsUnsignedExtrinsic is the fire-and-forget helper for
// off-chain workers (spec §6 downstream interface): it attempts to submit
// tickets as an unsigned local extrinsic via the host's transaction pool,
// returning whether submission succeeded. It never validates the tickets
// itself — that happens via ValidateUnsignedSubmitTickets/SubmitTickets
// once the extrinsic is included.
func SubmitTicketsUnsignedExtrinsic(pool TxPool, tickets []TicketEnvelope) bool {
	if pool == nil {
		return false
	}
	return pool.SubmitUnsigned(tickets) == nil
}
