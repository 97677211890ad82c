package consensus

import (
	"testing"

	"github.com/eth2030/sassafras/crypto"
)

// TestValidateEnvelopeReportsDropReason asserts on the specific dropReason
// returned for each rejection path in validateEnvelope (spec §2.2 "Silent
// drops").
func TestValidateEnvelopeReportsDropReason(t *testing.T) {
	s := newReadyState(8, 3)
	threshold := crypto.TicketIdThreshold(
		s.EpochConfigValue.RedundancyFactor,
		uint32(s.Params.EpochLength),
		s.EpochConfigValue.AttemptsNumber,
		uint32(len(s.NextAuthorities)),
	)
	epochIdx := s.EpochIndexValue + 1

	t.Run("missing vrf output", func(t *testing.T) {
		envelope := TicketEnvelope{
			Body:      crypto.TicketBody{AttemptIdx: 1},
			Signature: crypto.RingVrfSignature{},
		}
		_, reason, ok := s.validateEnvelope(envelope, s.NextRandomness, epochIdx, threshold)
		if ok || reason != dropMissingVrfOutput {
			t.Errorf("reason = %q, ok = %v, want %q, false", reason, ok, dropMissingVrfOutput)
		}
	})

	t.Run("threshold miss", func(t *testing.T) {
		env := signedEnvelope(s, 1, epochIdx)
		zeroThreshold := crypto.TicketId{}
		_, reason, ok := s.validateEnvelope(env, s.NextRandomness, epochIdx, zeroThreshold)
		if ok || reason != dropThresholdMiss {
			t.Errorf("reason = %q, ok = %v, want %q, false", reason, ok, dropThresholdMiss)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		s := newReadyState(8, 3)
		s.EpochConfigValue = EpochConfig{RedundancyFactor: 100, AttemptsNumber: 1} // saturate threshold
		saturated := crypto.TicketIdThreshold(
			s.EpochConfigValue.RedundancyFactor,
			uint32(s.Params.EpochLength),
			s.EpochConfigValue.AttemptsNumber,
			uint32(len(s.NextAuthorities)),
		)
		env := signedEnvelope(s, 2, epochIdx)
		id, _, ok := s.validateEnvelope(env, s.NextRandomness, epochIdx, saturated)
		if !ok {
			t.Fatalf("expected first submission to be accepted")
		}
		s.TicketsData[id] = env.Body

		_, reason, ok := s.validateEnvelope(env, s.NextRandomness, epochIdx, saturated)
		if ok || reason != dropDuplicate {
			t.Errorf("reason = %q, ok = %v, want %q, false", reason, ok, dropDuplicate)
		}
	})

	t.Run("bad proof", func(t *testing.T) {
		s := newReadyState(8, 3)
		s.EpochConfigValue = EpochConfig{RedundancyFactor: 100, AttemptsNumber: 1} // saturate threshold
		saturated := crypto.TicketIdThreshold(
			s.EpochConfigValue.RedundancyFactor,
			uint32(s.Params.EpochLength),
			s.EpochConfigValue.AttemptsNumber,
			uint32(len(s.NextAuthorities)),
		)
		env := signedEnvelope(s, 3, epochIdx)
		env.Signature.Proof = append([]byte(nil), env.Signature.Proof...)
		env.Signature.Proof = append(env.Signature.Proof, 0xff)
		_, reason, ok := s.validateEnvelope(env, s.NextRandomness, epochIdx, saturated)
		if ok || reason != dropBadProof {
			t.Errorf("reason = %q, ok = %v, want %q, false", reason, ok, dropBadProof)
		}
	})
}
