package consensus

import (
	"testing"

	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// Scenario A: genesis + first block.
func TestScenarioAGenesisAndFirstBlock(t *testing.T) {
	s := newReadyState(10, 3)
	s.EpochConfigValue = EpochConfig{RedundancyFactor: 1, AttemptsNumber: 32}

	digest := claimDigest(types.Slot(42))
	before := s.RandomnessAccumulator

	s.OnInitialize(1, digest, InternalTrigger{}, NoopWeightMeter{})

	if s.GenesisSlot != 42 {
		t.Errorf("GenesisSlot = %d, want 42", s.GenesisSlot)
	}
	if s.CurrentSlot != 42 {
		t.Errorf("CurrentSlot = %d, want 42", s.CurrentSlot)
	}
	if s.EpochIndexValue != 0 {
		t.Errorf("EpochIndex = %d, want 0", s.EpochIndexValue)
	}
	if len(digest.posted) != 1 {
		t.Fatalf("expected one NextEpochDescriptor posted on block 1, got %d", len(digest.posted))
	}

	s.OnFinalize(NoopWeightMeter{})
	if s.RandomnessAccumulator == before {
		t.Errorf("expected RandomnessAccumulator to change after block 1")
	}
}

// Scenario D: duplicate rejection within the same call.
func TestScenarioDDuplicateRejection(t *testing.T) {
	s := newReadyState(8, 3)
	s.EpochConfigValue = EpochConfig{RedundancyFactor: 100, AttemptsNumber: 1} // saturate threshold

	env := signedEnvelope(s, 7, s.EpochIndexValue+1)
	batch := []TicketEnvelope{env, env}

	if err := s.SubmitTickets(batch, NoopWeightMeter{}); err != nil {
		t.Fatalf("SubmitTickets failed: %v", err)
	}

	count := 0
	for id := range s.TicketsData {
		_ = id
		count++
	}
	if count != 1 {
		t.Errorf("TicketsData has %d entries, want exactly 1 after duplicate submission", count)
	}
}

// Scenario F: submission after midpoint is rejected as stale.
func TestScenarioFSubmissionAfterMidpoint(t *testing.T) {
	s := newReadyState(8, 3) // midpoint = 4
	s.CurrentSlot = s.EpochStart(0) + 5

	_, err := s.ValidateUnsignedSubmitTickets(SourceLocal, nil)
	if err != ErrStale {
		t.Errorf("expected ErrStale, got %v", err)
	}
}

func TestValidateUnsignedSubmitTicketsRejectsExternalSource(t *testing.T) {
	s := newReadyState(8, 3)
	_, err := s.ValidateUnsignedSubmitTickets(SourceExternal, nil)
	if err != ErrBadSigner {
		t.Errorf("expected ErrBadSigner, got %v", err)
	}
}

// Scenario E: skipped epochs reset tickets data and jump EpochIndex.
func TestScenarioESkippedEpoch(t *testing.T) {
	s := newReadyState(10, 3)
	s.EpochConfigValue = EpochConfig{RedundancyFactor: 1, AttemptsNumber: 32}
	s.TicketsData[idFromUint64(1)] = crypto.TicketBody{}
	s.TicketsIds[1][0] = idFromUint64(1)
	s.TicketsMeta.TicketsCount[1] = 1

	s.CurrentSlot = s.EpochStart(0) + 3*s.Params.EpochLength

	digest := claimDigest(s.CurrentSlot)
	s.EnactEpochChange(s.NextAuthorities, s.NextAuthorities, digest, NoopWeightMeter{})

	if s.EpochIndexValue != 3 {
		t.Errorf("EpochIndex = %d, want 3", s.EpochIndexValue)
	}
	if len(s.TicketsData) != 0 {
		t.Errorf("expected TicketsData cleared after skipped epochs, got %d entries", len(s.TicketsData))
	}
	if s.TicketsMeta.TicketsCount != [2]uint32{0, 0} {
		t.Errorf("expected TicketsCount reset to [0 0], got %v", s.TicketsMeta.TicketsCount)
	}
	if len(digest.posted) != 1 {
		t.Errorf("expected epoch descriptor posted, got %d", len(digest.posted))
	}
}
