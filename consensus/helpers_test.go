package consensus

import (
	"encoding/binary"
	"fmt"

	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// idFromUint64 builds a deterministic TicketId from a small integer, for
// tests that only care about relative ordering, not cryptographic origin.
func idFromUint64(v uint64) crypto.TicketId {
	var id crypto.TicketId
	binary.BigEndian.PutUint64(id[8:], v)
	return id
}

func newTestState(epochLength uint64) *State {
	p := Params{EpochLength: epochLength, MaxAuthorities: 32}
	s := NewState(p)
	s.EpochConfigValue = EpochConfig{RedundancyFactor: 1, AttemptsNumber: 32}
	return s
}

func testAuthorities(n int) []types.AuthorityId {
	out := make([]types.AuthorityId, n)
	for i := range out {
		out[i] = types.BytesToAuthorityId([]byte(fmt.Sprintf("test-authority-%d", i)))
	}
	return out
}

// newReadyState builds a state with genesis authorities, a testing ring
// context, and a rebuilt ring verifier, ready to accept ticket
// submissions.
func newReadyState(epochLength uint64, authorityCount int) *State {
	s := newTestState(epochLength)
	s.RingContext = crypto.NewTestingRingContext()
	auths := testAuthorities(authorityCount)
	s.InitializeGenesisAuthorities(auths)
	s.UpdateRingVerifier(auths, NoopWeightMeter{})
	return s
}

// signedEnvelope builds a TicketEnvelope whose ring-VRF signature verifies
// against verifier, using the dummy ring backend's Sign helper directly
// (tests do not depend on a real ring-SNARK prover).
func signedEnvelope(s *State, attemptIdx uint32, epochIdx types.EpochIndex) TicketEnvelope {
	body := crypto.TicketBody{AttemptIdx: attemptIdx}
	input := crypto.TicketIdVrfInput(s.NextRandomness, attemptIdx, epochIdx)
	signData := crypto.BodySignData(body, input)
	output := crypto.MakeBytes(crypto.VrfOutput{}, "test-ticket-output", input)

	backend := crypto.DefaultRingBackend().(*crypto.DummyRingBackend)
	sig := backend.Sign(s.RingVerifierData, signData.Bytes(), crypto.VrfOutput(output))
	return TicketEnvelope{Body: body, Signature: sig}
}

type fakeDigest struct {
	claim  SlotClaim
	has    bool
	posted []NextEpochDescriptor
}

func (d *fakeDigest) SlotClaim() (SlotClaim, bool) { return d.claim, d.has }
func (d *fakeDigest) DepositNextEpochDescriptor(desc NextEpochDescriptor) {
	d.posted = append(d.posted, desc)
}

func claimDigest(slot types.Slot) *fakeDigest {
	return &fakeDigest{
		claim: SlotClaim{
			Slot:      slot,
			Signature: crypto.RingVrfSignature{Outputs: []crypto.VrfOutput{{1, 2, 3}}},
		},
		has: true,
	}
}
