package consensus

import (
	"bytes"

	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// InitializeGenesisAuthorities sets both Authorities and NextAuthorities on
// the first call. A later call is accepted only if list matches what is
// already stored; a conflicting list is a hard abort, matching the
// original pallet's genesis build panicking on inconsistent re-invocation.
func (s *State) InitializeGenesisAuthorities(list []types.AuthorityId) {
	if len(s.Authorities) == 0 {
		s.Authorities = append([]types.AuthorityId(nil), list...)
		s.NextAuthorities = append([]types.AuthorityId(nil), list...)
		return
	}
	if !authorityListsEqual(s.Authorities, list) {
		panicViolation("genesis authorities reinitialized with a conflicting set")
	}
}

func authorityListsEqual(a, b []types.AuthorityId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i].Bytes(), b[i].Bytes()) {
			return false
		}
	}
	return true
}

// UpdateRingVerifier rebuilds RingVerifierData from RingContext and the
// given ordered authority list. If no RingContext has been set, the
// rebuild is logged and silently skipped: in that state no ticket
// submission can be admitted, since RingVerifierData stays zero (spec
// §4.4).
func (s *State) UpdateRingVerifier(list []types.AuthorityId, meter WeightMeter) {
	meter.ChargeUpdateRingVerifier(len(list))
	if s.RingContext == nil {
		logger.Warn("ring context not initialized, skipping verifier rebuild")
		return
	}
	ring := make([]crypto.AuthorityIdLike, len(list))
	for i, id := range list {
		ring[i] = authorityIdLike{id}
	}
	s.RingVerifierData = crypto.DefaultRingBackend().DeriveVerifier(s.RingContext, ring)
}

// authorityIdLike adapts types.AuthorityId to crypto.AuthorityIdLike
// without crypto needing to import types.
type authorityIdLike struct {
	id types.AuthorityId
}

func (a authorityIdLike) Bytes() []byte { return a.id.Bytes() }
