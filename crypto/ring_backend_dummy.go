package crypto

import "golang.org/x/crypto/sha3"

// DummyRingBackend is a non-anonymizing stand-in for a real ring-SNARK: it
// proves "this output was produced for this signData" without hiding which
// member of the ring produced it. This mirrors the original pallet's own
// `RingContext::new_testing()` path (gated behind the
// construct-dummy-ring-context feature), which ships a deterministic,
// non-production ring context for exactly this purpose. It is the default
// backend here, the same way blst's PureGoBLSBackend is the default until
// a build tag swaps in the CGO-backed implementation.
//
// Verification succeeds when the signature's proof equals the commitment
// a real prover would have bound to (signData, verifier, output) — i.e. it
// checks the same data a ring-SNARK proof would cover, just without hiding
// which ring member supplied it.
type DummyRingBackend struct{}

// NewDummyRingBackend constructs the default, non-anonymizing ring backend.
func NewDummyRingBackend() *DummyRingBackend { return &DummyRingBackend{} }

// NewTestingRingContext builds a deterministic RingContext with no real
// SRS material, for use before any production ring context has been
// deposited by the host. Grounded on RingContext::new_testing() in the
// original pallet.
func NewTestingRingContext() *RingContext {
	return NewRingContext("testing", nil)
}

func (b *DummyRingBackend) Name() string { return "dummy" }

func (b *DummyRingBackend) DeriveVerifier(ctx *RingContext, ring []AuthorityIdLike) RingVerifierData {
	h := sha3.New256()
	h.Write([]byte("dummy-ring-verifier-v1"))
	if ctx != nil {
		h.Write([]byte(ctx.id))
		h.Write(ctx.params)
	}
	for _, id := range ring {
		h.Write(id.Bytes())
	}
	var commitment [32]byte
	copy(commitment[:], h.Sum(nil))
	return RingVerifierData{
		backendName: b.Name(),
		commitment:  commitment,
		ringSize:    len(ring),
	}
}

func (b *DummyRingBackend) Verify(verifier RingVerifierData, signData []byte, sig RingVrfSignature) bool {
	if verifier.ringSize == 0 {
		return false
	}
	out, ok := sig.Output()
	if !ok {
		return false
	}
	expected := b.expectedProof(verifier, signData, out)
	if len(sig.Proof) != len(expected) {
		return false
	}
	for i := range expected {
		if sig.Proof[i] != expected[i] {
			return false
		}
	}
	return true
}

// expectedProof computes the commitment a dummy "prover" would have
// produced for this (verifier, signData, output) triple.
func (b *DummyRingBackend) expectedProof(verifier RingVerifierData, signData []byte, out VrfOutput) []byte {
	h := sha3.New256()
	h.Write([]byte("dummy-ring-proof-v1"))
	h.Write(verifier.commitment[:])
	h.Write(signData)
	h.Write(out.Bytes())
	return h.Sum(nil)
}

// Sign produces a dummy ring-VRF signature over signData for the given
// output, as derived by a ring member holding a secret key capable of
// reproducing that output. Exposed so tests and the sassafrasd demo driver
// can produce valid envelopes without a real ring-SNARK prover.
func (b *DummyRingBackend) Sign(verifier RingVerifierData, signData []byte, out VrfOutput) RingVrfSignature {
	return RingVrfSignature{
		Outputs: []VrfOutput{out},
		Proof:   b.expectedProof(verifier, signData, out),
	}
}
