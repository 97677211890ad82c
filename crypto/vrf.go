// Package crypto is the opaque cryptographic façade consumed by the
// consensus package: VRF input/output derivation, ticket id computation,
// ring-verifier management, and ring-VRF signature verification. Actual
// ring-SNARK construction and verification is out of this module's scope
// (see spec §1); DummyRingBackend and BlstRingBackend below are the two
// concrete backends behind the RingBackend interface, chosen the same way
// the originating pallet chooses between a real Updatable-CRS ring context
// and a `RingContext::new_testing()` dummy one for development.
package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/eth2030/sassafras/types"
)

// VrfInputLength is the byte length of a context-tagged VRF input.
const VrfInputLength = 32

// VrfOutputLength is the byte length of a VRF pre-output.
const VrfOutputLength = 32

// VrfInput is a context-tagged hash fed to the ring-VRF as the message to
// be signed. Distinct contexts (ticket id vs. slot claim) never collide
// because the domain tag is folded into the hash.
type VrfInput [VrfInputLength]byte

// VrfOutput is a VRF pre-output: the signer's proof that a given VrfInput,
// under their secret key, produced this specific output, without revealing
// the key. It is the raw material from which both TicketId and per-slot
// randomness are derived.
type VrfOutput [VrfOutputLength]byte

// Bytes returns the output's byte representation.
func (o VrfOutput) Bytes() []byte { return o[:] }

// Domain separation tags. ticketIdContext and slotClaimContext bind a
// VrfInput to its purpose so the same randomness/epoch/slot triple can
// never be replayed across the two contexts; RandomnessVrfContext matches the
// originating pallet's RANDOMNESS_VRF_CONTEXT constant exactly.
const (
	ticketIdContext  = "sassafras-ticket-id-v1"
	slotClaimContext = "sassafras-slot-claim-v1"

	// RandomnessVrfContext is the context string folded into a VRF output
	// when deriving per-slot randomness, matching the original pallet's
	// RANDOMNESS_VRF_CONTEXT ("SassafrasRandomness").
	RandomnessVrfContext = "SassafrasRandomness"
)

// TicketIdVrfInput derives the VRF input used both to bind a ticket
// envelope to a specific (epoch, attempt) pair and to compute its
// resulting TicketId. Mirrors vrf::ticket_id_input in the original pallet.
func TicketIdVrfInput(randomness types.Randomness, attemptIdx uint32, epoch types.EpochIndex) VrfInput {
	h := sha3.New256()
	h.Write([]byte(ticketIdContext))
	h.Write(randomness.Bytes())
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], attemptIdx)
	h.Write(buf[:])
	var ebuf [8]byte
	binary.LittleEndian.PutUint64(ebuf[:], uint64(epoch))
	h.Write(ebuf[:])
	var out VrfInput
	copy(out[:], h.Sum(nil))
	return out
}

// SlotClaimVrfInput derives the VRF input used by a block author to claim
// a slot and to seed that block's contribution to the randomness
// accumulator. Mirrors vrf::slot_claim_input in the original pallet.
func SlotClaimVrfInput(randomness types.Randomness, slot types.Slot, epoch types.EpochIndex) VrfInput {
	h := sha3.New256()
	h.Write([]byte(slotClaimContext))
	h.Write(randomness.Bytes())
	var sbuf [8]byte
	binary.LittleEndian.PutUint64(sbuf[:], uint64(slot))
	h.Write(sbuf[:])
	var ebuf [8]byte
	binary.LittleEndian.PutUint64(ebuf[:], uint64(epoch))
	h.Write(ebuf[:])
	var out VrfInput
	copy(out[:], h.Sum(nil))
	return out
}

// MakeTicketId computes a ticket's identifier from its VRF input/output
// pair: make_ticket_id(input, output) in spec §2.1.
func MakeTicketId(input VrfInput, output VrfOutput) TicketId {
	h := sha3.New256()
	h.Write(input[:])
	h.Write(output[:])
	sum := h.Sum(nil)
	var id TicketId
	copy(id[:], sum[:TicketIdLength])
	return id
}

// MakeBytes derives an N-byte value from a VRF output under an additional
// context tag and input, the way vrf_output.make_bytes::<N>(context, input)
// does in the original pallet — used to turn a slot claim's VRF output
// into this block's contribution to the randomness accumulator.
func MakeBytes(output VrfOutput, context string, input VrfInput) [32]byte {
	h := sha3.New256()
	h.Write([]byte(context))
	h.Write(output[:])
	h.Write(input[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// TicketBody carries the per-ticket metadata proven, via the ring-VRF
// signature, to originate from some member of the authority set. The spec
// requires at minimum an attempt index; Extra carries any additional
// opaque application-defined metadata (e.g. an erasure-coded commitment),
// which this module never interprets.
type TicketBody struct {
	AttemptIdx uint32
	Extra      []byte
}

// signDataTag binds the transcript label used when building SignData, so
// a signature produced for one purpose (ticket body attestation) can never
// be replayed as a signature for another.
const signDataTag = "sassafras-ticket-body-v1"

// SignData is the message bundle a ring-VRF signature actually signs:
// the ticket body plus the VRF input it was bound to. Mirrors
// vrf::ticket_body_sign_data in the original pallet.
type SignData struct {
	Body     TicketBody
	VrfInput VrfInput
}

// BodySignData builds the sign-data bundle for a ticket body and its
// bound VRF input.
func BodySignData(body TicketBody, input VrfInput) SignData {
	return SignData{Body: body, VrfInput: input}
}

// Bytes serializes the sign-data bundle into the byte string the ring-VRF
// signature is actually computed and verified over.
func (d SignData) Bytes() []byte {
	h := sha3.New256()
	h.Write([]byte(signDataTag))
	var abuf [4]byte
	binary.LittleEndian.PutUint32(abuf[:], d.Body.AttemptIdx)
	h.Write(abuf[:])
	h.Write(d.Body.Extra)
	h.Write(d.VrfInput[:])
	return h.Sum(nil)
}

// RingVrfSignature is a ring-VRF signature over a SignData bundle: a proof
// that some member of the ring that produced RingVerifierData signed the
// data, together with the VRF pre-outputs bound into the proof. Tickets
// carry exactly one output (for the ticket-id input); slot claims carry
// one output (for the slot-claim input) as well, so Outputs is modeled as
// a slice to match the upstream wire shape even though this module only
// ever reads index 0.
type RingVrfSignature struct {
	Outputs []VrfOutput
	Proof   []byte
}

// Output returns the signature's first VRF output, and whether one was
// present at all (an envelope whose signature carries zero outputs is
// malformed and is silently dropped by the submission endpoint).
func (s RingVrfSignature) Output() (VrfOutput, bool) {
	if len(s.Outputs) == 0 {
		return VrfOutput{}, false
	}
	return s.Outputs[0], true
}

// RingVrfVerify checks the signature against the given sign-data bundle
// and ring verifier, using the currently active RingBackend.
func (s RingVrfSignature) RingVrfVerify(data SignData, verifier RingVerifierData) bool {
	return DefaultRingBackend().Verify(verifier, data.Bytes(), s)
}
