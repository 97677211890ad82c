package consensus

import (
	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/types"
)

// TransactionSource classifies where an extrinsic originated from, for the
// pre-pool gate in ValidateUnsignedSubmitTickets. Mirrors
// frame_system::offchain::SendTransactionTypes's source taxonomy.
type TransactionSource int

const (
	// SourceLocal is an extrinsic authored by this node (e.g. an offchain
	// worker), never gossiped in from a peer.
	SourceLocal TransactionSource = iota
	// SourceInBlock is an extrinsic already included in a block being
	// re-executed or imported.
	SourceInBlock
	// SourceExternal is an extrinsic received over the network from a peer.
	SourceExternal
)

// SlotClaim is the pre-runtime digest item every valid block must carry:
// the slot it was produced for and the ring-VRF signature proving the
// claim, under the well-known Sassafras engine id.
type SlotClaim struct {
	Slot      types.Slot
	Signature crypto.RingVrfSignature
}

// NextEpochDescriptor is the post-runtime digest item emitted whenever an
// epoch change is enacted, announcing the parameters of the epoch about
// to begin.
type NextEpochDescriptor struct {
	Randomness   types.Randomness
	Authorities  []types.AuthorityId
	Config       *EpochConfig
}

// Digest is the block header's consensus digest, as consumed and produced
// by the epoch driver. The host is responsible for actually encoding and
// decoding digest items to and from the wire block header; this module
// only reads and writes the typed values.
type Digest interface {
	// SlotClaim returns the block's pre-runtime Sassafras slot claim, and
	// whether one was present at all.
	SlotClaim() (SlotClaim, bool)
	// DepositNextEpochDescriptor appends a post-runtime consensus digest
	// item announcing the next epoch's parameters.
	DepositNextEpochDescriptor(desc NextEpochDescriptor)
}

// WeightMeter tracks the per-block computation budget consumed by this
// module's operations, mirroring the originating pallet's WeightInfo
// trait. Call sites charge weight; the host enforces the block's overall
// limit and rejects the block if exceeded.
type WeightMeter interface {
	ChargeSubmitTickets(n int)
	ChargePlanConfigChange()
	ChargeOnInitialize()
	ChargeUpdateRingVerifier(n int)
	ChargeSortSegments(n int)
}

// NoopWeightMeter is a WeightMeter that charges nothing, useful for tests
// and the sassafrasd demo driver where weight accounting is not exercised.
type NoopWeightMeter struct{}

func (NoopWeightMeter) ChargeSubmitTickets(int)     {}
func (NoopWeightMeter) ChargePlanConfigChange()      {}
func (NoopWeightMeter) ChargeOnInitialize()          {}
func (NoopWeightMeter) ChargeUpdateRingVerifier(int) {}
func (NoopWeightMeter) ChargeSortSegments(int)       {}

// TicketEnvelope is the submission wire format: a ticket body plus the
// ring-VRF signature that attests it was produced by some ring member.
type TicketEnvelope struct {
	Body      crypto.TicketBody
	Signature crypto.RingVrfSignature
}

// TxPool is the subset of the host's transaction pool that
// SubmitTicketsUnsignedExtrinsic needs: the ability to accept a locally
// authored unsigned extrinsic.
type TxPool interface {
	SubmitUnsigned(tickets []TicketEnvelope) error
}
