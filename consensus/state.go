package consensus

import (
	"github.com/eth2030/sassafras/crypto"
	"github.com/eth2030/sassafras/log"
	"github.com/eth2030/sassafras/types"
)

var logger = log.Default().Module("consensus")

// TicketsMetadata tracks the live size of the dual-epoch ring buffer and
// the outstanding unsorted-segment backlog. Mirrors TicketsMetadata in the
// original pallet exactly.
type TicketsMetadata struct {
	UnsortedTicketsCount uint32
	TicketsCount         [2]uint32
}

// State is the full aggregate of durable Sassafras storage, owned by the
// host and passed by exclusive reference into every top-level operation
// (spec §9 "Global mutable state" design note) — there is no package-level
// mutable state and no internal locking; serializability is the host's
// responsibility, matching the spec's single-threaded, transactional
// per-block execution model.
type State struct {
	Params Params

	EpochIndexValue types.EpochIndex
	GenesisSlot     types.Slot
	CurrentSlot     types.Slot

	Authorities     []types.AuthorityId
	NextAuthorities []types.AuthorityId

	CurrentRandomness   types.Randomness
	NextRandomness       types.Randomness
	RandomnessAccumulator types.Randomness

	EpochConfigValue       EpochConfig
	NextEpochConfigValue   *EpochConfig
	PendingEpochConfigChange *EpochConfig

	TicketsMeta TicketsMetadata
	// TicketsIds holds ids for the current and next epoch, keyed by
	// (epoch_tag, index). SortTickets replaces a tag's map when it commits
	// and clearEpochHalf deletes the entries of the half it clears; valid
	// length per tag is TicketsMeta.TicketsCount[tag].
	TicketsIds [2]map[uint32]crypto.TicketId
	TicketsData map[crypto.TicketId]crypto.TicketBody

	// UnsortedSegments maps segment index to its batch of ids, each
	// batch bounded to SegmentMaxSize.
	UnsortedSegments map[uint32][]crypto.TicketId
	SortedCandidates []crypto.TicketId

	RingContext      *crypto.RingContext
	RingVerifierData crypto.RingVerifierData

	// ClaimTemporaryData is Some between OnInitialize and OnFinalize of
	// the same block, and must be nil outside that window (invariant 5).
	ClaimTemporaryData *crypto.VrfOutput
}

// NewState constructs an empty State for the given deployment parameters.
// Callers must still call InitializeGenesisAuthorities and set an initial
// EpochConfigValue before the module is usable.
func NewState(params Params) *State {
	return &State{
		Params: params,
		TicketsIds: [2]map[uint32]crypto.TicketId{
			{}, {},
		},
		TicketsData:      map[crypto.TicketId]crypto.TicketBody{},
		UnsortedSegments: map[uint32][]crypto.TicketId{},
	}
}

// EpochStart returns the first slot of the given epoch index, relative to
// GenesisSlot, panicking on overflow (spec §4.3 enact_epoch_change step 3
// treats this arithmetic as infallible in practice; an overflow here means
// corrupted state).
func (s *State) EpochStart(epoch types.EpochIndex) types.Slot {
	start, overflow := checkedMulAdd(uint64(epoch), s.Params.EpochLength, uint64(s.GenesisSlot))
	if overflow {
		panicViolation("epoch start arithmetic overflow")
	}
	return types.Slot(start)
}

// checkedMulAdd computes a*b+c and reports whether the computation
// overflowed a uint64.
func checkedMulAdd(a, b, c uint64) (uint64, bool) {
	if b != 0 && a > (^uint64(0))/b {
		return 0, true
	}
	prod := a * b
	sum := prod + c
	if sum < prod {
		return 0, true
	}
	return sum, false
}

// CurrentSlotIndex returns the current slot's offset from the start of the
// current epoch.
func (s *State) CurrentSlotIndex() uint64 {
	start := s.EpochStart(s.EpochIndexValue)
	if s.CurrentSlot < start {
		return 0
	}
	return uint64(s.CurrentSlot - start)
}

// activeEpochConfig returns the config to use for the *next* epoch's
// threshold computations: NextEpochConfig if set, else the current config
// (spec §4.1 step 3).
func (s *State) activeEpochConfig() EpochConfig {
	if s.NextEpochConfigValue != nil {
		return *s.NextEpochConfigValue
	}
	return s.EpochConfigValue
}

// Epoch is the read-only view returned by CurrentEpoch/NextEpoch.
type Epoch struct {
	Index       types.EpochIndex
	Start       types.Slot
	Length      uint64
	Authorities []types.AuthorityId
	Randomness  types.Randomness
	Config      EpochConfig
}

// CurrentEpoch returns a snapshot of the currently active epoch.
func (s *State) CurrentEpoch() Epoch {
	return Epoch{
		Index:       s.EpochIndexValue,
		Start:       s.EpochStart(s.EpochIndexValue),
		Length:      s.Params.EpochLength,
		Authorities: append([]types.AuthorityId(nil), s.Authorities...),
		Randomness:  s.CurrentRandomness,
		Config:      s.EpochConfigValue,
	}
}

// NextEpoch returns a snapshot of the epoch that will begin at the next
// rotation.
func (s *State) NextEpoch() Epoch {
	nextIdx := s.EpochIndexValue + 1
	return Epoch{
		Index:       nextIdx,
		Start:       s.EpochStart(nextIdx),
		Length:      s.Params.EpochLength,
		Authorities: append([]types.AuthorityId(nil), s.NextAuthorities...),
		Randomness:  s.NextRandomness,
		Config:      s.activeEpochConfig(),
	}
}

// nextEpochTag returns epoch_tag for the epoch about to begin: the
// complement of the currently active tag.
func (s *State) nextEpochTag() uint8 {
	return uint8((s.EpochIndexValue + 1) % 2)
}

// currentEpochTag returns epoch_tag for the currently active epoch.
func (s *State) currentEpochTag() uint8 {
	return uint8(s.EpochIndexValue % 2)
}
