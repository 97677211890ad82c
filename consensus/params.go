package consensus

import "fmt"

// SegmentMaxSize bounds the length of a single UnsortedSegments batch.
const SegmentMaxSize = 128

// RandomnessVrfContext is folded into a slot claim's VRF output to derive
// this block's contribution to the randomness accumulator.
const RandomnessVrfContext = "SassafrasRandomness"

// EpochConfig is the tunable lottery shape for one epoch: the redundancy
// factor and number of VRF attempts each validator is expected to make.
// Both fields must be nonzero; plan_config_change enforces this before
// the value is ever stored.
type EpochConfig struct {
	RedundancyFactor uint32
	AttemptsNumber   uint32
}

// Validate reports whether the config satisfies plan_config_change's
// admission rule.
func (c EpochConfig) Validate() error {
	if c.RedundancyFactor == 0 || c.AttemptsNumber == 0 {
		return ErrInvalidConfiguration
	}
	return nil
}

// Params holds the module's deployment-time constants: values fixed for
// the lifetime of the chain, analogous to the originating pallet's
// Config trait associated constants (EpochLength, MaxAuthorities).
type Params struct {
	// EpochLength is the number of slots in one epoch.
	EpochLength uint64
	// MaxAuthorities bounds the authority list length.
	MaxAuthorities uint32
}

// DefaultParams returns a small, test-friendly parameter set: an 8-slot
// epoch and up to 32 authorities.
func DefaultParams() Params {
	return Params{
		EpochLength:    8,
		MaxAuthorities: 32,
	}
}

// Validate checks the deployment parameters are internally consistent.
func (p Params) Validate() error {
	if p.EpochLength == 0 {
		return fmt.Errorf("consensus: EpochLength must be > 0")
	}
	if p.MaxAuthorities == 0 {
		return fmt.Errorf("consensus: MaxAuthorities must be > 0")
	}
	return nil
}

// MaxTickets trims EpochLength down to fit in a uint32, matching
// MaxTicketsFor<T> in the original pallet: in practice EpochLength is
// always well within u32 range for any real deployment, but the bound is
// enforced explicitly rather than assumed.
func (p Params) MaxTickets() uint32 {
	if p.EpochLength > uint64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(p.EpochLength)
}

// Midpoint returns EpochLength/2, the slot-submission cutoff.
func (p Params) Midpoint() uint64 {
	return p.EpochLength / 2
}

// PlanConfigChange is the root-origin dispatchable call (index 1): it
// queues a config change to be enacted two epochs from now (the pending
// value promotes to NextEpochConfig at the next rotation, then to
// EpochConfig at the rotation after that). Rejects configs with a zero
// redundancy factor or attempts number.
func (s *State) PlanConfigChange(cfg EpochConfig, meter WeightMeter) error {
	meter.ChargePlanConfigChange()
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.PendingEpochConfigChange = &cfg
	return nil
}
