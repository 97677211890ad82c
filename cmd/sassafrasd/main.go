// Command sassafrasd is a demo driver for the Sassafras epoch and
// ticket-lottery state machine: it simulates a chain of blocks against an
// in-memory host (digest and transaction pool), submitting ticket
// envelopes before each epoch's midpoint and printing the resulting
// epoch/ticket state as it rotates.
//
// Usage:
//
//	sassafrasd [flags]
//
// Flags:
//
//	--epoch-length       Slots per epoch (default: 8)
//	--authorities        Genesis authority count (default: 6)
//	--blocks             Blocks to simulate (default: 40)
//	--redundancy-factor  Epoch config redundancy factor (default: 1)
//	--attempts-number    Epoch config attempts number (default: 32)
//	--tickets-per-block  Tickets submitted per pre-midpoint block (default: 3)
//	--verbosity          Log level 0-2 (default: 1)
//	--version            Print version and exit
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eth2030/sassafras/consensus"
	"github.com/eth2030/sassafras/crypto"
	sflog "github.com/eth2030/sassafras/log"
	"github.com/eth2030/sassafras/types"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	level := slog.LevelInfo
	switch cfg.Verbosity {
	case 0:
		level = slog.LevelError
	case 2:
		level = slog.LevelDebug
	}
	sflog.SetDefault(sflog.New(level))
	logger := sflog.Default().Module("sassafrasd")

	logger.Info("sassafrasd starting", "version", version, "commit", commit)

	params := consensus.Params{
		EpochLength:    cfg.EpochLength,
		MaxAuthorities: uint32(cfg.MaxAuthorities),
	}
	if err := params.Validate(); err != nil {
		logger.Error("invalid parameters", "err", err)
		return 1
	}

	epochCfg := consensus.EpochConfig{
		RedundancyFactor: uint32(cfg.RedundancyFactor),
		AttemptsNumber:   uint32(cfg.AttemptsNumber),
	}
	if err := epochCfg.Validate(); err != nil {
		logger.Error("invalid epoch config", "err", err)
		return 1
	}

	state := consensus.NewState(params)
	state.EpochConfigValue = epochCfg
	state.RingContext = crypto.NewTestingRingContext()

	pool := &memTxPool{}
	trigger := consensus.InternalTrigger{}
	meter := consensus.NoopWeightMeter{}

	authorities := makeAuthorities(cfg.Authorities)
	state.InitializeGenesisAuthorities(authorities)
	state.UpdateRingVerifier(authorities, meter)

	genesisSlot := types.Slot(1000)
	for block := uint64(1); block <= uint64(cfg.Blocks); block++ {
		slot := genesisSlot + types.Slot(block-1)
		output := simulatedSlotOutput(slot)
		digest := &memDigest{
			claim: consensus.SlotClaim{
				Slot:      slot,
				Signature: crypto.RingVrfSignature{Outputs: []crypto.VrfOutput{output}},
			},
			hasClaim: true,
		}

		state.OnInitialize(block, digest, trigger, meter)

		if state.CurrentSlotIndex() <= params.Midpoint() {
			envelopes := makeTicketEnvelopes(state, cfg.TicketsPerBlock, block)
			if _, err := state.ValidateUnsignedSubmitTickets(consensus.SourceLocal, envelopes); err == nil {
				if err := state.SubmitTickets(envelopes, meter); err != nil {
					logger.Warn("submit_tickets failed", "err", err)
				}
			}
		}

		state.OnFinalize(meter)

		if len(digest.posted) > 0 {
			logger.Info("epoch descriptor posted",
				"block", block,
				"epoch", state.EpochIndexValue,
				"authorities", len(digest.posted[0].Authorities),
			)
		}

		epochStart := state.EpochStart(state.EpochIndexValue)
		if id, body, ok := state.SlotTicket(uint64(slot), uint64(epochStart), meter); ok {
			logger.Debug("slot ticket assigned",
				"block", block,
				"slot", slot,
				"ticket_id", id,
				"attempt", body.AttemptIdx,
			)
		}
	}

	epoch := state.CurrentEpoch()
	logger.Info("simulation complete",
		"epoch_index", epoch.Index,
		"current_slot", state.CurrentSlot,
		"tickets_count_0", state.TicketsMeta.TicketsCount[0],
		"tickets_count_1", state.TicketsMeta.TicketsCount[1],
		"submitted_batches", len(pool.submitted),
	)

	return 0
}

// parseFlags parses CLI arguments into a demoConfig.
func parseFlags(args []string) (demoConfig, bool, int) {
	cfg := defaultDemoConfig()
	fs := newFlagSet(&cfg)
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cfg, true, 2
	}
	if *showVersion {
		fmt.Printf("sassafrasd %s (commit %s)\n", version, commit)
		return cfg, true, 0
	}
	return cfg, false, 0
}

// makeAuthorities builds n placeholder authority ids for the demo. Real
// deployments populate AuthorityId from validators' actual ring-VRF
// public keys; this driver only needs distinct, stable identifiers.
func makeAuthorities(n uint) []types.AuthorityId {
	out := make([]types.AuthorityId, n)
	for i := range out {
		out[i] = types.BytesToAuthorityId([]byte(fmt.Sprintf("authority-%d", i)))
	}
	return out
}

// simulatedSlotOutput derives a deterministic stand-in VRF output for a
// slot claim, since this driver has no real per-validator secret keys.
func simulatedSlotOutput(slot types.Slot) crypto.VrfOutput {
	input := crypto.SlotClaimVrfInput(types.Randomness{}, slot, 0)
	return crypto.VrfOutput(crypto.MakeBytes(crypto.VrfOutput{}, "sassafrasd-demo-slot", input))
}

// makeTicketEnvelopes builds n syntactically valid, ring-VRF-signed
// ticket envelopes against the current epoch's verifier, using the
// active (dummy, non-anonymizing) ring backend directly.
func makeTicketEnvelopes(state *consensus.State, n uint, block uint64) []consensus.TicketEnvelope {
	backend, ok := crypto.DefaultRingBackend().(*crypto.DummyRingBackend)
	if !ok {
		return nil
	}
	envelopes := make([]consensus.TicketEnvelope, 0, n)
	for i := uint(0); i < n; i++ {
		body := crypto.TicketBody{AttemptIdx: uint32(block)*1000 + uint32(i)}
		input := crypto.TicketIdVrfInput(state.NextRandomness, body.AttemptIdx, state.EpochIndexValue+1)
		output := crypto.MakeBytes(crypto.VrfOutput{}, "sassafrasd-demo-ticket", input)
		signData := crypto.BodySignData(body, input)
		sig := backend.Sign(state.RingVerifierData, signData.Bytes(), crypto.VrfOutput(output))
		envelopes = append(envelopes, consensus.TicketEnvelope{Body: body, Signature: sig})
	}
	return envelopes
}
