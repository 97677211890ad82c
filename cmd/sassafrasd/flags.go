package main

import "flag"

// flagSet wraps flag.FlagSet with ContinueOnError behavior, matching the
// CLI convention used throughout this module's corpus.
type flagSet struct {
	*flag.FlagSet
}

func newCustomFlagSet(name string) *flagSet {
	return &flagSet{FlagSet: flag.NewFlagSet(name, flag.ContinueOnError)}
}

// demoConfig holds the sassafrasd demo driver's resolved CLI flags.
type demoConfig struct {
	EpochLength      uint64
	MaxAuthorities   uint
	Authorities      uint
	Blocks           uint
	RedundancyFactor uint
	AttemptsNumber   uint
	TicketsPerBlock  uint
	Verbosity        int
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		EpochLength:      8,
		MaxAuthorities:   32,
		Authorities:      6,
		Blocks:           40,
		RedundancyFactor: 1,
		AttemptsNumber:   32,
		TicketsPerBlock:  3,
		Verbosity:        1,
	}
}

// newFlagSet creates a flag.FlagSet binding all CLI flags to cfg.
func newFlagSet(cfg *demoConfig) *flagSet {
	fs := newCustomFlagSet("sassafrasd")
	fs.Uint64Var(&cfg.EpochLength, "epoch-length", cfg.EpochLength, "number of slots per epoch")
	fs.UintVar(&cfg.MaxAuthorities, "max-authorities", cfg.MaxAuthorities, "maximum authority list length")
	fs.UintVar(&cfg.Authorities, "authorities", cfg.Authorities, "number of genesis authorities to simulate")
	fs.UintVar(&cfg.Blocks, "blocks", cfg.Blocks, "number of blocks to simulate")
	fs.UintVar(&cfg.RedundancyFactor, "redundancy-factor", cfg.RedundancyFactor, "epoch config redundancy factor")
	fs.UintVar(&cfg.AttemptsNumber, "attempts-number", cfg.AttemptsNumber, "epoch config attempts number")
	fs.UintVar(&cfg.TicketsPerBlock, "tickets-per-block", cfg.TicketsPerBlock, "tickets submitted per pre-midpoint block")
	fs.IntVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "log level 0=error,1=info,2=debug")
	return fs
}
