//go:build blst

package main

import "github.com/eth2030/sassafras/crypto"

// Built with -tags blst, sassafrasd switches the process-wide ring backend
// to the real BLS12-381 implementation instead of the default sha3-commitment
// DummyRingBackend. makeTicketEnvelopes only knows how to sign through
// DummyRingBackend's exposed test helper, so under this tag the demo still
// runs the epoch/ticket state machine but submits no ticket envelopes: a
// real deployment would supply per-validator blst secret keys here instead.
func init() {
	crypto.SetRingBackend(crypto.NewBlstRingBackend())
}
