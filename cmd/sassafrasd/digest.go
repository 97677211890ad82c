package main

import "github.com/eth2030/sassafras/consensus"

// memDigest is an in-memory stand-in for a real block header's consensus
// digest, used only by this demo driver. A real host decodes SlotClaim
// from the block's pre-runtime digest and encodes NextEpochDescriptor
// items into the post-runtime digest on the wire; here both are just
// plain fields set directly by the block loop.
type memDigest struct {
	claim     consensus.SlotClaim
	hasClaim  bool
	posted    []consensus.NextEpochDescriptor
}

func (d *memDigest) SlotClaim() (consensus.SlotClaim, bool) { return d.claim, d.hasClaim }

func (d *memDigest) DepositNextEpochDescriptor(desc consensus.NextEpochDescriptor) {
	d.posted = append(d.posted, desc)
}

// memTxPool is an in-memory stand-in for the host transaction pool,
// recording submitted unsigned extrinsics without actually gossiping or
// including them; the demo driver dispatches them directly instead.
type memTxPool struct {
	submitted [][]consensus.TicketEnvelope
}

func (p *memTxPool) SubmitUnsigned(tickets []consensus.TicketEnvelope) error {
	p.submitted = append(p.submitted, tickets)
	return nil
}
