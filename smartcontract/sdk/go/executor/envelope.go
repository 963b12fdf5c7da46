package executor

import (
	"github.com/gagliardetto/solana-go"
)

// Envelope is a set of instructions plus the extra keypairs that must sign
// alongside the fee payer, such as a freshly generated base key.
type Envelope struct {
	Instructions []solana.Instruction
	Signers      []solana.PrivateKey
}

func NewEnvelope(instructions ...solana.Instruction) *Envelope {
	return &Envelope{Instructions: instructions}
}

func (e *Envelope) AddSigners(signers ...solana.PrivateKey) *Envelope {
	e.Signers = append(e.Signers, signers...)
	return e
}

// Combine appends the instructions and signers of others, skipping nils.
func (e *Envelope) Combine(others ...*Envelope) *Envelope {
	for _, o := range others {
		if o == nil {
			continue
		}
		e.Instructions = append(e.Instructions, o.Instructions...)
		e.Signers = append(e.Signers, o.Signers...)
	}
	return e
}

func (e *Envelope) IsEmpty() bool {
	return e == nil || len(e.Instructions) == 0
}
