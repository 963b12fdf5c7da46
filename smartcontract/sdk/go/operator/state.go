package operator

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
)

// Operator owns a rewarder's authority and delegates parts of it to
// individual keys.
type Operator struct {
	Base           solana.PublicKey
	Bump           uint8
	Rewarder       solana.PublicKey
	Admin          solana.PublicKey
	RateSetter     solana.PublicKey
	QuarryCreator  solana.PublicKey
	ShareAllocator solana.PublicKey
	LastModifiedTs int64
	Generation     uint64
}

// Holder returns the key currently holding role.
func (o *Operator) Holder(role Role) (solana.PublicKey, error) {
	switch role {
	case RoleAdmin:
		return o.Admin, nil
	case RoleRateSetter:
		return o.RateSetter, nil
	case RoleQuarryCreator:
		return o.QuarryCreator, nil
	case RoleShareAllocator:
		return o.ShareAllocator, nil
	default:
		return solana.PublicKey{}, fmt.Errorf("unknown role %d", role)
	}
}

func DeserializeOperator(data []byte) (*Operator, error) {
	o, err := anchor.DecodeAccount[Operator](data, OperatorDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize operator: %w", err)
	}
	return o, nil
}
