package mine

import (
	"fmt"

	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
)

// DeserializeRewarder decodes Rewarder account data, discriminator included.
func DeserializeRewarder(data []byte) (*Rewarder, error) {
	r, err := anchor.DecodeAccount[Rewarder](data, RewarderDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize rewarder: %w", err)
	}
	return r, nil
}

// DeserializeQuarry decodes Quarry account data, discriminator included.
func DeserializeQuarry(data []byte) (*Quarry, error) {
	q, err := anchor.DecodeAccount[Quarry](data, QuarryDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize quarry: %w", err)
	}
	return q, nil
}

// DeserializeMiner decodes Miner account data, discriminator included.
func DeserializeMiner(data []byte) (*Miner, error) {
	m, err := anchor.DecodeAccount[Miner](data, MinerDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize miner: %w", err)
	}
	return m, nil
}
