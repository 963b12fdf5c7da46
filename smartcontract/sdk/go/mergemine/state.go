package mergemine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
)

const (
	MergePoolAccountName  = "MergePool"
	MergeMinerAccountName = "MergeMiner"
)

var (
	MergePoolDiscriminator  = anchor.AccountDiscriminator(MergePoolAccountName)
	MergeMinerDiscriminator = anchor.AccountDiscriminator(MergeMinerAccountName)
)

// MergePool lets a single primary token deposit mine several quarries at
// once by minting replica tokens against it.
type MergePool struct {
	PrimaryMint         solana.PublicKey
	Bump                uint8
	ReplicaMint         solana.PublicKey
	MmCount             uint64
	TotalPrimaryBalance uint64
	TotalReplicaBalance uint64
	Reserved            [16]uint64
}

// MergeMiner is an owner's position in a merge pool. It is the authority of
// the underlying quarry miners.
type MergeMiner struct {
	Pool           solana.PublicKey
	Owner          solana.PublicKey
	Bump           uint8
	Index          uint64
	PrimaryBalance uint64
	ReplicaBalance uint64
}

func DeserializeMergePool(data []byte) (*MergePool, error) {
	p, err := anchor.DecodeAccount[MergePool](data, MergePoolDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize merge pool: %w", err)
	}
	return p, nil
}

func DeserializeMergeMiner(data []byte) (*MergeMiner, error) {
	m, err := anchor.DecodeAccount[MergeMiner](data, MergeMinerDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize merge miner: %w", err)
	}
	return m, nil
}
