package quarry

import (
	"errors"
	"fmt"

	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mergemine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mintwrapper"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/operator"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/redeemer"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/registry"
)

var ErrUnknownAccountKind = errors.New("unknown account discriminator")

// AccountKind enumerates every account type the Quarry programs own.
type AccountKind uint8

const (
	AccountKindUnknown AccountKind = iota
	AccountKindRewarder
	AccountKindQuarry
	AccountKindMiner
	AccountKindMintWrapper
	AccountKindMinter
	AccountKindOperator
	AccountKindMergePool
	AccountKindMergeMiner
	AccountKindRegistry
	AccountKindRedeemer
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindRewarder:
		return "rewarder"
	case AccountKindQuarry:
		return "quarry"
	case AccountKindMiner:
		return "miner"
	case AccountKindMintWrapper:
		return "mint_wrapper"
	case AccountKindMinter:
		return "minter"
	case AccountKindOperator:
		return "operator"
	case AccountKindMergePool:
		return "merge_pool"
	case AccountKindMergeMiner:
		return "merge_miner"
	case AccountKindRegistry:
		return "registry"
	case AccountKindRedeemer:
		return "redeemer"
	default:
		return "unknown"
	}
}

// AccountKinds lists the known kinds in declaration order.
func AccountKinds() []AccountKind {
	return []AccountKind{
		AccountKindRewarder,
		AccountKindQuarry,
		AccountKindMiner,
		AccountKindMintWrapper,
		AccountKindMinter,
		AccountKindOperator,
		AccountKindMergePool,
		AccountKindMergeMiner,
		AccountKindRegistry,
		AccountKindRedeemer,
	}
}

// Discriminator returns the account discriminator of k. ok is false for
// AccountKindUnknown.
func (k AccountKind) Discriminator() (anchor.Discriminator, bool) {
	switch k {
	case AccountKindRewarder:
		return mine.RewarderDiscriminator, true
	case AccountKindQuarry:
		return mine.QuarryDiscriminator, true
	case AccountKindMiner:
		return mine.MinerDiscriminator, true
	case AccountKindMintWrapper:
		return mintwrapper.MintWrapperDiscriminator, true
	case AccountKindMinter:
		return mintwrapper.MinterDiscriminator, true
	case AccountKindOperator:
		return operator.OperatorDiscriminator, true
	case AccountKindMergePool:
		return mergemine.MergePoolDiscriminator, true
	case AccountKindMergeMiner:
		return mergemine.MergeMinerDiscriminator, true
	case AccountKindRegistry:
		return registry.RegistryDiscriminator, true
	case AccountKindRedeemer:
		return redeemer.RedeemerDiscriminator, true
	default:
		return anchor.Discriminator{}, false
	}
}

// KindOf identifies the account kind of data from its discriminator.
func KindOf(data []byte) (AccountKind, error) {
	disc, err := anchor.PeekDiscriminator(data)
	if err != nil {
		return AccountKindUnknown, err
	}
	for _, k := range AccountKinds() {
		if d, _ := k.Discriminator(); d == disc {
			return k, nil
		}
	}
	return AccountKindUnknown, fmt.Errorf("%w: %s", ErrUnknownAccountKind, disc)
}

// DecodedAccount holds exactly one decoded account, selected by Kind.
type DecodedAccount struct {
	Kind AccountKind

	Rewarder    *mine.Rewarder
	Quarry      *mine.Quarry
	Miner       *mine.Miner
	MintWrapper *mintwrapper.MintWrapper
	Minter      *mintwrapper.Minter
	Operator    *operator.Operator
	MergePool   *mergemine.MergePool
	MergeMiner  *mergemine.MergeMiner
	Registry    *registry.Registry
	Redeemer    *redeemer.Redeemer
}

// Value returns the decoded account as an untyped value.
func (d *DecodedAccount) Value() any {
	switch d.Kind {
	case AccountKindRewarder:
		return d.Rewarder
	case AccountKindQuarry:
		return d.Quarry
	case AccountKindMiner:
		return d.Miner
	case AccountKindMintWrapper:
		return d.MintWrapper
	case AccountKindMinter:
		return d.Minter
	case AccountKindOperator:
		return d.Operator
	case AccountKindMergePool:
		return d.MergePool
	case AccountKindMergeMiner:
		return d.MergeMiner
	case AccountKindRegistry:
		return d.Registry
	case AccountKindRedeemer:
		return d.Redeemer
	default:
		return nil
	}
}

// DecodeAccount decodes data as whichever known account kind its
// discriminator names. Data of any other kind fails with
// ErrUnknownAccountKind.
func DecodeAccount(data []byte) (*DecodedAccount, error) {
	kind, err := KindOf(data)
	if err != nil {
		return nil, err
	}

	out := &DecodedAccount{Kind: kind}
	switch kind {
	case AccountKindRewarder:
		out.Rewarder, err = mine.DeserializeRewarder(data)
	case AccountKindQuarry:
		out.Quarry, err = mine.DeserializeQuarry(data)
	case AccountKindMiner:
		out.Miner, err = mine.DeserializeMiner(data)
	case AccountKindMintWrapper:
		out.MintWrapper, err = mintwrapper.DeserializeMintWrapper(data)
	case AccountKindMinter:
		out.Minter, err = mintwrapper.DeserializeMinter(data)
	case AccountKindOperator:
		out.Operator, err = operator.DeserializeOperator(data)
	case AccountKindMergePool:
		out.MergePool, err = mergemine.DeserializeMergePool(data)
	case AccountKindMergeMiner:
		out.MergeMiner, err = mergemine.DeserializeMergeMiner(data)
	case AccountKindRegistry:
		out.Registry, err = registry.DeserializeRegistry(data)
	case AccountKindRedeemer:
		out.Redeemer, err = redeemer.DeserializeRedeemer(data)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
