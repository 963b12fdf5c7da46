package quarry_test

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mergemine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mintwrapper"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/operator"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/quarry"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/redeemer"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/registry"
	"github.com/stretchr/testify/require"
)

func TestSDK_Quarry_MintWrapper_NewWrapperAndMint(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	rpc.GetMinimumBalanceForRentExemptionFunc = func(_ context.Context, size uint64, _ solanarpc.CommitmentType) (uint64, error) {
		require.Equal(t, uint64(82), size)
		return 1_461_600, nil
	}
	sdk, _ := newTestSDK(t, rpc)

	base := keyFromSeed(2)
	mint := keyFromSeed(3)
	env, wrapper, mintKey, err := sdk.MintWrapper().NewWrapperAndMint(context.Background(), wrapperAndMintParams(&base, &mint))
	require.NoError(t, err)
	require.Equal(t, mint.PublicKey(), mintKey)

	want, _, err := pda.DeriveMintWrapperPDA(sdk.Programs().MintWrapper, base.PublicKey())
	require.NoError(t, err)
	require.Equal(t, want, wrapper)

	// create account, initialize mint, new_wrapper
	require.Len(t, env.Instructions, 3)
	require.Equal(t, solana.SystemProgramID, env.Instructions[0].ProgramID())
	require.Equal(t, solana.TokenProgramID, env.Instructions[1].ProgramID())
	require.Equal(t, sdk.Programs().MintWrapper, env.Instructions[2].ProgramID())
	require.ElementsMatch(t, []solana.PrivateKey{mint, base}, env.Signers)
}

func TestSDK_Quarry_MintWrapper_RentLookupFails(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	rpc.GetMinimumBalanceForRentExemptionFunc = func(context.Context, uint64, solanarpc.CommitmentType) (uint64, error) {
		return 0, errors.New("rpc down")
	}
	sdk, _ := newTestSDK(t, rpc)

	_, _, _, err := sdk.MintWrapper().NewWrapperAndMint(context.Background(), wrapperAndMintParams(nil, nil))
	require.ErrorContains(t, err, "rpc down")
}

func TestSDK_Quarry_MintWrapper_MinterLifecycle(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	sdk, signer := newTestSDK(t, rpc)
	w := sdk.MintWrapper()

	wrapper := solana.NewWallet().PublicKey()
	minterAuthority := signer.PublicKey()

	newMinter, err := w.NewMinter(wrapper, minterAuthority)
	require.NoError(t, err)
	update, err := w.MinterUpdate(wrapper, minterAuthority, 1_000)
	require.NoError(t, err)
	mint, err := w.PerformMint(wrapper, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 10)
	require.NoError(t, err)

	minter, _, err := pda.DeriveMinterPDA(w.ProgramID(), wrapper, minterAuthority)
	require.NoError(t, err)
	require.Equal(t, minter, newMinter.Instructions[0].Accounts()[3].PublicKey)
	require.Equal(t, minter, update.Instructions[0].Accounts()[2].PublicKey)
	require.Equal(t, minter, mint.Instructions[0].Accounts()[4].PublicKey)

	rpc.setAccount(minter, encode(t, mintwrapper.MinterDiscriminator, &mintwrapper.Minter{MintWrapper: wrapper, MinterAuthority: minterAuthority, Allowance: 1_000}))
	got, err := w.FetchMinter(context.Background(), wrapper, minterAuthority)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), got.Allowance)

	_, err = w.TransferAdmin(wrapper, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	_, err = w.AcceptAdmin(wrapper)
	require.NoError(t, err)
}

func TestSDK_Quarry_Operator_CreateOperator(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	sdk, signer := newTestSDK(t, rpc)

	rewarder := solana.NewWallet().PublicKey()
	base := keyFromSeed(4)
	env, op, err := sdk.Operator().CreateOperator(rewarder, &base)
	require.NoError(t, err)

	want, _, err := pda.DeriveOperatorPDA(sdk.Programs().Operator, base.PublicKey())
	require.NoError(t, err)
	require.Equal(t, want, op)

	// transfer_authority to the operator, then create_operator.
	require.Len(t, env.Instructions, 2)
	require.Equal(t, sdk.Programs().Mine, env.Instructions[0].ProgramID())
	data, err := env.Instructions[0].Data()
	require.NoError(t, err)
	require.Equal(t, op.Bytes(), data[8:])
	require.Equal(t, signer.PublicKey(), env.Instructions[1].Accounts()[3].PublicKey)

	rpc.setAccount(op, encode(t, operator.OperatorDiscriminator, &operator.Operator{Base: base.PublicKey(), Rewarder: rewarder, Admin: signer.PublicKey()}))
	got, err := sdk.Operator().FetchOperator(context.Background(), op)
	require.NoError(t, err)
	require.Equal(t, rewarder, got.Rewarder)
}

func TestSDK_Quarry_Operator_DelegateQuarryOps(t *testing.T) {
	t.Parallel()

	sdk, _ := newTestSDK(t, newMockRPCClient())
	op := solana.NewWallet().PublicKey()
	rewarder := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	env, quarryKey, err := sdk.Operator().DelegateCreateQuarry(op, rewarder, mint)
	require.NoError(t, err)
	want, _, err := pda.DeriveQuarryPDA(sdk.Programs().Mine, rewarder, mint)
	require.NoError(t, err)
	require.Equal(t, want, quarryKey)
	require.Equal(t, quarryKey, env.Instructions[0].Accounts()[4].PublicKey)

	share, err := sdk.Operator().DelegateSetRewardsShare(op, rewarder, mint, 5)
	require.NoError(t, err)
	require.Equal(t, quarryKey, share.Instructions[0].Accounts()[4].PublicKey)

	famine, err := sdk.Operator().DelegateSetFamine(op, rewarder, mint, 1)
	require.NoError(t, err)
	require.Equal(t, quarryKey, famine.Instructions[0].Accounts()[4].PublicKey)

	_, err = sdk.Operator().DelegateSetAnnualRewards(op, rewarder, 100)
	require.NoError(t, err)
	_, err = sdk.Operator().SetRole(op, operator.RoleRateSetter, solana.NewWallet().PublicKey())
	require.NoError(t, err)
}

func TestSDK_Quarry_Registry(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	sdk, _ := newTestSDK(t, rpc)
	rewarder := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	env, key, err := sdk.Registry().NewRegistry(rewarder, 50)
	require.NoError(t, err)
	require.Equal(t, key, env.Instructions[0].Accounts()[0].PublicKey)
	data, err := env.Instructions[0].Data()
	require.NoError(t, err)
	require.Equal(t, uint16(50), binary.LittleEndian.Uint16(data[8:10]))

	sync, err := sdk.Registry().SyncQuarry(rewarder, mint)
	require.NoError(t, err)
	quarryKey, _, err := pda.DeriveQuarryPDA(sdk.Programs().Mine, rewarder, mint)
	require.NoError(t, err)
	require.Equal(t, quarryKey, sync.Instructions[0].Accounts()[0].PublicKey)

	rpc.setAccount(key, encode(t, registry.RegistryDiscriminator, &registry.Registry{Rewarder: rewarder, Tokens: []solana.PublicKey{mint}}))
	got, err := sdk.Registry().FetchRegistry(context.Background(), rewarder)
	require.NoError(t, err)
	require.Equal(t, []solana.PublicKey{mint}, got.SyncedTokens())
}

func TestSDK_Quarry_MergeMine(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	sdk, signer := newTestSDK(t, rpc)
	mm := sdk.MergeMine()
	primary := solana.NewWallet().PublicKey()
	rewarder := solana.NewWallet().PublicKey()

	_, pool, err := mm.NewPool(primary)
	require.NoError(t, err)

	env, mergeMiner, err := mm.InitMergeMiner(primary)
	require.NoError(t, err)
	want, _, err := pda.DeriveMergeMinerPDA(mm.ProgramID(), pool, signer.PublicKey())
	require.NoError(t, err)
	require.Equal(t, want, mergeMiner)
	require.Len(t, env.Instructions, 2)

	env, miner, err := mm.InitMiner(primary, rewarder, primary)
	require.NoError(t, err)
	quarryKey, _, err := pda.DeriveQuarryPDA(sdk.Programs().Mine, rewarder, primary)
	require.NoError(t, err)
	wantMiner, _, err := mine.MinerKey{Quarry: quarryKey, Authority: mergeMiner}.Derive(sdk.Programs().Mine)
	require.NoError(t, err)
	require.Equal(t, wantMiner, miner)
	require.Equal(t, miner, env.Instructions[1].Accounts()[2].PublicKey)

	stake, err := mm.StakePrimaryMiner(primary, rewarder)
	require.NoError(t, err)
	require.Equal(t, miner, stake.Instructions[0].Accounts()[6].PublicKey)
	_, err = mm.UnstakePrimaryMiner(primary, rewarder, 10)
	require.NoError(t, err)
	_, err = mm.WithdrawTokens(primary, primary, solana.NewWallet().PublicKey())
	require.NoError(t, err)

	rpc.setAccount(pool, encode(t, mergemine.MergePoolDiscriminator, &mergemine.MergePool{PrimaryMint: primary, MmCount: 1}))
	gotPool, err := mm.FetchMergePool(context.Background(), primary)
	require.NoError(t, err)
	require.Equal(t, uint64(1), gotPool.MmCount)

	rpc.setAccount(mergeMiner, encode(t, mergemine.MergeMinerDiscriminator, &mergemine.MergeMiner{Pool: pool, Owner: signer.PublicKey()}))
	gotMM, err := mm.FetchMergeMiner(context.Background(), primary, signer.PublicKey())
	require.NoError(t, err)
	require.Equal(t, pool, gotMM.Pool)
}

func TestSDK_Quarry_Redeemer(t *testing.T) {
	t.Parallel()

	rpc := newMockRPCClient()
	sdk, signer := newTestSDK(t, rpc)
	iou := solana.NewWallet().PublicKey()
	redemption := solana.NewWallet().PublicKey()

	env, key, err := sdk.Redeemer().CreateRedeemer(iou, redemption)
	require.NoError(t, err)
	require.Len(t, env.Instructions, 2)
	require.Equal(t, key, env.Instructions[1].Accounts()[0].PublicKey)

	redeem, err := sdk.Redeemer().RedeemTokens(iou, redemption, 25)
	require.NoError(t, err)
	iouSource, _, err := solana.FindAssociatedTokenAddress(signer.PublicKey(), iou)
	require.NoError(t, err)
	require.Equal(t, iouSource, redeem.Instructions[0].Accounts()[4].PublicKey)

	rpc.setAccount(key, encode(t, redeemer.RedeemerDiscriminator, &redeemer.Redeemer{IouMint: iou, RedemptionMint: redemption, TotalTokensRedeemed: 25}))
	got, err := sdk.Redeemer().FetchRedeemer(context.Background(), iou, redemption)
	require.NoError(t, err)
	require.Equal(t, uint64(25), got.TotalTokensRedeemed)
}

func wrapperAndMintParams(base, mint *solana.PrivateKey) quarry.NewWrapperAndMintParams {
	return quarry.NewWrapperAndMintParams{
		Base:     base,
		Mint:     mint,
		HardCap:  1_000_000_000,
		Decimals: 6,
	}
}
