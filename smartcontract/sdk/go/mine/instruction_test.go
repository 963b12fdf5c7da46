package mine_test

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
	"github.com/stretchr/testify/require"
)

func requireDiscriminator(t *testing.T, instr solana.Instruction, name string) []byte {
	t.Helper()
	data, err := instr.Data()
	require.NoError(t, err)
	disc := anchor.InstructionDiscriminator(name)
	require.Equal(t, disc[:], data[:8])
	return data[8:]
}

func TestSDK_Mine_BuildNewRewarderInstruction(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	config := mine.NewRewarderInstructionConfig{
		Base:             solana.NewWallet().PublicKey(),
		Payer:            solana.NewWallet().PublicKey(),
		InitialAuthority: solana.NewWallet().PublicKey(),
		MintWrapper:      solana.NewWallet().PublicKey(),
		RewardsTokenMint: solana.NewWallet().PublicKey(),
	}

	instr, err := mine.BuildNewRewarderInstruction(programID, config)
	require.NoError(t, err)
	require.Equal(t, programID, instr.ProgramID())

	rewarder, bump, err := pda.DeriveRewarderPDA(programID, config.Base)
	require.NoError(t, err)
	claimFee, err := mine.ClaimFeeTokenAccount(rewarder, config.RewardsTokenMint)
	require.NoError(t, err)

	accounts := instr.Accounts()
	require.Len(t, accounts, 9)
	require.Equal(t, config.Base, accounts[0].PublicKey)
	require.True(t, accounts[0].IsSigner)
	require.Equal(t, rewarder, accounts[1].PublicKey)
	require.True(t, accounts[1].IsWritable)
	require.Equal(t, config.Payer, accounts[3].PublicKey)
	require.True(t, accounts[3].IsSigner)
	require.Equal(t, solana.SystemProgramID, accounts[4].PublicKey)
	require.Equal(t, claimFee, accounts[8].PublicKey)

	args := requireDiscriminator(t, instr, mine.NewRewarderInstructionName)
	require.Equal(t, []byte{bump}, args)
}

func TestSDK_Mine_BuildNewRewarderInstruction_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	valid := func() mine.NewRewarderInstructionConfig {
		return mine.NewRewarderInstructionConfig{
			Base:             solana.NewWallet().PublicKey(),
			Payer:            solana.NewWallet().PublicKey(),
			InitialAuthority: solana.NewWallet().PublicKey(),
			MintWrapper:      solana.NewWallet().PublicKey(),
			RewardsTokenMint: solana.NewWallet().PublicKey(),
		}
	}

	tests := []struct {
		name   string
		mutate func(*mine.NewRewarderInstructionConfig)
		errMsg string
	}{
		{"missing base", func(c *mine.NewRewarderInstructionConfig) { c.Base = solana.PublicKey{} }, "base public key is required"},
		{"missing payer", func(c *mine.NewRewarderInstructionConfig) { c.Payer = solana.PublicKey{} }, "payer public key is required"},
		{"missing authority", func(c *mine.NewRewarderInstructionConfig) { c.InitialAuthority = solana.PublicKey{} }, "initial authority public key is required"},
		{"missing mint wrapper", func(c *mine.NewRewarderInstructionConfig) { c.MintWrapper = solana.PublicKey{} }, "mint wrapper public key is required"},
		{"missing rewards mint", func(c *mine.NewRewarderInstructionConfig) { c.RewardsTokenMint = solana.PublicKey{} }, "rewards token mint public key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := valid()
			tt.mutate(&config)
			_, err := mine.BuildNewRewarderInstruction(programID, config)
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSDK_Mine_RewarderAuthorityInstructions(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	config := mine.RewarderAuthorityInstructionConfig{
		Rewarder:  solana.NewWallet().PublicKey(),
		Authority: solana.NewWallet().PublicKey(),
	}
	other := solana.NewWallet().PublicKey()

	t.Run("set annual rewards", func(t *testing.T) {
		t.Parallel()
		instr, err := mine.BuildSetAnnualRewardsInstruction(programID, config, 1_000_000)
		require.NoError(t, err)
		args := requireDiscriminator(t, instr, mine.SetAnnualRewardsInstructionName)
		require.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(args))
		require.Equal(t, config.Authority, instr.Accounts()[0].PublicKey)
		require.True(t, instr.Accounts()[0].IsSigner)
		require.Equal(t, config.Rewarder, instr.Accounts()[1].PublicKey)
		require.True(t, instr.Accounts()[1].IsWritable)
	})

	t.Run("transfer authority", func(t *testing.T) {
		t.Parallel()
		instr, err := mine.BuildTransferAuthorityInstruction(programID, config, other)
		require.NoError(t, err)
		args := requireDiscriminator(t, instr, mine.TransferAuthorityInstructionName)
		require.Equal(t, other[:], args)

		_, err = mine.BuildTransferAuthorityInstruction(programID, config, solana.PublicKey{})
		require.ErrorContains(t, err, "new authority public key is required")
	})

	t.Run("set pause authority", func(t *testing.T) {
		t.Parallel()
		instr, err := mine.BuildSetPauseAuthorityInstruction(programID, config, other)
		require.NoError(t, err)
		require.Empty(t, requireDiscriminator(t, instr, mine.SetPauseAuthorityInstructionName))
		require.Len(t, instr.Accounts(), 3)
		require.Equal(t, other, instr.Accounts()[2].PublicKey)
	})

	for name, build := range map[string]func(solana.PublicKey, mine.RewarderAuthorityInstructionConfig) (solana.Instruction, error){
		mine.PauseInstructionName:           mine.BuildPauseInstruction,
		mine.UnpauseInstructionName:         mine.BuildUnpauseInstruction,
		mine.AcceptAuthorityInstructionName: mine.BuildAcceptAuthorityInstruction,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			instr, err := build(programID, config)
			require.NoError(t, err)
			require.Empty(t, requireDiscriminator(t, instr, name))
			require.Len(t, instr.Accounts(), 2)

			_, err = build(programID, mine.RewarderAuthorityInstructionConfig{Rewarder: config.Rewarder})
			require.ErrorContains(t, err, "authority public key is required")
		})
	}
}

func TestSDK_Mine_BuildCreateQuarryInstruction(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	config := mine.CreateQuarryInstructionConfig{
		Rewarder:  solana.NewWallet().PublicKey(),
		Authority: solana.NewWallet().PublicKey(),
		TokenMint: solana.NewWallet().PublicKey(),
		Payer:     solana.NewWallet().PublicKey(),
	}

	instr, err := mine.BuildCreateQuarryInstruction(programID, config)
	require.NoError(t, err)

	quarry, bump, err := pda.DeriveQuarryPDA(programID, config.Rewarder, config.TokenMint)
	require.NoError(t, err)

	accounts := instr.Accounts()
	require.Len(t, accounts, 7)
	require.Equal(t, quarry, accounts[0].PublicKey)
	require.True(t, accounts[0].IsWritable)
	require.Equal(t, config.TokenMint, accounts[3].PublicKey)
	require.Equal(t, []byte{bump}, requireDiscriminator(t, instr, mine.CreateQuarryInstructionName))

	_, err = mine.BuildCreateQuarryInstruction(programID, mine.CreateQuarryInstructionConfig{})
	require.ErrorContains(t, err, "rewarder public key is required")
}

func TestSDK_Mine_QuarryAuthorityInstructions(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	config := mine.QuarryAuthorityInstructionConfig{
		Rewarder:  solana.NewWallet().PublicKey(),
		Authority: solana.NewWallet().PublicKey(),
		Quarry:    solana.NewWallet().PublicKey(),
	}

	instr, err := mine.BuildSetFamineInstruction(programID, config, -5)
	require.NoError(t, err)
	args := requireDiscriminator(t, instr, mine.SetFamineInstructionName)
	require.Equal(t, int64(-5), int64(binary.LittleEndian.Uint64(args)))
	require.False(t, instr.Accounts()[1].IsWritable, "set_famine only reads the rewarder")

	instr, err = mine.BuildSetRewardsShareInstruction(programID, config, 250)
	require.NoError(t, err)
	args = requireDiscriminator(t, instr, mine.SetRewardsShareInstructionName)
	require.Equal(t, uint64(250), binary.LittleEndian.Uint64(args))
	require.True(t, instr.Accounts()[1].IsWritable)
	require.Equal(t, config.Quarry, instr.Accounts()[2].PublicKey)

	_, err = mine.BuildSetRewardsShareInstruction(programID, mine.QuarryAuthorityInstructionConfig{Rewarder: config.Rewarder, Authority: config.Authority}, 1)
	require.ErrorContains(t, err, "quarry public key is required")

	instr, err = mine.BuildUpdateQuarryRewardsInstruction(programID, config.Rewarder, config.Quarry)
	require.NoError(t, err)
	require.Empty(t, requireDiscriminator(t, instr, mine.UpdateQuarryRewardsInstructionName))
	require.Equal(t, config.Quarry, instr.Accounts()[0].PublicKey)

	_, err = mine.BuildUpdateQuarryRewardsInstruction(programID, config.Rewarder, solana.PublicKey{})
	require.ErrorContains(t, err, "quarry public key is required")
}

func TestSDK_Mine_BuildCreateMinerInstruction(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	rewarder := solana.NewWallet().PublicKey()
	quarry := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	tokenMint := solana.NewWallet().PublicKey()
	nftMint := solana.NewWallet().PublicKey()

	t.Run("fungible", func(t *testing.T) {
		t.Parallel()
		instr, err := mine.BuildCreateMinerInstruction(programID, mine.CreateMinerInstructionConfig{
			Rewarder:        rewarder,
			QuarryTokenMint: tokenMint,
			Miner:           mine.MinerKey{Quarry: quarry, Authority: authority},
			Payer:           authority,
		})
		require.NoError(t, err)

		miner, bump, err := pda.DeriveMinerPDA(programID, quarry, authority)
		require.NoError(t, err)
		require.Equal(t, miner, instr.Accounts()[1].PublicKey)
		require.Equal(t, tokenMint, instr.Accounts()[6].PublicKey)
		require.Equal(t, []byte{bump}, requireDiscriminator(t, instr, mine.CreateMinerInstructionName))
	})

	t.Run("nft", func(t *testing.T) {
		t.Parallel()
		instr, err := mine.BuildCreateMinerInstruction(programID, mine.CreateMinerInstructionConfig{
			Rewarder: rewarder,
			Miner:    mine.MinerKey{Quarry: quarry, Authority: authority, NFTMint: nftMint},
			Payer:    authority,
		})
		require.NoError(t, err)

		miner, bump, err := pda.DeriveNFTMinerPDA(programID, quarry, authority, nftMint)
		require.NoError(t, err)
		vault, _, err := solana.FindAssociatedTokenAddress(miner, nftMint)
		require.NoError(t, err)
		require.Equal(t, miner, instr.Accounts()[1].PublicKey)
		require.Equal(t, nftMint, instr.Accounts()[6].PublicKey)
		require.Equal(t, vault, instr.Accounts()[7].PublicKey)
		require.Equal(t, []byte{bump}, requireDiscriminator(t, instr, mine.CreateMinerInstructionName))
	})

	t.Run("fungible without mint", func(t *testing.T) {
		t.Parallel()
		_, err := mine.BuildCreateMinerInstruction(programID, mine.CreateMinerInstructionConfig{
			Rewarder: rewarder,
			Miner:    mine.MinerKey{Quarry: quarry, Authority: authority},
			Payer:    authority,
		})
		require.ErrorContains(t, err, "quarry token mint public key is required")
	})
}

func TestSDK_Mine_StakeAndWithdrawShareAccounts(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	config := mine.StakeInstructionConfig{
		Rewarder:        solana.NewWallet().PublicKey(),
		QuarryTokenMint: solana.NewWallet().PublicKey(),
		Miner: mine.MinerKey{
			Quarry:    solana.NewWallet().PublicKey(),
			Authority: solana.NewWallet().PublicKey(),
			NFTMint:   solana.NewWallet().PublicKey(),
		},
		Amount: 1,
	}

	stake, err := mine.BuildStakeTokensInstruction(programID, config)
	require.NoError(t, err)
	withdraw, err := mine.BuildWithdrawTokensInstruction(programID, config)
	require.NoError(t, err)

	require.Equal(t, stake.Accounts(), withdraw.Accounts())
	require.Len(t, stake.Accounts(), 7)

	args := requireDiscriminator(t, stake, mine.StakeTokensInstructionName)
	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(args))
	args = requireDiscriminator(t, withdraw, mine.WithdrawTokensInstructionName)
	require.Equal(t, uint64(1), binary.LittleEndian.Uint64(args))

	// Zero is passed through for the program to handle.
	config.Amount = 0
	stake, err = mine.BuildStakeTokensInstruction(programID, config)
	require.NoError(t, err)
	args = requireDiscriminator(t, stake, mine.StakeTokensInstructionName)
	require.Equal(t, uint64(0), binary.LittleEndian.Uint64(args))
}

func TestSDK_Mine_BuildClaimRewardsInstruction(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	mintWrapperProgram := solana.NewWallet().PublicKey()
	config := mine.ClaimRewardsInstructionConfig{
		Rewarder:             solana.NewWallet().PublicKey(),
		QuarryTokenMint:      solana.NewWallet().PublicKey(),
		Miner:                mine.MinerKey{Quarry: solana.NewWallet().PublicKey(), Authority: solana.NewWallet().PublicKey()},
		MintWrapper:          solana.NewWallet().PublicKey(),
		MintWrapperProgram:   mintWrapperProgram,
		RewardsTokenMint:     solana.NewWallet().PublicKey(),
		ClaimFeeTokenAccount: solana.NewWallet().PublicKey(),
	}

	instr, err := mine.BuildClaimRewardsInstruction(programID, config)
	require.NoError(t, err)
	require.Empty(t, requireDiscriminator(t, instr, mine.ClaimRewardsInstructionName))

	minter, _, err := pda.DeriveMinterPDA(mintWrapperProgram, config.MintWrapper, config.Rewarder)
	require.NoError(t, err)
	miner, _, err := pda.DeriveMinerPDA(programID, config.Miner.Quarry, config.Miner.Authority)
	require.NoError(t, err)

	accounts := instr.Accounts()
	require.Len(t, accounts, 13)
	require.Equal(t, minter, accounts[2].PublicKey)
	require.Equal(t, config.Miner.Authority, accounts[6].PublicKey)
	require.True(t, accounts[6].IsSigner)
	require.Equal(t, miner, accounts[7].PublicKey)

	config.ClaimFeeTokenAccount = solana.PublicKey{}
	_, err = mine.BuildClaimRewardsInstruction(programID, config)
	require.ErrorContains(t, err, "claim fee token account public key is required")
}

func TestSDK_Mine_BuildExtractFeesInstruction(t *testing.T) {
	t.Parallel()

	programID := solana.NewWallet().PublicKey()
	config := mine.ExtractFeesInstructionConfig{
		Rewarder:             solana.NewWallet().PublicKey(),
		ClaimFeeTokenAccount: solana.NewWallet().PublicKey(),
		FeeToTokenAccount:    solana.NewWallet().PublicKey(),
	}
	instr, err := mine.BuildExtractFeesInstruction(programID, config)
	require.NoError(t, err)
	require.Empty(t, requireDiscriminator(t, instr, mine.ExtractFeesInstructionName))
	require.Equal(t, solana.TokenProgramID, instr.Accounts()[3].PublicKey)

	_, err = mine.BuildExtractFeesInstruction(programID, mine.ExtractFeesInstructionConfig{Rewarder: config.Rewarder})
	require.ErrorContains(t, err, "claim fee token account public key is required")
}
