package mergemine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

const (
	NewPoolInstructionName             = "new_pool"
	InitMergeMinerInstructionName      = "init_merge_miner"
	InitMinerInstructionName           = "init_miner"
	StakePrimaryMinerInstructionName   = "stake_primary_miner"
	UnstakePrimaryMinerInstructionName = "unstake_primary_miner"
	WithdrawTokensInstructionName      = "withdraw_tokens"
)

func BuildNewPoolInstruction(programID, primaryMint, payer solana.PublicKey) (solana.Instruction, error) {
	if primaryMint.IsZero() {
		return nil, fmt.Errorf("primary mint public key is required")
	}
	if payer.IsZero() {
		return nil, fmt.Errorf("payer public key is required")
	}

	pool, bump, err := pda.DeriveMergePoolPDA(programID, primaryMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive merge pool PDA: %w", err)
	}
	replicaMint, mintBump, err := pda.DeriveReplicaMintPDA(programID, pool)
	if err != nil {
		return nil, fmt.Errorf("failed to derive replica mint PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: pool, IsSigner: false, IsWritable: true},
		{PublicKey: primaryMint, IsSigner: false, IsWritable: false},
		{PublicKey: replicaMint, IsSigner: false, IsWritable: true},
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(NewPoolInstructionName), struct {
		Bump     uint8
		MintBump uint8
	}{
		Bump:     bump,
		MintBump: mintBump,
	}, accounts)
}

func BuildInitMergeMinerInstruction(programID, primaryMint, owner, payer solana.PublicKey) (solana.Instruction, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("owner public key is required")
	}
	if payer.IsZero() {
		return nil, fmt.Errorf("payer public key is required")
	}
	pool, _, err := pda.DeriveMergePoolPDA(programID, primaryMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive merge pool PDA: %w", err)
	}
	mm, bump, err := pda.DeriveMergeMinerPDA(programID, pool, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to derive merge miner PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: pool, IsSigner: false, IsWritable: false},
		{PublicKey: owner, IsSigner: false, IsWritable: false},
		{PublicKey: mm, IsSigner: false, IsWritable: true},
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(InitMergeMinerInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}

// QuarryConfig points a merge miner at one quarry of the mine program.
type QuarryConfig struct {
	MineProgramID solana.PublicKey
	Rewarder      solana.PublicKey
	// TokenMint is the quarry's staked mint: the pool's primary mint or its
	// replica mint.
	TokenMint solana.PublicKey
}

func (c *QuarryConfig) Validate() error {
	if c.MineProgramID.IsZero() {
		return fmt.Errorf("mine program ID is required")
	}
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.TokenMint.IsZero() {
		return fmt.Errorf("token mint public key is required")
	}
	return nil
}

// minerAccounts resolves the quarry and the fungible miner owned by mm.
func (c *QuarryConfig) minerAccounts(mm solana.PublicKey) (solana.PublicKey, mine.MinerAccounts, error) {
	quarry, _, err := pda.DeriveQuarryPDA(c.MineProgramID, c.Rewarder, c.TokenMint)
	if err != nil {
		return solana.PublicKey{}, mine.MinerAccounts{}, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	key := mine.MinerKey{Quarry: quarry, Authority: mm}
	accs, err := key.Accounts(c.MineProgramID, c.TokenMint)
	if err != nil {
		return solana.PublicKey{}, mine.MinerAccounts{}, err
	}
	return quarry, accs, nil
}

// BuildInitMinerInstruction creates the quarry miner whose authority is the
// merge miner of owner in the pool for primaryMint.
func BuildInitMinerInstruction(programID, primaryMint, owner, payer solana.PublicKey, quarryConfig QuarryConfig) (solana.Instruction, error) {
	if err := quarryConfig.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	if payer.IsZero() {
		return nil, fmt.Errorf("payer public key is required")
	}
	pool, mm, err := poolAndMergeMiner(programID, primaryMint, owner)
	if err != nil {
		return nil, err
	}
	quarry, accs, err := quarryConfig.minerAccounts(mm)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: pool, IsSigner: false, IsWritable: false},
		{PublicKey: mm, IsSigner: false, IsWritable: false},
		{PublicKey: accs.Miner, IsSigner: false, IsWritable: true},
		{PublicKey: quarry, IsSigner: false, IsWritable: true},
		{PublicKey: quarryConfig.Rewarder, IsSigner: false, IsWritable: false},
		{PublicKey: quarryConfig.TokenMint, IsSigner: false, IsWritable: false},
		{PublicKey: accs.MinerVault, IsSigner: false, IsWritable: false},
		{PublicKey: payer, IsSigner: true, IsWritable: true},
		{PublicKey: quarryConfig.MineProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(InitMinerInstructionName), struct {
		Bump uint8
	}{
		Bump: accs.Bump,
	}, accounts)
}

type PrimaryStakeInstructionConfig struct {
	PrimaryMint solana.PublicKey
	Owner       solana.PublicKey
	Quarry      QuarryConfig
}

func (c *PrimaryStakeInstructionConfig) Validate() error {
	if c.PrimaryMint.IsZero() {
		return fmt.Errorf("primary mint public key is required")
	}
	if c.Owner.IsZero() {
		return fmt.Errorf("owner public key is required")
	}
	if c.Quarry.TokenMint != c.PrimaryMint {
		return fmt.Errorf("quarry token mint must be the primary mint")
	}
	return c.Quarry.Validate()
}

// BuildStakePrimaryMinerInstruction moves the merge miner's primary token
// balance into its primary quarry miner.
func BuildStakePrimaryMinerInstruction(programID solana.PublicKey, config PrimaryStakeInstructionConfig) (solana.Instruction, error) {
	return buildPrimaryStakeInstruction(programID, StakePrimaryMinerInstructionName, config, nil)
}

func BuildUnstakePrimaryMinerInstruction(programID solana.PublicKey, config PrimaryStakeInstructionConfig, amount uint64) (solana.Instruction, error) {
	if amount == 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	return buildPrimaryStakeInstruction(programID, UnstakePrimaryMinerInstructionName, config, struct {
		Amount uint64
	}{
		Amount: amount,
	})
}

func buildPrimaryStakeInstruction(programID solana.PublicKey, name string, config PrimaryStakeInstructionConfig, args any) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	pool, mm, err := poolAndMergeMiner(programID, config.PrimaryMint, config.Owner)
	if err != nil {
		return nil, err
	}
	quarry, accs, err := config.Quarry.minerAccounts(mm)
	if err != nil {
		return nil, err
	}
	mmTokenAccount, err := MergeMinerTokenAccount(mm, config.PrimaryMint)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Owner, IsSigner: true, IsWritable: false},
		{PublicKey: mmTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: pool, IsSigner: false, IsWritable: true},
		{PublicKey: mm, IsSigner: false, IsWritable: true},
		{PublicKey: config.Quarry.Rewarder, IsSigner: false, IsWritable: false},
		{PublicKey: quarry, IsSigner: false, IsWritable: true},
		{PublicKey: accs.Miner, IsSigner: false, IsWritable: true},
		{PublicKey: accs.MinerVault, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: config.Quarry.MineProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarClockPubkey, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(name), args, accounts)
}

type WithdrawTokensInstructionConfig struct {
	PrimaryMint solana.PublicKey
	Owner       solana.PublicKey
	// WithdrawMint is the mint to sweep out of the merge miner.
	WithdrawMint     solana.PublicKey
	TokenDestination solana.PublicKey
}

func (c *WithdrawTokensInstructionConfig) Validate() error {
	if c.PrimaryMint.IsZero() {
		return fmt.Errorf("primary mint public key is required")
	}
	if c.Owner.IsZero() {
		return fmt.Errorf("owner public key is required")
	}
	if c.WithdrawMint.IsZero() {
		return fmt.Errorf("withdraw mint public key is required")
	}
	if c.TokenDestination.IsZero() {
		return fmt.Errorf("token destination public key is required")
	}
	return nil
}

// BuildWithdrawTokensInstruction sweeps the merge miner's whole balance of
// WithdrawMint to TokenDestination.
func BuildWithdrawTokensInstruction(programID solana.PublicKey, config WithdrawTokensInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	pool, mm, err := poolAndMergeMiner(programID, config.PrimaryMint, config.Owner)
	if err != nil {
		return nil, err
	}
	mmTokenAccount, err := MergeMinerTokenAccount(mm, config.WithdrawMint)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Owner, IsSigner: true, IsWritable: false},
		{PublicKey: pool, IsSigner: false, IsWritable: false},
		{PublicKey: mm, IsSigner: false, IsWritable: false},
		{PublicKey: mmTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: config.TokenDestination, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(WithdrawTokensInstructionName), nil, accounts)
}

// MergeMinerTokenAccount is the merge miner's associated token account for mint.
func MergeMinerTokenAccount(mm, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(mm, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive merge miner token account: %w", err)
	}
	return ata, nil
}

func poolAndMergeMiner(programID, primaryMint, owner solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	pool, _, err := pda.DeriveMergePoolPDA(programID, primaryMint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to derive merge pool PDA: %w", err)
	}
	mm, _, err := pda.DeriveMergeMinerPDA(programID, pool, owner)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to derive merge miner PDA: %w", err)
	}
	return pool, mm, nil
}
