package mine

import "github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"

// Account names as declared by the program.
const (
	RewarderAccountName = "Rewarder"
	QuarryAccountName   = "Quarry"
	MinerAccountName    = "Miner"
)

// Instruction names as declared by the program.
const (
	NewRewarderInstructionName         = "new_rewarder"
	SetPauseAuthorityInstructionName   = "set_pause_authority"
	PauseInstructionName               = "pause"
	UnpauseInstructionName             = "unpause"
	TransferAuthorityInstructionName   = "transfer_authority"
	AcceptAuthorityInstructionName     = "accept_authority"
	SetAnnualRewardsInstructionName    = "set_annual_rewards"
	CreateQuarryInstructionName        = "create_quarry"
	SetFamineInstructionName           = "set_famine"
	SetRewardsShareInstructionName     = "set_rewards_share"
	UpdateQuarryRewardsInstructionName = "update_quarry_rewards"
	CreateMinerInstructionName         = "create_miner"
	ClaimRewardsInstructionName        = "claim_rewards"
	StakeTokensInstructionName         = "stake_tokens"
	WithdrawTokensInstructionName      = "withdraw_tokens"
	ExtractFeesInstructionName         = "extract_fees"
)

var (
	RewarderDiscriminator = anchor.AccountDiscriminator(RewarderAccountName)
	QuarryDiscriminator   = anchor.AccountDiscriminator(QuarryAccountName)
	MinerDiscriminator    = anchor.AccountDiscriminator(MinerAccountName)
)

// Limits
const (
	// MaxClaimFeeMilliBPS is the upper bound for Rewarder.MaxClaimFeeMilliBPS (10%).
	MaxClaimFeeMilliBPS = 10_000 * 1_000 / 10
	// DefaultClaimFeeMilliBPS is the claim fee a new rewarder starts with (1%).
	DefaultClaimFeeMilliBPS = 10_000 * 1_000 / 100
)
