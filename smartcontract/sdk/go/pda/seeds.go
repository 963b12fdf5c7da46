package pda

// Seed prefixes used by the Quarry programs.
const (
	RewarderSeed    = "Rewarder"
	QuarrySeed      = "Quarry"
	MinerSeed       = "Miner"
	MintWrapperSeed = "MintWrapper"
	MinterSeed      = "MintWrapperMinter"
	OperatorSeed    = "Operator"
	RegistrySeed    = "QuarryRegistry"
	MergePoolSeed   = "MergePool"
	ReplicaMintSeed = "ReplicaMint"
	MergeMinerSeed  = "MergeMiner"
	RedeemerSeed    = "Redeemer"
)
