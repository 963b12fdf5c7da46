package operator

import "github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"

const OperatorAccountName = "Operator"

const (
	CreateOperatorInstructionName           = "create_operator"
	SetAdminInstructionName                 = "set_admin"
	SetRateSetterInstructionName            = "set_rate_setter"
	SetQuarryCreatorInstructionName         = "set_quarry_creator"
	SetShareAllocatorInstructionName        = "set_share_allocator"
	DelegateSetAnnualRewardsInstructionName = "delegate_set_annual_rewards"
	DelegateCreateQuarryInstructionName     = "delegate_create_quarry"
	DelegateSetRewardsShareInstructionName  = "delegate_set_rewards_share"
	DelegateSetFamineInstructionName        = "delegate_set_famine"
)

var OperatorDiscriminator = anchor.AccountDiscriminator(OperatorAccountName)

// Role is a delegated permission on an operator.
type Role int

const (
	RoleAdmin Role = iota
	RoleRateSetter
	RoleQuarryCreator
	RoleShareAllocator
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleRateSetter:
		return "rate_setter"
	case RoleQuarryCreator:
		return "quarry_creator"
	case RoleShareAllocator:
		return "share_allocator"
	default:
		return "unknown"
	}
}

func (r Role) instructionName() (string, bool) {
	switch r {
	case RoleAdmin:
		return SetAdminInstructionName, true
	case RoleRateSetter:
		return SetRateSetterInstructionName, true
	case RoleQuarryCreator:
		return SetQuarryCreatorInstructionName, true
	case RoleShareAllocator:
		return SetShareAllocatorInstructionName, true
	default:
		return "", false
	}
}
