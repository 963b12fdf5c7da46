package mintwrapper

import "github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"

const (
	MintWrapperAccountName = "MintWrapper"
	MinterAccountName      = "Minter"
)

const (
	NewWrapperInstructionName    = "new_wrapper"
	TransferAdminInstructionName = "transfer_admin"
	AcceptAdminInstructionName   = "accept_admin"
	NewMinterInstructionName     = "new_minter"
	MinterUpdateInstructionName  = "minter_update"
	PerformMintInstructionName   = "perform_mint"
)

var (
	MintWrapperDiscriminator = anchor.AccountDiscriminator(MintWrapperAccountName)
	MinterDiscriminator      = anchor.AccountDiscriminator(MinterAccountName)
)
