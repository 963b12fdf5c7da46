package config

const (
	// Quarry program IDs. The programs are deployed at the same addresses on every cluster.
	MergeMineProgramID   = "QMMD16kjauP5knBwxNUJRZ1Z5o3deBuFrqVjBVmmqto"
	MineProgramID        = "QMNeHCGYnLVDn1icRAfQZpjPLBNkfGbSKRB83G5d8KB"
	MintWrapperProgramID = "QMWoBmAyJLAsA1Lh9ugMTw2gciTihncciphzdNzdZYV"
	OperatorProgramID    = "QoP6NfrQbaGnccXQrMLUkog2tQZ4C1RFgJcwDnT8Kmz"
	RedeemerProgramID    = "QRDxhMw1P2NEfiw5mYXG79bwfgHTdasY2xNP76XSea9"
	RegistryProgramID    = "QREGBnEj9Sa5uR91AV8u3FxThgP5ZCvdZUW2bHAkfNc"

	// Recipient of protocol fees.
	FeeTo = "4MMZH3ih1aSty2nx4MC3kSR94Zb55XsXnqb5jfEcyHWQ"
	// Authority allowed to set protocol fees.
	FeeSetter = "4MMZH3ih1aSty2nx4MC3kSR94Zb55XsXnqb5jfEcyHWQ"

	// Mainnet constants.
	MainnetSolanaRPC   = "https://api.mainnet-beta.solana.com"
	MainnetSolanaWSRPC = "wss://api.mainnet-beta.solana.com"

	// Testnet constants.
	TestnetSolanaRPC   = "https://api.testnet.solana.com"
	TestnetSolanaWSRPC = "wss://api.testnet.solana.com"

	// Devnet constants.
	DevnetSolanaRPC   = "https://api.devnet.solana.com"
	DevnetSolanaWSRPC = "wss://api.devnet.solana.com"

	// Localnet constants.
	LocalnetSolanaRPC   = "http://127.0.0.1:8899"
	LocalnetSolanaWSRPC = "ws://127.0.0.1:8900"
)
