package main

import (
	"os"

	"github.com/nftquarry/quarry/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
