package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/nftquarry/quarry/config"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/quarry"
)

const usage = "usage: fetch --rewarder <address> [--mint <address>]"

type options struct {
	rewarder solana.PublicKey
	mint     *solana.PublicKey
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	rewarderFlag := fs.String("rewarder", "", "Rewarder address")
	mintFlag := fs.String("mint", "", "Staked token mint of the quarry to show")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *rewarderFlag == "" {
		return nil, errors.New("--rewarder is required")
	}
	rewarder, err := solana.PublicKeyFromBase58(*rewarderFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --rewarder: %w", err)
	}
	opts := &options{rewarder: rewarder}
	if *mintFlag != "" {
		mint, err := solana.PublicKeyFromBase58(*mintFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid --mint: %w", err)
		}
		opts.mint = &mint
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("%v\n%s", err, usage)
	}

	cfg, err := config.NetworkConfigForEnv(config.EnvMainnetBeta)
	if err != nil {
		log.Fatalf("error while loading config: %v", err)
	}
	rpcClient := rpc.New(cfg.SolanaRPCURL)
	sdk, err := quarry.New(slog.New(slog.NewTextHandler(os.Stderr, nil)), rpcClient, nil, cfg.Programs)
	if err != nil {
		log.Fatalf("error while creating sdk: %v", err)
	}
	defer sdk.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rewarder, err := sdk.Mine().LoadRewarderWrapper(ctx, opts.rewarder)
	if err != nil {
		log.Fatalf("error while loading rewarder: %v", err)
	}
	fmt.Printf("Rewarder %s: %d quarries, %d rewards/year\n", rewarder.Key(), rewarder.Data().NumQuarries, rewarder.Data().AnnualRewardsRate)

	if opts.mint == nil {
		return
	}
	q, err := rewarder.GetQuarry(ctx, *opts.mint)
	if err != nil {
		log.Fatalf("error while loading quarry: %v", err)
	}
	fmt.Printf("Quarry %s: %+v\n", q.Key(), *q.Data())
}
