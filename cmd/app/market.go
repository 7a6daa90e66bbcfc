package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"MoneyRoutine/internal/di"
	"MoneyRoutine/pkg/config"
)

type marketCmd struct {
	configPath string
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "fetch one market snapshot and print it as JSON" }
func (*marketCmd) Usage() string {
	return `market [-config <path>]

  Queries every market source once, applies fallbacks and prints the result.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", defaultConfigPath, "config file path")
}

func (c *marketCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.LoadWithEnv(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return subcommands.ExitFailure
	}
	// keep stdout clean for the JSON document
	cfg.Log.Output = "stderr"

	agg, err := di.InitializeMarket(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	data, err := agg.Aggregate(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
