package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
	"github.com/walletkit/trezor-composer/internal/config"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print the current configuration",
	Action: configAction,
}

func configAction(ctx *cli.Context) error {
	all := config.GetAll()

	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%s: %v\n", key, all[key])
	}
	return nil
}
