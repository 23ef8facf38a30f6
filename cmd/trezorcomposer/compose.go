package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/walletkit/trezor-composer/internal/config"
	"github.com/walletkit/trezor-composer/internal/core/application"
	"github.com/walletkit/trezor-composer/pkg/mathutil"
	"github.com/walletkit/trezor-composer/pkg/stats"
)

var compose = cli.Command{
	Name:  "compose",
	Usage: "Compose a transaction and print the inputs and outputs for the device",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "request",
			Usage:    "path of the JSON file with the composition request, - for stdin",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "fee-per-kb",
			Usage: "the fee rate in satoshi per kilobyte, overrides the one of the request",
		},
		&cli.StringFlag{
			Name:  "sats-per-byte",
			Usage: "the fee rate in satoshi per byte, alternative to --fee-per-kb",
		},
	},
	Action: composeAction,
}

func composeAction(ctx *cli.Context) error {
	var req application.TrezorTransactionOpts
	if err := readRequest(ctx.String("request"), &req); err != nil {
		return err
	}
	switch {
	case ctx.IsSet("fee-per-kb") && ctx.IsSet("sats-per-byte"):
		return errors.New("--fee-per-kb and --sats-per-byte are mutually exclusive")
	case ctx.IsSet("fee-per-kb"):
		feePerKb := ctx.Uint64("fee-per-kb")
		req.FeePerKb = &feePerKb
	case ctx.IsSet("sats-per-byte"):
		satsPerByte, err := decimal.NewFromString(ctx.String("sats-per-byte"))
		if err != nil || !satsPerByte.IsPositive() {
			return fmt.Errorf("invalid --sats-per-byte %q", ctx.String("sats-per-byte"))
		}
		feePerKb := mathutil.SatsPerKbFromSatsPerByte(satsPerByte)
		req.FeePerKb = &feePerKb
	}

	svc, cleanup, err := newTrezorService()
	if err != nil {
		return err
	}
	defer cleanup()
	defer dumpStats()

	tx, err := svc.BuildTransaction(ctx.Context, req)
	if err != nil {
		return err
	}

	if !tx.Valid() {
		errs := make([]string, 0, len(tx.Errors()))
		for _, e := range tx.Errors() {
			errs = append(errs, e.Error())
		}
		printRespJSON(map[string]interface{}{
			"id":     tx.ID(),
			"errors": errs,
		})
		return errors.New("transaction is not valid")
	}

	printRespJSON(tx.Result())
	return nil
}

func dumpStats() {
	if !config.GetBool(config.EnableStatsKey) {
		return
	}

	stats.PrintCompositions()
	path := filepath.Join(
		config.GetDatadir(), config.StatsLocation, config.StatsFile,
	)
	if err := stats.DumpPrometheusDefaults(path); err != nil {
		log.WithError(err).Warnf("failed to dump stats to %s", path)
	}
}
