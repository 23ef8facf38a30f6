package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/walletkit/trezor-composer/internal/config"
)

var (
	networkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "the bitcoin network: mainnet, testnet, regtest or signet",
	}
	explorerFlag = cli.StringFlag{
		Name:  "explorer-url",
		Usage: "the base url of the esplora REST api",
	}
	datadirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "the data directory for the tx cache and stats",
	}
	noCacheFlag = cli.BoolFlag{
		Name:  "no-cache",
		Usage: "do not cache previous transactions",
	}
	logLevelFlag = cli.IntFlag{
		Name:  "log-level",
		Usage: "the logrus level, from 0 (panic) to 6 (trace)",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "trezor-composer"
	app.Usage = "Compose bitcoin transactions to be signed with a Trezor device"
	app.Flags = []cli.Flag{
		&networkFlag,
		&explorerFlag,
		&datadirFlag,
		&noCacheFlag,
		&logLevelFlag,
	}
	app.Before = initConfig
	app.Commands = append(
		app.Commands,
		&configCmd,
		&address,
		&compose,
	)

	return app
}

// initConfig loads the config from env, overridden by the global flags
// explicitly set.
func initConfig(ctx *cli.Context) error {
	overrides := make(map[string]interface{})
	if ctx.IsSet(networkFlag.Name) {
		overrides[config.NetworkKey] = ctx.String(networkFlag.Name)
	}
	if ctx.IsSet(explorerFlag.Name) {
		overrides[config.ExplorerUrlKey] = ctx.String(explorerFlag.Name)
	}
	if ctx.IsSet(datadirFlag.Name) {
		overrides[config.DatadirKey] = ctx.String(datadirFlag.Name)
	}
	if ctx.IsSet(noCacheFlag.Name) {
		overrides[config.NoCacheKey] = ctx.Bool(noCacheFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		overrides[config.LogLevelKey] = ctx.Int(logLevelFlag.Name)
	}

	if err := config.InitConfig(overrides); err != nil {
		return err
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	return nil
}

// readRequest decodes the JSON file at path into req. A "-" path reads from
// stdin.
func readRequest(path string, req interface{}) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}

	if err := json.NewDecoder(r).Decode(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

func fatal(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[trezor-composer] %v\n", err)
	os.Exit(1)
}
