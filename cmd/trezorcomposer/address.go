package main

import (
	"github.com/urfave/cli/v2"
	"github.com/walletkit/trezor-composer/internal/config"
	"github.com/walletkit/trezor-composer/internal/core/application"
	"github.com/walletkit/trezor-composer/internal/core/domain"
)

var address = cli.Command{
	Name:  "address",
	Usage: "Resolve the addresses of a list of bip32 address descriptors",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "request",
			Usage:    "path of the JSON file with the list of descriptors, - for stdin",
			Required: true,
		},
	},
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	var descriptors []domain.AddressDescriptorInput
	if err := readRequest(ctx.String("request"), &descriptors); err != nil {
		return err
	}

	addresses, err := application.ResolveAddresses(descriptors, config.GetNetwork())
	if err != nil {
		return err
	}

	printRespJSON(addresses)
	return nil
}
