package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var settings = cli.Command{
	Name:   "settings",
	Usage:  "print the wallet settings",
	Action: settingsAction,
	Subcommands: []*cli.Command{
		{
			Name:  "set",
			Usage: "update the wallet settings",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "show_advanced_options",
					Usage: "whether to show the advanced options",
				},
				&cli.StringFlag{
					Name:  "use_custom_host",
					Usage: "whether to query balances from the custom url: true or false",
				},
				&cli.StringFlag{
					Name:  "custom_url",
					Usage: "the custom ledger url",
				},
			},
			Action: settingsSetAction,
		},
	},
}

var language = cli.Command{
	Name:      "language",
	Usage:     "set the language of the wallet",
	ArgsUsage: "<language>",
	Action:    languageAction,
}

var offline = cli.Command{
	Name:  "offline",
	Usage: "set the offline flag of the wallet",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "off",
			Usage: "unset the flag",
		},
	},
	Action: offlineAction,
}

func settingsAction(ctx *cli.Context) error {
	return apiCall(http.MethodGet, "/v1/settings", nil)
}

func settingsSetAction(ctx *cli.Context) error {
	req := map[string]string{}
	flags := map[string]string{
		"show_advanced_options": "showAdvancedOptions",
		"use_custom_host":       "useCustomHost",
		"custom_url":            "customURL",
	}
	for flag, key := range flags {
		if ctx.IsSet(flag) {
			req[key] = ctx.String(flag)
		}
	}
	if len(req) <= 0 {
		return &invalidUsageError{ctx, "set"}
	}
	return apiCall(http.MethodPost, "/v1/settings", req)
}

func languageAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "language"}
	}
	return apiCall(http.MethodPost, "/v1/language", map[string]string{
		"language": ctx.Args().First(),
	})
}

func offlineAction(ctx *cli.Context) error {
	return apiCall(http.MethodPost, "/v1/offline", map[string]bool{
		"offline": !ctx.Bool("off"),
	})
}
