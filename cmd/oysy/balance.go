package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var refresh = cli.Command{
	Name:  "refresh",
	Usage: "query the ledger for the balance of the first account",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "silent",
			Usage: "don't notify the user once done",
		},
		&cli.BoolFlag{
			Name:  "wait",
			Usage: "wait for the query to complete and print the summary",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "the ledger endpoint to query, defaults to the configured one",
		},
	},
	Action: refreshAction,
}

var summary = cli.Command{
	Name:   "summary",
	Usage:  "print the sum of balances and the time of the last update",
	Action: summaryAction,
}

func refreshAction(ctx *cli.Context) error {
	return apiCall(http.MethodPost, "/v1/balances/refresh", map[string]interface{}{
		"silent":   ctx.Bool("silent"),
		"wait":     ctx.Bool("wait"),
		"endpoint": ctx.String("endpoint"),
	})
}

func summaryAction(ctx *cli.Context) error {
	return apiCall(http.MethodGet, "/v1/balances/summary", nil)
}
