package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var navigate = cli.Command{
	Name:  "navigate",
	Usage: "evaluate a navigation between two pages",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "from",
			Usage: "the page navigating from, if any",
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the page to navigate to",
			Required: true,
		},
	},
	Action: navigateAction,
}

func navigateAction(ctx *cli.Context) error {
	return apiCall(http.MethodPost, "/v1/navigate", map[string]string{
		"from": ctx.String("from"),
		"to":   ctx.String("to"),
	})
}
