package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

var addressFlag = cli.StringFlag{
	Name:     "address",
	Usage:    "the ledger address of the account",
	Required: true,
}

var listaccounts = cli.Command{
	Name:   "listaccounts",
	Usage:  "list all configured accounts",
	Action: listAccountsAction,
}

var getaccount = cli.Command{
	Name:   "getaccount",
	Usage:  "get the account with the given address",
	Flags:  []cli.Flag{&addressFlag},
	Action: getAccountAction,
}

var addaccount = cli.Command{
	Name:  "addaccount",
	Usage: "register a new account",
	Flags: []cli.Flag{
		&addressFlag,
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the name of the account",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "prime",
			Usage: "make the new account the prime one",
		},
	},
	Action: addAccountAction,
}

var deleteaccount = cli.Command{
	Name:   "deleteaccount",
	Usage:  "delete the account with the given address",
	Flags:  []cli.Flag{&addressFlag},
	Action: deleteAccountAction,
}

var setprimary = cli.Command{
	Name:   "setprimary",
	Usage:  "make the account with the given address the prime one",
	Flags:  []cli.Flag{&addressFlag},
	Action: setPrimaryAction,
}

func listAccountsAction(ctx *cli.Context) error {
	return apiCall(http.MethodGet, "/v1/accounts", nil)
}

func getAccountAction(ctx *cli.Context) error {
	return apiCall(http.MethodGet, accountPath(ctx.String("address")), nil)
}

func addAccountAction(ctx *cli.Context) error {
	return apiCall(http.MethodPost, "/v1/accounts", domain.AccountCandidate{
		Address: ctx.String("address"),
		Name:    ctx.String("name"),
		IsPrime: ctx.Bool("prime"),
	})
}

func deleteAccountAction(ctx *cli.Context) error {
	return apiCall(http.MethodDelete, accountPath(ctx.String("address")), nil)
}

func setPrimaryAction(ctx *cli.Context) error {
	return apiCall(
		http.MethodPost, accountPath(ctx.String("address"))+"/primary", nil,
	)
}

func accountPath(address string) string {
	return "/v1/accounts/" + url.PathEscape(address)
}
