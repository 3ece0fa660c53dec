package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var listrequests = cli.Command{
	Name:   "listrequests",
	Usage:  "list the logged account requests",
	Action: listRequestsAction,
}

var addrequest = cli.Command{
	Name:      "addrequest",
	Usage:     "log a new account request with the given JSON payload",
	ArgsUsage: "<payload>",
	Action:    addRequestAction,
}

func listRequestsAction(ctx *cli.Context) error {
	return apiCall(http.MethodGet, "/v1/requests", nil)
}

func addRequestAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "addrequest"}
	}
	payload := ctx.Args().First()
	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("payload must be valid JSON")
	}
	return apiCall(http.MethodPost, "/v1/requests", map[string]json.RawMessage{
		"payload": json.RawMessage(payload),
	})
}
