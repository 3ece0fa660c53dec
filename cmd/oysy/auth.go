package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/auth"
)

var token = cli.Command{
	Name:  "token",
	Usage: "sign a session token with the secret of the local state",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Usage:    "the user the token is issued to",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "role",
			Usage: "the role of the user: ROLE_USER or ROLE_ADMIN",
			Value: string(domain.RoleUser),
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "the validity of the token",
			Value: auth.DefaultTokenTTL,
		},
	},
	Action: tokenAction,
}

var login = cli.Command{
	Name:  "login",
	Usage: "log in the wallet with a session token",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "the session token",
			Required: true,
		},
	},
	Action: loginAction,
}

var logout = cli.Command{
	Name:   "logout",
	Usage:  "log out of the wallet",
	Action: logoutAction,
}

var session = cli.Command{
	Name:   "session",
	Usage:  "show the current auth session",
	Action: sessionAction,
}

func tokenAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}
	secret := state["secret"]
	if secret == "" {
		return errors.New("set the daemon secret with `config set secret`")
	}

	role, err := domain.ParseRole(ctx.String("role"))
	if err != nil {
		return err
	}

	svc := auth.NewService(secret, ctx.Duration("ttl"))
	tok, err := svc.IssueToken(domain.User{Username: ctx.String("username")}, role)
	if err != nil {
		return err
	}

	fmt.Println(tok)
	return nil
}

func loginAction(ctx *cli.Context) error {
	return apiCall(http.MethodPost, "/v1/auth/login", map[string]string{
		"token": ctx.String("token"),
	})
}

func logoutAction(ctx *cli.Context) error {
	if err := apiCall(http.MethodPost, "/v1/auth/logout", nil); err != nil {
		return err
	}
	fmt.Println("logged out at", time.Now().Format(time.RFC3339))
	return nil
}

func sessionAction(ctx *cli.Context) error {
	return apiCall(http.MethodGet, "/v1/auth/session", nil)
}
