package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"

	"github.com/oysy-network/oysy-wallet/pkg/util"
)

var (
	oysyDataDir = btcutil.AppDataDir("oysy-cli", false)
	statePath   = filepath.Join(oysyDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "oysy CLI"
	app.Usage = "Command line interface for the oysy wallet daemon"
	app.Commands = append(
		app.Commands,
		&config,
		&token,
		&login,
		&logout,
		&session,
		&navigate,
		&listaccounts,
		&getaccount,
		&addaccount,
		&deleteaccount,
		&setprimary,
		&refresh,
		&summary,
		&settings,
		&language,
		&offline,
		&listrequests,
		&addrequest,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(filepath.Dir(statePath)); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(statePath), os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

// apiCall sends a request to the daemon and prints its JSON response.
func apiCall(method, path string, body interface{}) error {
	state, err := getState()
	if err != nil {
		return err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return errors.New("set rpcserver with `config set rpcserver`")
	}

	var bodyString string
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyString = string(buf)
	}

	url := strings.TrimSuffix(address, "/") + path
	status, resp, err := util.NewHTTPRequest(method, url, bodyString, map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return fmt.Errorf("unable to connect to daemon: %w", err)
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("%d %s: %s", status, http.StatusText(status), errorMessage(resp))
	}

	printRespJSON(resp)
	return nil
}

func errorMessage(resp string) string {
	body := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal([]byte(resp), &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(resp)
}

func printRespJSON(resp string) {
	if len(strings.TrimSpace(resp)) <= 0 {
		return
	}

	out := &bytes.Buffer{}
	if err := json.Indent(out, []byte(resp), "", "\t"); err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(out.String())
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[oysy] %v\n", err)
	}
	os.Exit(1)
}
