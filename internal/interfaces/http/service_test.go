package httpinterface_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oysy-network/oysy-wallet/internal/core/application/router"
	"github.com/oysy-network/oysy-wallet/internal/core/application/wallet"
	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/auth"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/i18n"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/ledger/ripplerest"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/notifier"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/oysy-network/oysy-wallet/internal/interfaces/http"
)

const (
	addrA = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	addrB = "rMwjYedjc7qqtKYVLiAccJSmCwih4LnE2q"
)

type testEnv struct {
	srv     *httptest.Server
	client  *http.Client
	authSvc *auth.Service
	wallet  *wallet.Service
}

func TestHTTPInterface(t *testing.T) {
	t.Run("Pages", testPages())
	t.Run("Navigate", testNavigate())
	t.Run("Accounts", testAccounts())
	t.Run("Balances", testBalances())
	t.Run("Settings", testSettings())
	t.Run("Requests", testRequests())
}

func TestNewService(t *testing.T) {
	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{Address: "nope"})
	require.Nil(t, svc)
	require.EqualError(t, err, "invalid opts: address is not valid: nope")
}

func testPages() func(*testing.T) {
	return func(t *testing.T) {
		env := newTestEnv(t)

		status, location, body := env.page(t, "/hello", "")
		require.Equal(t, http.StatusOK, status)
		require.Empty(t, location)
		require.Contains(t, body, `"route":"hello"`)

		status, location, _ = env.page(t, "/auth/admin/accounts", "/")
		require.Equal(t, http.StatusFound, status)
		require.Equal(t, "/login?redirect=%2Fauth%2Fadmin%2Faccounts", location)

		status, location, _ = env.page(t, "/some/unknown/page", "")
		require.Equal(t, http.StatusFound, status)
		require.Equal(t, "/", location)

		env.login(t, domain.RoleUser)

		status, location, _ = env.page(t, "/auth/admin/accounts", "/")
		require.Equal(t, http.StatusFound, status)
		require.Equal(t, "/", location)

		status, location, _ = env.page(t, "/login", "/hello")
		require.Equal(t, http.StatusFound, status)
		require.Equal(t, "/hello", location)

		status, _, body = env.page(t, "/auth/user/authenticated", "/")
		require.Equal(t, http.StatusOK, status)
		require.Contains(t, body, `"route":"user-authenticated"`)

		status, _ = env.do(t, http.MethodPost, "/v1/auth/logout", nil, nil)
		require.Equal(t, http.StatusNoContent, status)
		require.False(t, env.wallet.AuthSession().Authenticated)

		status, _ = env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
			"token": "invalid",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	}
}

func testNavigate() func(*testing.T) {
	return func(t *testing.T) {
		env := newTestEnv(t)
		env.login(t, domain.RoleAdmin)

		resp := map[string]string{}
		status, _ := env.do(t, http.MethodPost, "/v1/navigate", map[string]string{
			"from": "/", "to": "/auth/admin/accounts",
		}, &resp)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "allow", resp["decision"])
		require.Equal(t, "admin-accounts", resp["route"])

		resp = map[string]string{}
		status, _ = env.do(t, http.MethodPost, "/v1/navigate", map[string]string{
			"to": "relative",
		}, &resp)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "deny", resp["decision"])
	}
}

func testAccounts() func(*testing.T) {
	return func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, http.MethodPost, "/v1/accounts", domain.AccountCandidate{
			Address: addrA, Name: "savings", IsPrime: true,
		}, nil)
		require.Equal(t, http.StatusCreated, status)

		status, _ = env.do(t, http.MethodPost, "/v1/accounts", domain.AccountCandidate{
			Address: addrB, Name: "daily",
		}, nil)
		require.Equal(t, http.StatusCreated, status)

		status, _ = env.do(t, http.MethodPost, "/v1/accounts", domain.AccountCandidate{
			Address: addrB, Name: "again",
		}, nil)
		require.Equal(t, http.StatusConflict, status)

		status, _ = env.do(t, http.MethodPost, "/v1/accounts", domain.AccountCandidate{
			Name: "no address",
		}, nil)
		require.Equal(t, http.StatusBadRequest, status)

		list := struct {
			Accounts   []domain.Account `json:"accounts"`
			Configured bool             `json:"configured"`
		}{}
		status, _ = env.do(t, http.MethodGet, "/v1/accounts", nil, &list)
		require.Equal(t, http.StatusOK, status)
		require.True(t, list.Configured)
		require.Len(t, list.Accounts, 2)
		require.Equal(t, domain.UnconfirmedBalance, list.Accounts[0].Balance)

		prime := struct {
			PrimeAccount *domain.Account `json:"primeAccount"`
		}{}
		status, _ = env.do(t, http.MethodPost, "/v1/accounts/"+addrB+"/primary", nil, &prime)
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, prime.PrimeAccount)
		require.Equal(t, addrB, prime.PrimeAccount.Address)

		account := domain.Account{}
		status, _ = env.do(t, http.MethodGet, "/v1/accounts/"+addrB, nil, &account)
		require.Equal(t, http.StatusOK, status)
		require.True(t, account.IsPrime)

		status, _ = env.do(t, http.MethodDelete, "/v1/accounts/"+addrB, nil, nil)
		require.Equal(t, http.StatusNoContent, status)

		status, _ = env.do(t, http.MethodDelete, "/v1/accounts/"+addrB, nil, nil)
		require.Equal(t, http.StatusNotFound, status)

		status, _ = env.do(t, http.MethodGet, "/v1/accounts/"+addrB, nil, nil)
		require.Equal(t, http.StatusNotFound, status)

		account, ok := env.wallet.PrimeAccount()
		require.True(t, ok)
		require.Equal(t, addrA, account.Address)
	}
}

func testBalances() func(*testing.T) {
	return func(t *testing.T) {
		env := newTestEnv(t)

		status, _ := env.do(t, http.MethodPost, "/v1/balances/refresh", nil, nil)
		require.Equal(t, http.StatusConflict, status)

		status, _ = env.do(t, http.MethodPost, "/v1/accounts", domain.AccountCandidate{
			Address: addrA, Name: "savings",
		}, nil)
		require.Equal(t, http.StatusCreated, status)

		summary := map[string]string{}
		status, _ = env.do(t, http.MethodPost, "/v1/balances/refresh", map[string]bool{
			"wait": true,
		}, &summary)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "250.75", summary["sum"])
		require.NotEmpty(t, summary["lastUpdated"])

		summary = map[string]string{}
		status, _ = env.do(t, http.MethodGet, "/v1/balances/summary", nil, &summary)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "250.75", summary["sum"])

		status, _ = env.do(t, http.MethodPost, "/v1/balances/refresh", map[string]bool{
			"silent": true,
		}, nil)
		require.Equal(t, http.StatusAccepted, status)
	}
}

func testSettings() func(*testing.T) {
	return func(t *testing.T) {
		env := newTestEnv(t)

		settings := map[string]interface{}{}
		status, _ := env.do(t, http.MethodGet, "/v1/settings", nil, &settings)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, domain.AdvancedOptionsHidden, settings["showAdvancedOptions"])
		require.Equal(t, "false", settings["useCustomHost"])
		require.Equal(t, domain.DefaultCustomURL, settings["customURL"])

		settings = map[string]interface{}{}
		status, _ = env.do(t, http.MethodPost, "/v1/settings", map[string]string{
			"useCustomHost": "true",
			"customURL":     "wss://example.com:51233",
		}, &settings)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "true", settings["useCustomHost"])
		require.Equal(t, domain.AdvancedOptionsHidden, settings["showAdvancedOptions"])
		require.Equal(t, "wss://example.com:51233", env.wallet.BalanceEndpoint())

		settings = map[string]interface{}{}
		status, _ = env.do(t, http.MethodPost, "/v1/language", map[string]string{
			"language": "de",
		}, &settings)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "de", settings["language"])

		settings = map[string]interface{}{}
		status, _ = env.do(t, http.MethodPost, "/v1/offline", map[string]bool{
			"offline": true,
		}, &settings)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, settings["offline"])
	}
}

func testRequests() func(*testing.T) {
	return func(t *testing.T) {
		env := newTestEnv(t)

		for i := 0; i < 2; i++ {
			status, _ := env.do(t, http.MethodPost, "/v1/requests", map[string]interface{}{
				"payload": map[string]int{"seq": i},
			}, nil)
			require.Equal(t, http.StatusCreated, status)
		}

		resp := struct {
			Requests []domain.AccountRequest `json:"requests"`
		}{}
		status, _ := env.do(t, http.MethodGet, "/v1/requests", nil, &resp)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Requests, 2)
		require.JSONEq(t, `{"seq":0}`, string(resp.Requests[0].Payload))
		require.JSONEq(t, `{"seq":1}`, string(resp.Requests[1].Payload))
		require.NotEqual(t, resp.Requests[0].ID, resp.Requests[1].ID)
	}
}

func newTestEnv(t *testing.T) *testEnv {
	ledger := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"balances":[{"value":"250.75","currency":"XRP"}]}`)
	}))
	t.Cleanup(ledger.Close)

	translator, err := i18n.NewTranslator()
	require.NoError(t, err)
	feed := notifier.NewHub()
	notifications := notifier.NewMulti(feed, notifier.NewLogNotifier())

	walletSvc, err := wallet.NewService(wallet.ServiceOpts{
		Store:      inmemory.NewKeyValueStore(),
		Ledger:     ripplerest.NewService(time.Second, 100),
		Notifier:   notifications,
		Translator: translator,
		LedgerHost: ledger.URL,
	})
	require.NoError(t, err)

	table, err := router.NewTable(router.DefaultRoutes)
	require.NoError(t, err)
	controller, err := router.NewController(router.ControllerOpts{
		Routes:     table,
		Session:    walletSvc,
		Language:   walletSvc,
		Notifier:   notifications,
		Translator: translator,
		Progress:   notifications,
	})
	require.NoError(t, err)

	authSvc := auth.NewService("test secret", time.Hour)
	handler, err := httpinterface.NewHandler(httpinterface.ServiceOpts{
		Address:    ":0",
		WalletSvc:  walletSvc,
		Controller: controller,
		AuthSvc:    authSvc,
		Feed:       feed,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		feed.Close()
		walletSvc.Close()
	})

	return &testEnv{
		srv: srv,
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		authSvc: authSvc,
		wallet:  walletSvc,
	}
}

func (e *testEnv) login(t *testing.T, role domain.Role) {
	token, err := e.authSvc.IssueToken(domain.User{Username: "alice"}, role)
	require.NoError(t, err)

	session := map[string]interface{}{}
	status, _ := e.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"token": token,
	}, &session)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, session["authenticated"])
	require.Equal(t, string(role), session["role"])
	require.Equal(t, "alice", session["username"])
}

func (e *testEnv) page(t *testing.T, path, referrer string) (int, string, string) {
	req, err := http.NewRequest(http.MethodGet, e.srv.URL+path, nil)
	require.NoError(t, err)
	if referrer != "" {
		req.Header.Set("Referer", e.srv.URL+referrer)
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (e *testEnv) do(
	t *testing.T, method, path string, in, out interface{},
) (int, string) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		require.NoError(t, err)
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(buf) > 0 && resp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(buf, out), strings.TrimSpace(string(buf)))
	}
	return resp.StatusCode, string(buf)
}
