package httpinterface

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	log "github.com/sirupsen/logrus"

	"github.com/oysy-network/oysy-wallet/internal/core/application/router"
	"github.com/oysy-network/oysy-wallet/internal/core/application/wallet"
	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/auth"
)

const maxBodySize = 1 << 20

type handler struct {
	walletSvc  *wallet.Service
	controller *router.Controller
	authSvc    *auth.Service
}

type route struct {
	method  string
	pattern string
	handler runtime.HandlerFunc
}

func (h *handler) registerRoutes(mux *runtime.ServeMux) error {
	routes := []route{
		{http.MethodPost, "/v1/navigate", h.navigate},
		{http.MethodPost, "/v1/auth/login", h.login},
		{http.MethodPost, "/v1/auth/logout", h.logout},
		{http.MethodGet, "/v1/auth/session", h.getSession},
		{http.MethodGet, "/v1/accounts", h.listAccounts},
		{http.MethodPost, "/v1/accounts", h.registerAccount},
		{http.MethodGet, "/v1/accounts/{address}", h.getAccount},
		{http.MethodDelete, "/v1/accounts/{address}", h.deleteAccount},
		{http.MethodPost, "/v1/accounts/{address}/primary", h.setPrimaryAccount},
		{http.MethodPost, "/v1/balances/refresh", h.refreshBalance},
		{http.MethodGet, "/v1/balances/summary", h.getBalanceSummary},
		{http.MethodGet, "/v1/settings", h.getSettings},
		{http.MethodPost, "/v1/settings", h.updateSettings},
		{http.MethodPost, "/v1/language", h.updateLanguage},
		{http.MethodPost, "/v1/offline", h.setOffline},
		{http.MethodGet, "/v1/requests", h.listAccountRequests},
		{http.MethodPost, "/v1/requests", h.addAccountRequest},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return err
		}
	}
	return nil
}

/*
 * Pages
 */

// page evaluates the navigation to the requested path. The origin is taken
// from the Referer header, if any.
func (h *handler) page(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	to, decision, err := h.controller.Navigate(referrerPath(r), r.URL.RequestURI())
	if err != nil {
		log.WithError(err).Debug("ignoring invalid referrer")
		to, decision, err = h.controller.Navigate("", r.URL.RequestURI())
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	switch decision.Kind {
	case router.Allow:
		writeJSON(w, http.StatusOK, pageResponse{Route: to.Name, Path: to.FullPath})
	case router.Redirect:
		http.Redirect(w, r, decision.Location(), http.StatusFound)
	default:
		writeError(w, http.StatusBadRequest, router.ErrMalformedPath)
	}
}

func referrerPath(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return ""
	}
	return u.RequestURI()
}

func (h *handler) navigate(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := navigateRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	to, decision, err := h.controller.Navigate(req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, newDecisionResponse(to, decision))
}

/*
 * Auth
 */

func (h *handler) login(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := loginRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	session, user, err := h.authSvc.ParseToken(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	h.walletSvc.SetAuthSession(session, user)
	writeJSON(w, http.StatusOK, newSessionResponse(session, user))
}

func (h *handler) logout(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	h.walletSvc.ClearAuthSession()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getSession(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, newSessionResponse(
		h.walletSvc.AuthSession(), h.walletSvc.User(),
	))
}

/*
 * Accounts
 */

func (h *handler) listAccounts(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, accountsResponse{
		Accounts:          h.walletSvc.Accounts(),
		Configured:        h.walletSvc.Configured(),
		AccountConfigured: h.walletSvc.AccountConfigured(),
	})
}

func (h *handler) registerAccount(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	candidate := domain.AccountCandidate{}
	if err := readJSON(r, &candidate); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.walletSvc.RegisterAccount(candidate); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrAccountAlreadyExists) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return
	}

	account, _ := h.walletSvc.FindAccountByAddress(candidate.Address)
	writeJSON(w, http.StatusCreated, account)
}

func (h *handler) getAccount(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	account, ok := h.walletSvc.FindAccountByAddress(params["address"])
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrAccountNotFound)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *handler) deleteAccount(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	if err := h.walletSvc.DeleteAccount(params["address"]); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) setPrimaryAccount(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	h.walletSvc.SetPrimaryAccount(params["address"])

	resp := primeAccountResponse{}
	if account, ok := h.walletSvc.PrimeAccount(); ok {
		resp.PrimeAccount = &account
	}
	writeJSON(w, http.StatusOK, resp)
}

/*
 * Balances
 */

func (h *handler) refreshBalance(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := refreshRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// A refresh not waited for must outlive the request.
	ctx := context.Background()
	if req.Wait {
		ctx = r.Context()
	}
	done, err := h.walletSvc.RefreshBalance(ctx, wallet.RefreshOpts{
		Silent:   req.Silent,
		Endpoint: req.Endpoint,
	})
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	if !req.Wait {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	select {
	case <-done:
		writeJSON(w, http.StatusOK, h.balanceSummary())
	case <-r.Context().Done():
	}
}

func (h *handler) getBalanceSummary(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, h.balanceSummary())
}

func (h *handler) balanceSummary() balanceSummaryResponse {
	resp := balanceSummaryResponse{
		Sum:      h.walletSvc.SumOfBalances().String(),
		Endpoint: h.walletSvc.BalanceEndpoint(),
	}
	if updated, ok := h.walletSvc.LastBalanceUpdated(); ok {
		resp.LastUpdated = updated
	}
	if account, ok := h.walletSvc.PrimeAccount(); ok {
		resp.PrimeAccount = &account
	}
	return resp
}

/*
 * Settings
 */

func (h *handler) getSettings(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, h.settings())
}

func (h *handler) updateSettings(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := updateSettingsRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.ShowAdvancedOptions != nil {
		h.walletSvc.SetAdvancedOptionsShown(*req.ShowAdvancedOptions)
	}
	if req.UseCustomHost != nil {
		h.walletSvc.SetCustomHostUsed(*req.UseCustomHost)
	}
	if req.CustomURL != nil {
		h.walletSvc.SetCustomURL(*req.CustomURL)
	}
	writeJSON(w, http.StatusOK, h.settings())
}

func (h *handler) updateLanguage(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := languageRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.walletSvc.UpdateLanguage(req.Language)
	writeJSON(w, http.StatusOK, h.settings())
}

func (h *handler) setOffline(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := offlineRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.walletSvc.SetOffline(req.Offline)
	writeJSON(w, http.StatusOK, h.settings())
}

func (h *handler) settings() settingsResponse {
	return settingsResponse{
		Settings: h.walletSvc.Settings(),
		Language: h.walletSvc.Language(),
		Offline:  h.walletSvc.Offline(),
	}
}

/*
 * Surprise requests
 */

func (h *handler) listAccountRequests(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, accountRequestsResponse{
		Requests: h.walletSvc.SurpriseRequests(),
	})
}

func (h *handler) addAccountRequest(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	req := accountRequestRequest{}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	request := domain.AccountRequest{
		ID:          uuid.New().String(),
		RequestedAt: time.Now().Unix(),
		Payload:     req.Payload,
	}
	h.walletSvc.AddAccountRequest(request)
	writeJSON(w, http.StatusCreated, request)
}

func readJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}
	if len(body) <= 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
