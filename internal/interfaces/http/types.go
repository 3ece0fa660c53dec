package httpinterface

import (
	"encoding/json"

	"github.com/oysy-network/oysy-wallet/internal/core/application/router"
	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type pageResponse struct {
	Route string `json:"route"`
	Path  string `json:"path"`
}

type navigateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type decisionResponse struct {
	Decision string `json:"decision"`
	Route    string `json:"route,omitempty"`
	Location string `json:"location,omitempty"`
}

func newDecisionResponse(to router.Route, d router.Decision) decisionResponse {
	return decisionResponse{
		Decision: d.Kind.String(),
		Route:    to.Name,
		Location: d.Location(),
	}
}

type loginRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Username      string `json:"username,omitempty"`
}

func newSessionResponse(s domain.AuthSession, u domain.User) sessionResponse {
	return sessionResponse{
		Authenticated: s.Authenticated,
		Role:          string(s.Role),
		Username:      u.Username,
	}
}

type accountsResponse struct {
	Accounts          []domain.Account `json:"accounts"`
	Configured        bool             `json:"configured"`
	AccountConfigured bool             `json:"accountConfigured"`
}

type primeAccountResponse struct {
	PrimeAccount *domain.Account `json:"primeAccount"`
}

type refreshRequest struct {
	Silent   bool   `json:"silent"`
	Wait     bool   `json:"wait"`
	Endpoint string `json:"endpoint"`
}

type balanceSummaryResponse struct {
	Sum          string          `json:"sum"`
	LastUpdated  string          `json:"lastUpdated,omitempty"`
	Endpoint     string          `json:"endpoint"`
	PrimeAccount *domain.Account `json:"primeAccount,omitempty"`
}

type updateSettingsRequest struct {
	ShowAdvancedOptions *string `json:"showAdvancedOptions"`
	UseCustomHost       *string `json:"useCustomHost"`
	CustomURL           *string `json:"customURL"`
}

type settingsResponse struct {
	domain.Settings
	Language string `json:"language"`
	Offline  bool   `json:"offline"`
}

type languageRequest struct {
	Language string `json:"language"`
}

type offlineRequest struct {
	Offline bool `json:"offline"`
}

type accountRequestRequest struct {
	Payload json.RawMessage `json:"payload"`
}

type accountRequestsResponse struct {
	Requests []domain.AccountRequest `json:"requests"`
}
