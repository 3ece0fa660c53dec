package ripplerest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
	"github.com/oysy-network/oysy-wallet/pkg/circuitbreaker"
)

const (
	// DefaultRequestTimeout is the timeout of every request to the ledger.
	DefaultRequestTimeout = 15 * time.Second
	// DefaultRateLimit is the max number of requests per second.
	DefaultRateLimit = 5
)

type service struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewService returns a ledger client speaking the REST API of a ripple node.
// Zero values for requestTimeout and rateLimit select the defaults.
func NewService(requestTimeout time.Duration, rateLimit int) ports.Ledger {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}
	return &service{
		client:  &http.Client{Timeout: requestTimeout},
		cb:      circuitbreaker.NewCircuitBreaker("ledger"),
		limiter: ratelimit.New(rateLimit),
	}
}

func (s *service) GetBalances(
	ctx context.Context, address, endpoint string, silent bool,
) ([]ports.Balance, error) {
	if len(address) <= 0 {
		return nil, ErrMissingAddress
	}
	if strings.Contains(address, "/") {
		return nil, ErrInvalidAddress
	}
	reqURL, err := balancesURL(endpoint, address)
	if err != nil {
		return nil, err
	}

	logger := log.WithField("url", reqURL)
	if silent {
		logger.Debug("querying balances in background")
	} else {
		logger.Debug("querying balances")
	}

	res, err := s.cb.Execute(func() (interface{}, error) {
		s.limiter.Take()
		return s.getBalances(ctx, reqURL)
	})
	if err != nil {
		return nil, err
	}
	return res.([]ports.Balance), nil
}

func (s *service) getBalances(
	ctx context.Context, reqURL string,
) ([]ports.Balance, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	rs, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		return nil, err
	}
	if rs.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w: status %d, %s", ErrUnexpectedResponse, rs.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	resp := balancesResponse{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, err)
	}
	return resp.toPortable()
}

// balancesURL builds the balance query URL for the given endpoint. Websocket
// endpoints, like the default custom host, are mapped to their http
// counterpart.
func balancesURL(endpoint, address string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidEndpoint, err)
	}
	switch u.Scheme {
	case "http", "https":
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	default:
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if len(u.Host) <= 0 {
		return "", fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}
	return u.JoinPath("accounts", address, "balances").String(), nil
}

type balancesResponse struct {
	Balances []balance `json:"balances"`
}

func (r balancesResponse) toPortable() ([]ports.Balance, error) {
	list := make([]ports.Balance, 0, len(r.Balances))
	for _, b := range r.Balances {
		if b.Value != domain.UnconfirmedBalance {
			if _, err := decimal.NewFromString(b.Value); err != nil {
				return nil, fmt.Errorf(
					"%w: invalid balance value %q", ErrUnexpectedResponse, b.Value,
				)
			}
		}
		list = append(list, b)
	}
	return list, nil
}

type balance struct {
	Value        string `json:"value"`
	Currency     string `json:"currency"`
	Counterparty string `json:"counterparty"`
}

func (b balance) GetValue() string        { return b.Value }
func (b balance) GetCurrency() string     { return b.Currency }
func (b balance) GetCounterparty() string { return b.Counterparty }
