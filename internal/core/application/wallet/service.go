package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
	"github.com/oysy-network/oysy-wallet/pkg/stats"
)

const completeQueryKey = "userAccounts.alerts.completeQuery"

// RefreshOpts are the options of a balance refresh. An empty Endpoint means
// the one returned by BalanceEndpoint.
type RefreshOpts struct {
	Silent   bool
	Endpoint string
}

type ServiceOpts struct {
	Store      ports.KeyValueStore
	Ledger     ports.Ledger
	Notifier   ports.Notifier
	Translator ports.Translator

	// LedgerHost is the balance endpoint used when no custom host is set.
	LedgerHost     string
	StorageKey     string
	PersistedPaths []string
}

func (o ServiceOpts) validate() error {
	if o.Store == nil {
		return fmt.Errorf("missing key-value store")
	}
	if o.Ledger == nil {
		return fmt.Errorf("missing ledger service")
	}
	if o.Notifier == nil {
		return fmt.Errorf("missing notifier")
	}
	if o.Translator == nil {
		return fmt.Errorf("missing translator")
	}
	if len(o.LedgerHost) <= 0 {
		return fmt.Errorf("missing ledger host")
	}
	return nil
}

// Service is the single source of truth for wallet accounts, balances and
// user preferences. Every mutation is mirrored to the key-value store.
type Service struct {
	lock  *sync.RWMutex
	state *state

	store          ports.KeyValueStore
	storageKey     string
	persistedPaths []string

	ledger     ports.Ledger
	notifier   ports.Notifier
	translator ports.Translator
	ledgerHost string

	now func() time.Time
}

// NewService returns a new Service with the state rehydrated from the
// given store, if any was previously persisted.
func NewService(opts ServiceOpts) (*Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	storageKey := opts.StorageKey
	if len(storageKey) <= 0 {
		storageKey = DefaultStorageKey
	}
	paths := opts.PersistedPaths
	if len(paths) <= 0 {
		paths = DefaultPersistedPaths
	}

	st := newState()
	buf, err := opts.Store.Get(context.Background(), storageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted state: %w", err)
	}
	if buf != nil {
		if err := st.rehydrate(buf, paths); err != nil {
			return nil, fmt.Errorf("failed to rehydrate state: %w", err)
		}
		log.Debugf("restored %d accounts from storage", len(st.Config.Accounts))
	}
	stats.ConfiguredAccounts.Set(float64(len(st.Config.Accounts)))

	return &Service{
		lock:           &sync.RWMutex{},
		state:          st,
		store:          opts.Store,
		storageKey:     storageKey,
		persistedPaths: paths,
		ledger:         opts.Ledger,
		notifier:       opts.Notifier,
		translator:     opts.Translator,
		ledgerHost:     opts.LedgerHost,
		now:            time.Now,
	}, nil
}

// RegisterAccount adds a new account to the wallet. Invalid candidates are
// logged and dropped without touching the state.
func (s *Service) RegisterAccount(candidate domain.AccountCandidate) error {
	err := s.mutate(func(st *state) error {
		return st.Config.RegisterAccount(candidate)
	})
	if err != nil {
		log.WithError(err).WithField("address", candidate.Address).
			Warn("invalid account config")
	}
	return err
}

// DeleteAccount removes the account with the given address, that must exist.
func (s *Service) DeleteAccount(address string) error {
	return s.mutate(func(st *state) error {
		return st.Config.DeleteAccount(address)
	})
}

// SetPrimaryAccount makes the account with the given address the prime one.
// An unknown address leaves the wallet without prime account.
func (s *Service) SetPrimaryAccount(address string) {
	s.mutate(func(st *state) error {
		if !st.Config.SetPrimaryAccount(address) {
			log.WithField("address", address).
				Warn("no account matches primary address, prime cleared")
		}
		return nil
	})
}

// RefreshBalance queries the ledger for the balance of the first account in
// background. The returned channel is closed once the result, either success
// or failure, has been handled. Failures are only logged.
// Overlapping refreshes are not coalesced, the last to complete wins.
func (s *Service) RefreshBalance(
	ctx context.Context, opts RefreshOpts,
) (<-chan struct{}, error) {
	s.lock.RLock()
	account, ok := s.state.Config.FirstAccount()
	var address string
	if ok {
		address = account.Address
	}
	s.lock.RUnlock()

	if !ok {
		return nil, domain.ErrNoAccounts
	}

	endpoint := opts.Endpoint
	if len(endpoint) <= 0 {
		endpoint = s.BalanceEndpoint()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.refreshBalance(ctx, address, endpoint, opts.Silent)
	}()
	return done, nil
}

func (s *Service) SetAdvancedOptionsShown(shown string) {
	s.mutate(func(st *state) error {
		st.Settings.ShowAdvancedOptions = shown
		return nil
	})
}

func (s *Service) SetCustomHostUsed(used string) {
	s.mutate(func(st *state) error {
		st.Settings.UseCustomHost = used
		return nil
	})
}

func (s *Service) SetCustomURL(url string) {
	s.mutate(func(st *state) error {
		st.Settings.CustomURL = url
		return nil
	})
}

func (s *Service) UpdateLanguage(language string) {
	s.mutate(func(st *state) error {
		st.Language = language
		return nil
	})
}

func (s *Service) SetOffline(offline bool) {
	s.mutate(func(st *state) error {
		st.Offline = offline
		return nil
	})
}

// AddAccountRequest appends the given request to the log of surprise
// requests.
func (s *Service) AddAccountRequest(request domain.AccountRequest) {
	s.mutate(func(st *state) error {
		st.SurpriseRequests = append(st.SurpriseRequests, request)
		return nil
	})
}

// SetAuthSession mirrors the session of the auth collaborator.
func (s *Service) SetAuthSession(session domain.AuthSession, user domain.User) {
	s.mutate(func(st *state) error {
		st.Auth = session
		st.User = user
		return nil
	})
}

func (s *Service) ClearAuthSession() {
	s.SetAuthSession(domain.AuthSession{}, domain.User{})
}

// Close releases the underlying store.
func (s *Service) Close() {
	s.store.Close()
}

func (s *Service) refreshBalance(
	ctx context.Context, address, endpoint string, silent bool,
) {
	logger := log.WithField("address", address)

	balances, err := s.ledger.GetBalances(ctx, address, endpoint, silent)
	if err != nil {
		stats.BalanceRefreshes.WithLabelValues(stats.OutcomeFailure).Inc()
		logger.WithError(err).Warn("failed to query balance")
		return
	}
	if len(balances) <= 0 {
		stats.BalanceRefreshes.WithLabelValues(stats.OutcomeFailure).Inc()
		logger.Warn("ledger returned no balance")
		return
	}
	balance := balances[0].GetValue()

	err = s.mutate(func(st *state) error {
		if err := st.Config.SetAccountBalance(address, balance); err != nil {
			return err
		}
		st.Config.StampBalances(s.now())
		return nil
	})
	if err != nil {
		stats.BalanceRefreshes.WithLabelValues(stats.OutcomeFailure).Inc()
		logger.WithError(err).Warn("account removed before balance was updated")
		return
	}

	stats.BalanceRefreshes.WithLabelValues(stats.OutcomeSuccess).Inc()
	logger.Debugf("updated balance to %s", balance)

	if !silent {
		s.notifier.Notify(ports.Notification{
			Severity: ports.SeveritySuccess,
			Message:  s.translator.Translate(s.Language(), completeQueryKey),
			Duration: domain.DefaultNotificationDuration,
		})
	}
}

// mutate applies fn to the state and, if it succeeds, persists the new
// state.
func (s *Service) mutate(fn func(st *state) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := fn(s.state); err != nil {
		return err
	}

	stats.ConfiguredAccounts.Set(float64(len(s.state.Config.Accounts)))
	s.persist()
	return nil
}

// persist must be called with the write lock held.
func (s *Service) persist() {
	buf, err := s.state.snapshot(s.persistedPaths)
	if err != nil {
		log.WithError(err).Error("failed to serialize state")
		return
	}
	if err := s.store.Set(context.Background(), s.storageKey, buf); err != nil {
		log.WithError(err).Error("failed to persist state")
	}
}

/*
 * Derived reads
 */

// Accounts returns a copy of the configured accounts in registration order.
func (s *Service) Accounts() []domain.Account {
	s.lock.RLock()
	defer s.lock.RUnlock()

	accounts := make([]domain.Account, 0, len(s.state.Config.Accounts))
	for _, a := range s.state.Config.Accounts {
		accounts = append(accounts, *a)
	}
	return accounts
}

func (s *Service) AccountConfigured() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Config.AccountConfigured()
}

func (s *Service) Configured() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Config.Configured
}

func (s *Service) FindAccountByAddress(address string) (domain.Account, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	account, ok := s.state.Config.FindAccountByAddress(address)
	if !ok {
		return domain.Account{}, false
	}
	return *account, true
}

func (s *Service) PrimeAccount() (domain.Account, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	account, ok := s.state.Config.PrimeAccount()
	if !ok {
		return domain.Account{}, false
	}
	return *account, true
}

func (s *Service) SumOfBalances() decimal.Decimal {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Config.SumOfBalances()
}

func (s *Service) LastBalanceUpdated() (string, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Config.LastBalanceUpdated()
}

func (s *Service) Settings() domain.Settings {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Settings
}

// BalanceEndpoint returns the custom URL if the user chose to use a custom
// host, the default ledger host otherwise.
func (s *Service) BalanceEndpoint() string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.state.Settings.IsCustomHostUsed() {
		return s.state.Settings.CustomURL
	}
	return s.ledgerHost
}

func (s *Service) SurpriseRequests() []domain.AccountRequest {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]domain.AccountRequest{}, s.state.SurpriseRequests...)
}

func (s *Service) Language() string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Language
}

func (s *Service) Offline() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Offline
}

func (s *Service) AuthSession() domain.AuthSession {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.Auth
}

func (s *Service) User() domain.User {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.state.User
}
