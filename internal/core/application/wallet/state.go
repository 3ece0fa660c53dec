package wallet

import (
	"encoding/json"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

const (
	// DefaultStorageKey is the key the persisted state is stored under.
	DefaultStorageKey = "oysy_vuex_store"
)

var (
	// DefaultPersistedPaths lists the top level state fields mirrored to the
	// durable store.
	DefaultPersistedPaths = []string{
		"auth", "user", "language", "config", "settings", "surpriseRequests",
	}
)

type state struct {
	Auth             domain.AuthSession      `json:"auth"`
	User             domain.User             `json:"user"`
	Language         string                  `json:"language"`
	Config           domain.WalletConfig     `json:"config"`
	Settings         domain.Settings         `json:"settings"`
	SurpriseRequests []domain.AccountRequest `json:"surpriseRequests"`
	Offline          bool                    `json:"offline"`
}

func newState() *state {
	return &state{
		Config:           domain.NewWalletConfig(),
		Settings:         domain.NewSettings(),
		SurpriseRequests: make([]domain.AccountRequest, 0),
	}
}

// snapshot serializes the fields of the state whose name is in paths.
func (s *state) snapshot(paths []string) ([]byte, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, err
	}

	persisted := make(map[string]json.RawMessage, len(paths))
	for _, path := range paths {
		if field, ok := fields[path]; ok {
			persisted[path] = field
		}
	}
	return json.Marshal(persisted)
}

// rehydrate merges a previously taken snapshot into the state. Fields not in
// paths are ignored even if present in the snapshot.
func (s *state) rehydrate(buf []byte, paths []string) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(buf, &fields); err != nil {
		return err
	}

	allowed := make(map[string]json.RawMessage, len(paths))
	for _, path := range paths {
		if field, ok := fields[path]; ok {
			allowed[path] = field
		}
	}
	filtered, err := json.Marshal(allowed)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(filtered, s); err != nil {
		return err
	}

	if s.Config.Accounts == nil {
		s.Config.Accounts = make([]*domain.Account, 0)
	}
	if s.SurpriseRequests == nil {
		s.SurpriseRequests = make([]domain.AccountRequest, 0)
	}
	return nil
}
