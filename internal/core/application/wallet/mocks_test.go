package wallet_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetBalances(
	ctx context.Context, address, endpoint string, silent bool,
) ([]ports.Balance, error) {
	args := m.Called(ctx, address, endpoint, silent)

	var res []ports.Balance
	if a := args.Get(0); a != nil {
		res = a.([]ports.Balance)
	}
	return res, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(notification ports.Notification) {
	m.Called(notification)
}

type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) Translate(language, key string) string {
	args := m.Called(language, key)
	return args.String(0)
}

type balance struct {
	value string
}

func (b balance) GetValue() string        { return b.value }
func (b balance) GetCurrency() string     { return "XRP" }
func (b balance) GetCounterparty() string { return "" }

// gatedLedger answers every call with the balance received from the
// per-call channel, letting tests choose the completion order.
type gatedLedger struct {
	calls chan chan string
}

func (l *gatedLedger) GetBalances(
	_ context.Context, _, _ string, _ bool,
) ([]ports.Balance, error) {
	gate := make(chan string)
	l.calls <- gate
	return []ports.Balance{balance{<-gate}}, nil
}

// recordingStore keeps every value written to the wrapped store.
type recordingStore struct {
	ports.KeyValueStore
	writes [][]byte
}

func (s *recordingStore) Set(ctx context.Context, key string, value []byte) error {
	s.writes = append(s.writes, append([]byte(nil), value...))
	return s.KeyValueStore.Set(ctx, key, value)
}
