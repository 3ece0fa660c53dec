package router_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

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

type staticState struct {
	session  domain.AuthSession
	language string
}

func (s staticState) AuthSession() domain.AuthSession { return s.session }
func (s staticState) Language() string                { return s.language }

type testProgress struct {
	done chan bool
}

func newTestProgress() *testProgress {
	return &testProgress{make(chan bool, 1)}
}

func (p *testProgress) Done(force bool) {
	p.done <- force
}

// stopped waits up to timeout for the indicator to be forced to stop.
func (p *testProgress) stopped(timeout time.Duration) bool {
	select {
	case force := <-p.done:
		return force
	case <-time.After(timeout):
		return false
	}
}
