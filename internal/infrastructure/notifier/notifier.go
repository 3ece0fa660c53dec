package notifier

import (
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

// Service delivers notifications and progress events to the user.
type Service interface {
	ports.Notifier
	ports.ProgressIndicator
}

type multi []Service

// NewMulti returns a Service fanning out every event to all the given ones.
func NewMulti(services ...Service) Service {
	return multi(services)
}

func (m multi) Notify(n ports.Notification) {
	for _, s := range m {
		s.Notify(n)
	}
}

func (m multi) Done(force bool) {
	for _, s := range m {
		s.Done(force)
	}
}
