package notifier

import (
	log "github.com/sirupsen/logrus"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

type logNotifier struct{}

// NewLogNotifier returns a notifier writing every notification and progress
// event to the log.
func NewLogNotifier() Service {
	return logNotifier{}
}

func (logNotifier) Notify(n ports.Notification) {
	entry := log.WithField("duration", n.Duration)
	switch n.Severity {
	case ports.SeverityError:
		entry.Error(n.Message)
	case ports.SeverityWarning:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}
}

func (logNotifier) Done(force bool) {
	log.WithField("force", force).Debug("progress done")
}
