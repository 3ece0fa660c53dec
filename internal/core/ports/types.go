package ports

import (
	"time"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

// Balance is a single balance entry returned by the ledger for an address.
type Balance interface {
	GetValue() string
	GetCurrency() string
	GetCounterparty() string
}

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

var severityToString = map[Severity]string{
	SeverityInfo:    "info",
	SeveritySuccess: "success",
	SeverityWarning: "warn",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if str, ok := severityToString[s]; ok {
		return str
	}
	return "unknown"
}

// Notification is a transient, user facing message.
type Notification struct {
	Severity Severity
	Message  string
	Duration time.Duration
}

// AuthSessionReader gives read-only access to the current auth session.
type AuthSessionReader interface {
	AuthSession() domain.AuthSession
}

// LanguageReader gives read-only access to the language selected by the user.
type LanguageReader interface {
	Language() string
}
