package router

import (
	"net/url"
	"strings"
	"time"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

const (
	homePath  = "/"
	loginPath = "/login"

	// RedirectQueryKey is the query parameter carrying the path to go back to
	// after login.
	RedirectQueryKey = "redirect"

	unauthorizedKey = "toasts.unauthorized"
	forbiddenKey    = "toasts.forbidden"
	pageNotFoundKey = "toasts.pageNotFound"

	warningDuration = 6 * time.Second
	errorDuration   = 8 * time.Second
)

type DecisionKind int

const (
	Allow DecisionKind = iota
	Redirect
	Deny
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Notice is a notification to show the user, identified by its translation
// key.
type Notice struct {
	Severity ports.Severity
	Key      string
	Duration time.Duration
}

// Decision is the outcome of a navigation attempt.
type Decision struct {
	Kind DecisionKind
	// Path and Query are the redirect destination.
	Path   string
	Query  url.Values
	Notice *Notice
	// StopProgress is set for redirects that might not change the visible
	// route, after which the progress indicator must be stopped explicitly.
	StopProgress bool
}

// Location returns the redirect destination as a URL reference.
func (d Decision) Location() string {
	if d.Kind != Redirect {
		return ""
	}
	u := url.URL{Path: d.Path}
	if len(d.Query) > 0 {
		u.RawQuery = d.Query.Encode()
	}
	return u.String()
}

// Decide evaluates the navigation from -> to against the given session.
func Decide(from, to Route, session domain.AuthSession) Decision {
	if !strings.HasPrefix(to.Path, "/") {
		return Decision{Kind: Deny}
	}

	switch to.Access {
	case AccessPublic:
		return Decision{Kind: Allow}
	case AccessNotFound:
		return Decision{
			Kind:         Redirect,
			Path:         homePath,
			Notice:       &Notice{ports.SeverityError, pageNotFoundKey, errorDuration},
			StopProgress: true,
		}
	case AccessLogin:
		return afterAuth(from, to, session)
	case AccessAuthenticated:
		return requireAuth(to, session)
	case AccessRole:
		return requireAuthAndRole(to, session)
	default:
		return Decision{Kind: Deny}
	}
}

func afterAuth(from, to Route, session domain.AuthSession) Decision {
	if !session.Authenticated || from.IsZero() || from.Path == to.Path {
		return Decision{Kind: Allow}
	}
	return Decision{Kind: Redirect, Path: from.Path, StopProgress: true}
}

func requireAuth(to Route, session domain.AuthSession) Decision {
	if session.Authenticated {
		return Decision{Kind: Allow}
	}
	return Decision{
		Kind:   Redirect,
		Path:   loginPath,
		Query:  url.Values{RedirectQueryKey: []string{to.FullPath}},
		Notice: &Notice{ports.SeverityWarning, unauthorizedKey, warningDuration},
	}
}

func requireAuthAndRole(to Route, session domain.AuthSession) Decision {
	if !session.Authenticated {
		return requireAuth(to, session)
	}
	if session.Role != to.Role {
		return Decision{
			Kind:         Redirect,
			Path:         homePath,
			Notice:       &Notice{ports.SeverityWarning, forbiddenKey, warningDuration},
			StopProgress: true,
		}
	}
	return Decision{Kind: Allow}
}
