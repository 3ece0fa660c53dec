package router

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
	"github.com/oysy-network/oysy-wallet/pkg/stats"
)

// DefaultProgressDoneDelay is how long the controller waits before stopping
// the progress indicator after a redirect that may not change route.
const DefaultProgressDoneDelay = 100 * time.Millisecond

type ControllerOpts struct {
	Routes     *Table
	Session    ports.AuthSessionReader
	Language   ports.LanguageReader
	Notifier   ports.Notifier
	Translator ports.Translator
	Progress   ports.ProgressIndicator

	ProgressDoneDelay time.Duration
}

func (o ControllerOpts) validate() error {
	if o.Routes == nil {
		return fmt.Errorf("missing route table")
	}
	if o.Session == nil {
		return fmt.Errorf("missing auth session reader")
	}
	if o.Language == nil {
		return fmt.Errorf("missing language reader")
	}
	if o.Notifier == nil {
		return fmt.Errorf("missing notifier")
	}
	if o.Translator == nil {
		return fmt.Errorf("missing translator")
	}
	if o.Progress == nil {
		return fmt.Errorf("missing progress indicator")
	}
	return nil
}

// Controller evaluates every navigation against the current auth session
// and takes care of the side effects of its decisions.
type Controller struct {
	routes     *Table
	session    ports.AuthSessionReader
	language   ports.LanguageReader
	notifier   ports.Notifier
	translator ports.Translator
	progress   ports.ProgressIndicator
	delay      time.Duration
}

func NewController(opts ControllerOpts) (*Controller, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	delay := opts.ProgressDoneDelay
	if delay <= 0 {
		delay = DefaultProgressDoneDelay
	}

	return &Controller{
		routes:     opts.Routes,
		session:    opts.Session,
		language:   opts.Language,
		notifier:   opts.Notifier,
		translator: opts.Translator,
		progress:   opts.Progress,
		delay:      delay,
	}, nil
}

// Resolve resolves the given path against the route table.
func (c *Controller) Resolve(fullPath string) (Route, error) {
	return c.routes.Resolve(fullPath)
}

// Navigate resolves both paths and evaluates the navigation. An empty
// fromPath means there's no previous route.
func (c *Controller) Navigate(fromPath, toPath string) (Route, Decision, error) {
	var from Route
	if len(fromPath) > 0 {
		route, err := c.routes.Resolve(fromPath)
		if err != nil {
			return Route{}, Decision{}, fmt.Errorf("invalid origin: %w", err)
		}
		from = route
	}

	to, err := c.routes.Resolve(toPath)
	if err != nil {
		log.WithError(err).WithField("to", toPath).Debug("navigation denied")
		return Route{}, Decision{Kind: Deny}, nil
	}
	return to, c.BeforeEach(from, to), nil
}

// BeforeEach decides whether the navigation from -> to can proceed, emitting
// the notification carried by the decision.
func (c *Controller) BeforeEach(from, to Route) Decision {
	decision := Decide(from, to, c.session.AuthSession())

	log.WithFields(log.Fields{
		"from":     from.FullPath,
		"to":       to.FullPath,
		"decision": decision.Kind,
	}).Debug("navigation")
	stats.Navigations.WithLabelValues(to.Name, decision.Kind.String()).Inc()

	if n := decision.Notice; n != nil {
		c.notifier.Notify(ports.Notification{
			Severity: n.Severity,
			Message:  c.translator.Translate(c.language.Language(), n.Key),
			Duration: n.Duration,
		})
	}
	if decision.StopProgress {
		c.stopProgress()
	}
	return decision
}

// stopProgress stops the progress indicator after a short delay, since it
// does not stop by itself when the route doesn't change.
func (c *Controller) stopProgress() {
	time.AfterFunc(c.delay, func() {
		c.progress.Done(true)
	})
}
