package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/oysy-network/oysy-wallet/internal/core/application/router"
	"github.com/oysy-network/oysy-wallet/internal/core/application/wallet"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/auth"
	"github.com/oysy-network/oysy-wallet/internal/interfaces"
)

const (
	apiPrefix       = "/v1/"
	wsPath          = "/ws"
	metricsPath     = "/metrics"
	shutdownTimeout = 5 * time.Second
)

type ServiceOpts struct {
	Address    string
	WalletSvc  *wallet.Service
	Controller *router.Controller
	AuthSvc    *auth.Service
	// Feed is the websocket endpoint notifications are pushed through.
	Feed http.Handler
}

func (o ServiceOpts) validate() error {
	if _, _, err := net.SplitHostPort(o.Address); err != nil {
		return fmt.Errorf("address is not valid: %s", o.Address)
	}
	if o.WalletSvc == nil {
		return fmt.Errorf("wallet app service must not be null")
	}
	if o.Controller == nil {
		return fmt.Errorf("route controller must not be null")
	}
	if o.AuthSvc == nil {
		return fmt.Errorf("auth service must not be null")
	}
	if o.Feed == nil {
		return fmt.Errorf("notification feed must not be null")
	}
	return nil
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

// NewService returns the HTTP interface of the wallet daemon.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	handler, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              opts.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http interface stopped unexpectedly")
		}
	}()

	log.Infof("http interface is listening on %s", s.opts.Address)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
	}
	log.Debug("disabled http interface")
}

// NewHandler returns the root handler serving the JSON API under /v1, the
// notification feed, the metrics and, for any other path, the guarded pages.
func NewHandler(opts ServiceOpts) (http.Handler, error) {
	h := &handler{
		walletSvc:  opts.WalletSvc,
		controller: opts.Controller,
		authSvc:    opts.AuthSvc,
	}

	api := runtime.NewServeMux()
	if err := h.registerRoutes(api); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(apiPrefix, api)
	mux.Handle(wsPath, opts.Feed)
	mux.Handle(metricsPath, promhttp.Handler())
	mux.HandleFunc("/", h.page)

	return withLogger(mux), nil
}
