package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oysy-network/oysy-wallet/internal/config"
	"github.com/oysy-network/oysy-wallet/internal/core/application/router"
	"github.com/oysy-network/oysy-wallet/internal/core/application/wallet"
	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/auth"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/i18n"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/ledger/ripplerest"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/notifier"
	dbbadger "github.com/oysy-network/oysy-wallet/internal/infrastructure/storage/db/badger"
	"github.com/oysy-network/oysy-wallet/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/oysy-network/oysy-wallet/internal/interfaces/http"
	"github.com/oysy-network/oysy-wallet/pkg/stats"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to initialize config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt,
	)
	defer stop()

	if config.GetBool(config.EnableProfilerKey) {
		profilerPath := filepath.Join(
			config.GetDatadir(), config.ProfilerLocation, "cpu.pprof",
		)
		f, err := os.Create(profilerPath)
		if err != nil {
			log.WithError(err).Fatal("failed to create cpu profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.WithError(err).Fatal("failed to start cpu profiler")
		}
		defer pprof.StopCPUProfile()

		stats.EnableMemoryStatistics(ctx, config.GetStatsInterval())
	}

	if err := run(ctx); err != nil {
		log.WithError(err).Error("daemon exited with error")
		return
	}
	log.Info("shutdown")
}

func run(ctx context.Context) error {
	store, err := newKeyValueStore()
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}

	translator, err := i18n.NewTranslator()
	if err != nil {
		return err
	}

	feed := notifier.NewHub()
	defer feed.Close()
	notifications := notifier.NewMulti(feed, notifier.NewLogNotifier())

	walletSvc, err := wallet.NewService(wallet.ServiceOpts{
		Store: store,
		Ledger: ripplerest.NewService(
			config.GetLedgerRequestTimeout(),
			config.GetInt(config.LedgerRateLimitKey),
		),
		Notifier:   notifications,
		Translator: translator,
		LedgerHost: config.GetString(config.LedgerHostKey),
		StorageKey: config.GetString(config.StorageKeyKey),
	})
	if err != nil {
		store.Close()
		return err
	}
	defer walletSvc.Close()

	routes, err := router.NewTable(router.DefaultRoutes)
	if err != nil {
		return err
	}
	controller, err := router.NewController(router.ControllerOpts{
		Routes:            routes,
		Session:           walletSvc,
		Language:          walletSvc,
		Notifier:          notifications,
		Translator:        translator,
		Progress:          notifications,
		ProgressDoneDelay: config.GetProgressDoneDelay(),
	})
	if err != nil {
		return err
	}

	httpSvc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:    fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey)),
		WalletSvc:  walletSvc,
		Controller: controller,
		AuthSvc: auth.NewService(
			config.GetString(config.AuthSecretKey), config.GetAuthTokenTTL(),
		),
		Feed: feed,
	})
	if err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(httpSvc.Start)
	eg.Go(func() error {
		// Balances are refreshed in background at startup.
		done, err := walletSvc.RefreshBalance(egCtx, wallet.RefreshOpts{Silent: true})
		if err != nil {
			if err == domain.ErrNoAccounts {
				return nil
			}
			return err
		}
		select {
		case <-done:
		case <-egCtx.Done():
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("wallet daemon started")

	<-ctx.Done()
	httpSvc.Stop()
	return nil
}

func newKeyValueStore() (ports.KeyValueStore, error) {
	if config.GetString(config.DBTypeKey) == config.DBInMemory {
		return inmemory.NewKeyValueStore(), nil
	}
	return dbbadger.NewKeyValueStore(config.GetDbDir(), nil)
}
