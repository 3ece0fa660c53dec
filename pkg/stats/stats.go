package stats

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// Navigations counts the navigation decisions taken by the route guard,
	// labelled by route name and decision kind.
	Navigations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oysy",
			Name:      "navigations_total",
			Help:      "Number of navigation decisions by route and outcome.",
		},
		[]string{"route", "decision"},
	)

	// BalanceRefreshes counts completed balance queries by outcome.
	BalanceRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "oysy",
			Name:      "balance_refreshes_total",
			Help:      "Number of completed balance refreshes by outcome.",
		},
		[]string{"outcome"},
	)

	// ConfiguredAccounts is the number of accounts in the wallet.
	ConfiguredAccounts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "oysy",
			Name:      "configured_accounts",
			Help:      "Number of accounts configured in the wallet.",
		},
	)
)

// EnableMemoryStatistics enables go routine that periodically prints memory
// usage of the go process.
func EnableMemoryStatistics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// toMegabytes returns given memory in bytes to megabytes.
func toMegabytes(bytes uint64) float64 {
	return float64(bytes) / MEGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.3fMB, Heap allocated: %.3fMB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toMegabytes(memStats.TotalAlloc),
		toMegabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}
