package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/thanhpk/randstr"
)

const (
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// LedgerHostKey is the default endpoint balances are queried from
	LedgerHostKey = "LEDGER_HOST"
	// LedgerRequestTimeoutKey is the timeout in seconds of every balance query
	LedgerRequestTimeoutKey = "LEDGER_REQUEST_TIMEOUT"
	// LedgerRateLimitKey is the max number of balance queries per second
	LedgerRateLimitKey = "LEDGER_RATE_LIMIT"
	// AuthSecretKey is the secret used to sign session tokens. A random one is
	// generated if not set, invalidating sessions at every restart
	AuthSecretKey = "AUTH_SECRET"
	// AuthTokenTTLKey is the validity in seconds of session tokens
	AuthTokenTTLKey = "AUTH_TOKEN_TTL"
	// StorageKeyKey is the key the wallet state is stored under
	StorageKeyKey = "STORAGE_KEY"
	// ProgressDoneDelayKey is the delay in milliseconds before stopping the
	// progress indicator on redirects
	ProgressDoneDelayKey = "PROGRESS_DONE_DELAY"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	DBBadger   = "badger"
	DBInMemory = "inmemory"

	defaultLedgerHost = "https://api.altnet.rippletest.net:5990/v1"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("oysy-wallet", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("OYSY")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 8080)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(LedgerHostKey, defaultLedgerHost)
	vip.SetDefault(LedgerRequestTimeoutKey, 15)
	vip.SetDefault(LedgerRateLimitKey, 5)
	vip.SetDefault(AuthTokenTTLKey, 86400)
	vip.SetDefault(StorageKeyKey, "oysy_vuex_store")
	vip.SetDefault(ProgressDoneDelayKey, 100)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if !vip.IsSet(AuthSecretKey) {
		vip.Set(AuthSecretKey, randstr.Hex(32))
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory of the badger database, or an empty one if
// the state is kept in memory.
func GetDbDir() string {
	if GetString(DBTypeKey) == DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

func GetLedgerRequestTimeout() time.Duration {
	return time.Duration(GetInt(LedgerRequestTimeoutKey)) * time.Second
}

func GetAuthTokenTTL() time.Duration {
	return time.Duration(GetInt(AuthTokenTTLKey)) * time.Second
}

func GetProgressDoneDelay() time.Duration {
	return time.Duration(GetInt(ProgressDoneDelayKey)) * time.Millisecond
}

func GetStatsInterval() time.Duration {
	return time.Duration(GetInt(StatsIntervalKey)) * time.Second
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be one of %s, %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	u, err := url.Parse(GetString(LedgerHostKey))
	if err != nil || len(u.Host) <= 0 {
		return fmt.Errorf("%s must be a valid URL", LedgerHostKey)
	}

	for _, key := range []string{
		HTTPListeningPortKey, LedgerRequestTimeoutKey, LedgerRateLimitKey,
		AuthTokenTTLKey, StatsIntervalKey,
	} {
		if GetInt(key) <= 0 {
			return fmt.Errorf("%s must be a positive number", key)
		}
	}
	if GetInt(ProgressDoneDelayKey) < 0 {
		return fmt.Errorf("%s must not be negative", ProgressDoneDelayKey)
	}

	if len(GetString(StorageKeyKey)) <= 0 {
		return fmt.Errorf("missing storage key")
	}

	return nil
}

func initDatadir() error {
	if dbDir := GetDbDir(); dbDir != "" {
		if err := makeDirectoryIfNotExists(dbDir); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(GetDatadir(), ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
