package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/viper"
	"github.com/walletkit/trezor-composer/pkg/wallet"
)

const (
	// NetworkKey is the bitcoin network: mainnet, testnet, regtest or signet
	NetworkKey = "NETWORK"
	// ExplorerUrlKey is the base url of the esplora REST api
	ExplorerUrlKey = "EXPLORER_URL"
	// ExplorerRequestsPerSecondKey caps the number of requests per second
	// made to the explorer, 0 means unlimited
	ExplorerRequestsPerSecondKey = "EXPLORER_REQUESTS_PER_SECOND"
	// ExplorerRequestTimeoutKey is the timeout in seconds of every request
	// made to the explorer
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// DatadirKey is the local data directory where previous transactions are
	// cached and stats are dumped
	DatadirKey = "DATADIR"
	// NoCacheKey disables the cache of previous transactions
	NoCacheKey = "NO_CACHE"
	// FeePerKbKey is the default fee rate in satoshi per kilobyte
	FeePerKbKey = "FEE_PER_KB"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// EnableStatsKey enables dumping composition stats to the datadir
	EnableStatsKey = "ENABLE_STATS"

	DbLocation    = "db"
	StatsLocation = "stats"
	StatsFile     = "stats.txt"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("trezor-composer", false)

var defaultExplorerUrls = map[string]string{
	chaincfg.MainNetParams.Name:       "https://blockstream.info/api",
	chaincfg.TestNet3Params.Name:      "https://blockstream.info/testnet/api",
	chaincfg.SigNetParams.Name:        "https://mempool.space/signet/api",
	chaincfg.RegressionNetParams.Name: "http://localhost:3000",
}

// InitConfig loads the config from env and defaults. The given overrides,
// like command line flags, take precedence over both and are applied before
// validating the config and creating the datadir.
func InitConfig(overrides map[string]interface{}) error {
	vip = viper.New()
	vip.SetEnvPrefix("TREZOR_COMPOSER")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkKey, "mainnet")
	vip.SetDefault(ExplorerRequestsPerSecondKey, 10)
	vip.SetDefault(ExplorerRequestTimeoutKey, 30)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(NoCacheKey, false)
	vip.SetDefault(FeePerKbKey, 1000)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(EnableStatsKey, false)

	for key, value := range overrides {
		vip.Set(key, value)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
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

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetNetwork returns the chain params of the configured network.
func GetNetwork() *chaincfg.Params {
	network, _ := wallet.NetworkFromString(GetString(NetworkKey))
	return network
}

// GetExplorerUrl returns the configured explorer url, or the default one for
// the configured network.
func GetExplorerUrl() string {
	if url := GetString(ExplorerUrlKey); len(url) > 0 {
		return strings.TrimSuffix(url, "/")
	}
	return defaultExplorerUrls[GetNetwork().Name]
}

// GetAll returns every config key with its current value.
func GetAll() map[string]interface{} {
	return map[string]interface{}{
		NetworkKey:                   GetString(NetworkKey),
		ExplorerUrlKey:               GetExplorerUrl(),
		ExplorerRequestsPerSecondKey: GetInt(ExplorerRequestsPerSecondKey),
		ExplorerRequestTimeoutKey:    GetInt(ExplorerRequestTimeoutKey),
		DatadirKey:                   GetDatadir(),
		NoCacheKey:                   GetBool(NoCacheKey),
		FeePerKbKey:                  GetUint64(FeePerKbKey),
		LogLevelKey:                  GetInt(LogLevelKey),
		EnableStatsKey:               GetBool(EnableStatsKey),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, err := wallet.NetworkFromString(GetString(NetworkKey)); err != nil {
		return err
	}

	if GetInt(ExplorerRequestsPerSecondKey) < 0 {
		return fmt.Errorf("%s must not be negative", ExplorerRequestsPerSecondKey)
	}

	if GetInt(ExplorerRequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", ExplorerRequestTimeoutKey)
	}

	if GetInt(FeePerKbKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", FeePerKbKey)
	}

	level := GetInt(LogLevelKey)
	if level < 0 || level > 6 {
		return fmt.Errorf("%s must be in range [0, 6]", LogLevelKey)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if !GetBool(NoCacheKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	if GetBool(EnableStatsKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, StatsLocation)); err != nil {
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
