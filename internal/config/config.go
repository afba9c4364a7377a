package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cluster RPC endpoints by network name.
var networkEndpoints = map[string]string{
	"devnet":       "https://api.devnet.solana.com",
	"testnet":      "https://api.testnet.solana.com",
	"mainnet-beta": "https://api.mainnet-beta.solana.com",
}

// Config holds configuration values loaded from flags, env, or config
// file. Program and mint identifiers are carried here explicitly and
// passed into the service at construction; nothing reads them ambiently.
type Config struct {
	RPCURL         string
	Network        string
	ProgramID      string
	Mint           string
	KeypairPath    string
	Commitment     string
	ConfirmTimeout time.Duration
	JournalPath    string
	PGDSN          string
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STAKER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", "devnet")
	v.SetDefault("program-id", "DDqtf1nGhbkndVh8Vc8RqCPj3dimz9YkrJCjJzxxRqrs")
	v.SetDefault("mint", "38yL1udWqBvxw7PkLSbHCGj59dyiUeiqiCK6jf25nc5m")
	v.SetDefault("commitment", "confirmed")
	v.SetDefault("confirm-timeout", 60*time.Second)
	v.SetDefault("journal", "./data/outcomes.jsonl")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:         v.GetString("rpc"),
		Network:        v.GetString("network"),
		ProgramID:      v.GetString("program-id"),
		Mint:           v.GetString("mint"),
		KeypairPath:    v.GetString("keypair"),
		Commitment:     v.GetString("commitment"),
		ConfirmTimeout: v.GetDuration("confirm-timeout"),
		JournalPath:    v.GetString("journal"),
		PGDSN:          v.GetString("pg-dsn"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}

// Endpoint resolves the RPC URL: an explicit URL wins, otherwise the
// named network's cluster endpoint.
func (c Config) Endpoint() (string, error) {
	if c.RPCURL != "" {
		return c.RPCURL, nil
	}
	endpoint, ok := networkEndpoints[c.Network]
	if !ok {
		return "", fmt.Errorf("unknown network %q", c.Network)
	}
	return endpoint, nil
}
