package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SnapshotConfig holds configuration for the snapshot command, merged from
// flags, environment variables, and an optional config file.
type SnapshotConfig struct {
	RPCURL       string
	Pools        []string
	BlockNumber  uint64
	Out          string
	PGDSN        string
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// PositionConfig holds configuration for the position command. Pool state
// either comes from explicit flags or is fetched live when an RPC URL and
// pool address are set.
type PositionConfig struct {
	RPCURL           string
	Pool             string
	SqrtPriceX96     string
	Liquidity        string
	Tick             int
	Fee              uint32
	Token0Decimals   uint8
	Token1Decimals   uint8
	TickLower        int
	TickUpper        int
	Amount0          string
	Amount1          string
	UseFullPrecision bool
	Out              string
	PGDSN            string
	LogLevel         string
}

// LoadSnapshot merges config sources into a SnapshotConfig.
func LoadSnapshot(cfgFile string, flags *pflag.FlagSet) (SnapshotConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"out":           "./data/snapshots.jsonl",
		"max-retries":   5,
		"retry-backoff": 500 * time.Millisecond,
		"log-level":     "info",
	})
	if err != nil {
		return SnapshotConfig{}, err
	}

	return SnapshotConfig{
		RPCURL:       v.GetString("rpc"),
		Pools:        getStringSlice(v, "pool"),
		BlockNumber:  v.GetUint64("block"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}

// LoadPosition merges config sources into a PositionConfig.
func LoadPosition(cfgFile string, flags *pflag.FlagSet) (PositionConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"fee":             uint32(3000),
		"token0-decimals": uint8(18),
		"token1-decimals": uint8(18),
		"full-precision":  true,
		"log-level":       "info",
	})
	if err != nil {
		return PositionConfig{}, err
	}

	return PositionConfig{
		RPCURL:           v.GetString("rpc"),
		Pool:             v.GetString("pool"),
		SqrtPriceX96:     v.GetString("sqrt-price"),
		Liquidity:        v.GetString("liquidity"),
		Tick:             v.GetInt("tick"),
		Fee:              uint32(v.GetUint64("fee")),
		Token0Decimals:   uint8(v.GetUint64("token0-decimals")),
		Token1Decimals:   uint8(v.GetUint64("token1-decimals")),
		TickLower:        v.GetInt("tick-lower"),
		TickUpper:        v.GetInt("tick-upper"),
		Amount0:          v.GetString("amount0"),
		Amount1:          v.GetString("amount1"),
		UseFullPrecision: v.GetBool("full-precision"),
		Out:              v.GetString("out"),
		PGDSN:            v.GetString("pg-dsn"),
		LogLevel:         v.GetString("log-level"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]any) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("POOLCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
