package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lumipallolabs/anticipate/internal/waiting"
)

// EnvPrefix prefixes the environment variables that back every flag,
// e.g. ANTICIPATE_TIMEOUT or ANTICIPATE_MAX_INTERVAL.
const EnvPrefix = "ANTICIPATE"

// maxTimeoutMillis is the longest timeout a time.Duration can hold.
const maxTimeoutMillis = math.MaxInt64 / int64(time.Millisecond)

// Config is the validated configuration of one run.
type Config struct {
	Path        string
	Timeout     time.Duration // zero waits forever
	Verbose     bool
	Print       bool
	Progress    bool
	Debug       bool
	Interval    time.Duration
	MaxInterval time.Duration
}

// UsageError reports invalid arguments or flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// newViper binds flags and ANTICIPATE_* environment variables.
//
// A flag given on the command line beats the environment, which beats
// the flag's default.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

// loadConfig validates the bound settings for path.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	cfg := Config{Path: path}

	millis, err := strconv.ParseInt(strings.TrimSpace(v.GetString("timeout")), 10, 64)
	if err != nil {
		return Config{}, usageErrorf("invalid timeout %q: must be milliseconds", v.GetString("timeout"))
	}
	if millis < 0 {
		return Config{}, usageErrorf("invalid timeout %d: must not be negative", millis)
	}
	if millis > maxTimeoutMillis {
		return Config{}, usageErrorf("invalid timeout %d: must be at most %d", millis, maxTimeoutMillis)
	}
	cfg.Timeout = time.Duration(millis) * time.Millisecond

	if cfg.Interval, err = parseDuration(v, "interval"); err != nil {
		return Config{}, err
	}
	if cfg.MaxInterval, err = parseDuration(v, "max-interval"); err != nil {
		return Config{}, err
	}
	if cfg.MaxInterval != 0 && cfg.MaxInterval < cfg.Interval {
		return Config{}, usageErrorf("max-interval %s is shorter than interval %s", cfg.MaxInterval, cfg.Interval)
	}

	for _, b := range []struct {
		key string
		dst *bool
	}{
		{"verbose", &cfg.Verbose},
		{"print", &cfg.Print},
		{"progress", &cfg.Progress},
		{"debug", &cfg.Debug},
	} {
		if *b.dst, err = parseBool(v, b.key); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, usageErrorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, usageErrorf("invalid %s %s: must not be negative", key, d)
	}
	return d, nil
}

func parseBool(v *viper.Viper, key string) (bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, usageErrorf("invalid %s %q: %w", key, raw, errors.Unwrap(err))
	}
	return b, nil
}

// pacers builds the poll cadence from cfg.
func (cfg Config) pacers() waiting.PacerFactory {
	maxInterval := cfg.MaxInterval
	if maxInterval == 0 {
		maxInterval = cfg.Interval
	}
	return waiting.NewPacerFactory(cfg.Interval, maxInterval)
}
