// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ConfigEnv is the environment variable with the process-wide parallelism configuration, read once
// at program start.
//
// The format is a comma-separated list of "key=value" pairs, with the keys:
//
//   - "workers": number of partitions a bulk operation is split into (>= 1). Default: runtime.NumCPU().
//   - "threshold": minimum vector size to parallelize (>= 0). Default: DefaultThreshold.
//
// Example: VECTOR1D_PARALLELISM="workers=8,threshold=100000".
const ConfigEnv = "VECTOR1D_PARALLELISM"

// DefaultThreshold is the default minimum size of a vector for a bulk operation to be parallelized.
const DefaultThreshold = 32768

// Config holds the process-wide parallelism settings.
type Config struct {
	// Workers is the number of partitions a large bulk operation is split into. 1 means sequential.
	Workers int

	// Threshold is the minimum number of cells for a bulk operation to be parallelized.
	Threshold int
}

var (
	defaultWorkers   atomic.Int64
	defaultThreshold atomic.Int64
)

func init() {
	defaultWorkers.Store(int64(runtime.NumCPU()))
	defaultThreshold.Store(DefaultThreshold)
	if config, found := os.LookupEnv(ConfigEnv); found {
		cfg, err := ParseConfig(config)
		if err != nil {
			klog.Warningf("Ignoring $%s=%q: %v", ConfigEnv, config, err)
			return
		}
		defaultWorkers.Store(int64(cfg.Workers))
		defaultThreshold.Store(int64(cfg.Threshold))
	}
}

// DefaultConfig returns the current process-wide configuration.
//
// It is read fresh on every bulk operation that doesn't override it, so changes made with
// SetDefaultWorkers and SetDefaultThreshold apply to the next operation.
func DefaultConfig() Config {
	return Config{
		Workers:   int(defaultWorkers.Load()),
		Threshold: int(defaultThreshold.Load()),
	}
}

// SetDefaultWorkers changes the process-wide number of workers. It must be >= 1.
func SetDefaultWorkers(workers int) error {
	if workers < 1 {
		return errors.Errorf("number of workers must be >= 1, got %d", workers)
	}
	defaultWorkers.Store(int64(workers))
	return nil
}

// SetDefaultThreshold changes the process-wide minimum size for parallelization. It must be >= 0.
func SetDefaultThreshold(threshold int) error {
	if threshold < 0 {
		return errors.Errorf("parallelization threshold must be >= 0, got %d", threshold)
	}
	defaultThreshold.Store(int64(threshold))
	return nil
}

// ParseConfig parses a configuration string in the format described in ConfigEnv.
// Keys not given keep the current process-wide values.
func ParseConfig(config string) (Config, error) {
	cfg := DefaultConfig()
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return cfg, errors.Errorf("invalid parallelism config %q: expected key=value, got %q", config, part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return cfg, errors.Wrapf(err, "invalid value for %q in parallelism config %q", key, config)
		}
		switch strings.TrimSpace(key) {
		case "workers":
			if n < 1 {
				return cfg, errors.Errorf("invalid parallelism config %q: workers must be >= 1", config)
			}
			cfg.Workers = n
		case "threshold":
			if n < 0 {
				return cfg, errors.Errorf("invalid parallelism config %q: threshold must be >= 0", config)
			}
			cfg.Threshold = n
		default:
			return cfg, errors.Errorf("unknown key %q in parallelism config %q", key, config)
		}
	}
	return cfg, nil
}
