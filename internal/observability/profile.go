package observability

import (
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/riskibarqy/league-forecast/internal/config"
	"github.com/riskibarqy/league-forecast/internal/platform/logging"
)

// StartCPUProfile writes a CPU profile to cfg.Observability.CPUProfile until
// the returned stop function is called.
func StartCPUProfile(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	path := strings.TrimSpace(cfg.Observability.CPUProfile)
	if path == "" {
		return func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	logger.Info("cpu profile started", "path", path)

	return func() error {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			return fmt.Errorf("close cpu profile: %w", err)
		}
		logger.Info("cpu profile written", "path", path)
		return nil
	}, nil
}
