package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Settings are process-wide options read from STRATA_* environment
// variables. Command-line flags take precedence over them.
type Settings struct {
	// Interpolation overrides the stage file's interpolation type.
	Interpolation string `env:"STRATA_INTERPOLATION"`
	// Workers bounds the clip population fan-out.
	Workers int `env:"STRATA_WORKERS" envDefault:"8"`
	// JSONLogs switches the logger to JSON output.
	JSONLogs bool `env:"STRATA_LOG_JSON"`
	// Trace exports spans to stdout.
	Trace bool `env:"STRATA_TRACE"`
	// Debounce is the quiet period before a batch of file changes is reloaded.
	Debounce time.Duration `env:"STRATA_DEBOUNCE" envDefault:"200ms"`
}

// LoadSettings reads Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, zerr.Wrap(err, domain.ErrSettingsParseFailed.Error())
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	if _, ok := domain.ParseInterpolationType(s.Interpolation); !ok {
		return Settings{}, zerr.With(domain.ErrSettingsParseFailed, "interpolation", s.Interpolation)
	}
	return s, nil
}
