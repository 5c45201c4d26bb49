package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/logger"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing uncolored output to a buffer.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Golden(t *testing.T) {
	tests := []struct {
		name   string
		golden string
		log    func(l *logger.Logger)
	}{
		{
			name:   "info",
			golden: "info_basic",
			log:    func(l *logger.Logger) { l.Info("stage opened") },
		},
		{
			name:   "info multiline",
			golden: "info_multiline",
			log:    func(l *logger.Logger) { l.Info("line1\nline2") },
		},
		{
			name:   "warn",
			golden: "warn_basic",
			log:    func(l *logger.Logger) { l.Warn("clip layer missing") },
		},
		{
			name:   "plain error",
			golden: "error_simple",
			log:    func(l *logger.Logger) { l.Error(fs.ErrNotExist) },
		},
		{
			name:   "multiline error",
			golden: "error_multiline",
			log: func(l *logger.Logger) {
				l.Error(errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"))
			},
		},
		{
			name:   "zerr chain with metadata",
			golden: "error_chain_metadata",
			log: func(l *logger.Logger) {
				err := zerr.With(domain.ErrLayerNotFound, "layer", "clip.1.yaml")
				err = zerr.With(zerr.Wrap(err, "failed to open clip"), "set", "default")
				l.Error(err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.golden, buf.Bytes())
		})
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_Quiet(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetQuiet(true)

	lg.Info("hidden")
	lg.Warn("shown")
	assert.Equal(t, "! shown\n", buf.String())

	buf.Reset()
	lg.SetQuiet(false)
	lg.Info("visible")
	assert.Equal(t, "visible\n", buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	err := zerr.With(zerr.Wrap(errors.New("boom"), "resolve failed"), "attr", "/World.x")
	lg.Error(err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "resolve failed: boom", rec["msg"])
	assert.Equal(t, "/World.x", rec["attr"])

	buf.Reset()
	lg.Info("plain")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "plain", rec["msg"])

	lg.SetJSON(false)
	buf.Reset()
	lg.Info("pretty again")
	assert.Equal(t, "pretty again\n", buf.String())
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg, _ := newTestLogger(t)
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}
