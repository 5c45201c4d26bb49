package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/registry"
	"go.trai.ch/strata/internal/adapters/telemetry"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const stageYAML = `
version: "1"
root: root.layer.yaml
prims:
  /World: {}
  /World/Ball:
    type: Sphere
fallbacks:
  - type: Sphere
    property: radius
    value: !double 1
`

const rootLayerYAML = `
prims:
  /World:
    specifier: def
    metadata:
      customData: {a: 1}
      clips:
        default:
          assetPaths: !assets [./clip.layer.yaml]
          primPath: /Model
          active: [[0, 0]]
  /World/Ball:
    specifier: def
    metadata:
      customData: {b: 2}
`

// retimedRootLayerYAML plays the clip at twice the speed.
const retimedRootLayerYAML = `
prims:
  /World:
    specifier: def
    metadata:
      customData: {a: 1}
      clips:
        default:
          assetPaths: !assets [./clip.layer.yaml]
          primPath: /Model
          active: [[0, 0]]
          times: [[0, 0], [10, 20]]
  /World/Ball:
    specifier: def
`

const clipLayerYAML = `
prims:
  /Model:
    properties:
      x:
        timeSamples:
          0: !double 0
          10: !double 10
          20: !double 20
`

// editedClipLayerYAML doubles x and adds a varying y.
const editedClipLayerYAML = `
prims:
  /Model:
    properties:
      x:
        timeSamples:
          0: !double 0
          10: !double 20
          20: !double 40
      y:
        timeSamples:
          0: !double 1
`

type harness struct {
	app       *app.App
	dir       string
	stagePath string
	spans     *tracetest.SpanRecorder
	logger    *mocks.MockLogger
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
}

func newHarness(t *testing.T, opts app.Options) *harness {
	t.Helper()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		config.StageFileName: stageYAML,
		"root.layer.yaml":    rootLayerYAML,
		"clip.layer.yaml":    clipLayerYAML,
	})

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	loader := config.NewLoader(log)
	resolver := fs.NewResolver()

	return &harness{
		app: app.New(
			loader,
			registry.New(loader.ReadLayer, resolver),
			resolver,
			fs.NewHasher(),
			log,
			telemetry.NewOTelTracerFromProvider(tp, "test"),
			opts,
		),
		dir:       dir,
		stagePath: filepath.Join(dir, config.StageFileName),
		spans:     spans,
		logger:    log,
	}
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) ended(name string) int {
	n := 0
	for _, s := range h.spans.Ended() {
		if s.Name() == name {
			n++
		}
	}
	return n
}
