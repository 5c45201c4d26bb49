package app

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/strata/internal/adapters/watcher"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// ReloadReport describes one reload pass.
type ReloadReport struct {
	// Layers are the reloaded layer identifiers.
	Layers []string
	// Prims are the prims whose clips were recomputed.
	Prims []domain.Path
	// Retained is the number of clip sets the lifeboat kept alive while the
	// prims were repopulated.
	Retained int
}

// Reload re-reads the changed layer files of st and recomputes clips for
// every prim whose layer stacks or clip sets use them. Generated manifests
// of the old clip sets are reused by the new ones unless one of their clip
// layers changed.
func (a *App) Reload(ctx context.Context, st *Stage, paths []string) (ReloadReport, error) {
	ctx, span := a.tracer.Start(ctx, "stage.reload", ports.WithAttribute("files", len(paths)))
	defer span.End()

	st.mu.Lock()
	defer st.mu.Unlock()

	var (
		report     ReloadReport
		affected   []domain.Path
		clipLayers []string
	)
	for _, p := range paths {
		if a.changes != nil && !a.changes.Changed(p) {
			continue
		}
		ok, err := a.layers.Reload(p)
		if err != nil {
			span.RecordError(err)
			return report, zerr.With(err, "layer", p)
		}
		// A clip layer that is not open is read fresh on first use, but
		// its prims still need new manifests.
		clipPrims := st.clips.PrimsUsingLayer(p)
		if len(clipPrims) > 0 {
			clipLayers = append(clipLayers, p)
		}
		if !ok && len(clipPrims) == 0 {
			continue
		}
		report.Layers = append(report.Layers, p)
		affected = append(affected, st.composer.PrimsUsingLayer(p)...)
		affected = append(affected, clipPrims...)
	}
	roots := topmost(affected)
	if len(roots) == 0 {
		return report, nil
	}

	lb := st.clips.NewLifeboat()
	defer lb.Release()

	for _, p := range roots {
		st.clips.InvalidateClipsForPrim(p, lb)
	}
	lb.ForgetManifestsUsing(clipLayers)
	report.Retained = lb.Len()

	for _, p := range st.composer.Prims() {
		if slices.ContainsFunc(roots, func(r domain.Path) bool { return p.HasPrefix(r) }) {
			report.Prims = append(report.Prims, p)
		}
	}
	if err := a.populate(ctx, st.composer, st.clips, report.Prims); err != nil {
		span.RecordError(err)
		return report, err
	}
	span.SetAttribute("prims", len(report.Prims))
	return report, nil
}

// topmost drops duplicates and every path below another one in paths.
func topmost(paths []domain.Path) []domain.Path {
	slices.SortFunc(paths, func(a, b domain.Path) int {
		if d := len(a.String()) - len(b.String()); d != 0 {
			return d
		}
		return strings.Compare(a.String(), b.String())
	})
	var out []domain.Path
	for _, p := range paths {
		if !slices.ContainsFunc(out, func(r domain.Path) bool { return p.HasPrefix(r) }) {
			out = append(out, p)
		}
	}
	return out
}

// watchedFiles returns the stage's layer files followed by the clip layers
// and authored manifests its clip sets read.
func watchedFiles(st *Stage) []string {
	files := st.Description().LayerIdentifiers()

	st.mu.RLock()
	clipFiles := st.clips.LayerIdentifiers()
	st.mu.RUnlock()

	for _, f := range clipFiles {
		if !slices.Contains(files, f) {
			files = append(files, f)
		}
	}
	return files
}

// Watch reloads st whenever its layer or clip layer files change, until ctx
// is done or w stops producing events. Changes are batched over the
// debounce window and each finished pass is passed to onReload. Clip layers
// first referenced by a reload are watched from then on.
func (a *App) Watch(ctx context.Context, st *Stage, w ports.Watcher, onReload func(ReloadReport, error)) error {
	files := watchedFiles(st)
	if a.changes != nil {
		for _, f := range files {
			a.changes.Changed(f)
		}
	}
	if err := w.Start(ctx, files); err != nil {
		return zerr.Wrap(err, domain.ErrWatcherStartFailed.Error())
	}

	var knownMu sync.RWMutex
	known := make(map[string]struct{}, len(files))
	for _, f := range files {
		known[filepath.Clean(f)] = struct{}{}
	}

	// follow starts watching files referenced for the first time.
	follow := func() {
		var added []string
		knownMu.Lock()
		for _, f := range watchedFiles(st) {
			if _, ok := known[filepath.Clean(f)]; !ok {
				known[filepath.Clean(f)] = struct{}{}
				added = append(added, f)
			}
		}
		knownMu.Unlock()
		if len(added) == 0 {
			return
		}
		if a.changes != nil {
			for _, f := range added {
				a.changes.Changed(f)
			}
		}
		if err := w.Start(ctx, added); err != nil {
			a.logger.Error(zerr.Wrap(err, domain.ErrWatcherStartFailed.Error()))
		}
	}

	var mu sync.Mutex
	deb := watcher.NewDebouncer(a.opts.Debounce, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()

		report, err := a.Reload(ctx, st, paths)
		if err != nil {
			a.logger.Error(err)
		}
		if err == nil && len(report.Prims) > 0 {
			follow()
		}
		if onReload != nil {
			onReload(report, err)
		}
	})

	stopped := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(stopped)
		_ = w.Stop()
	})

	for ev := range w.Events() {
		knownMu.RLock()
		_, ok := known[ev.Path]
		knownMu.RUnlock()
		if ok {
			deb.Add(ev.Path)
		}
	}

	if !stop() {
		<-stopped
		deb.Stop()
		return nil
	}
	deb.Flush()
	return w.Stop()
}
