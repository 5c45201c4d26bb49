package clips

import (
	"cmp"
	"slices"
	"strconv"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/engine/interp"
	"go.trai.ch/zerr"
)

// ClipSet is the ordered list of clips declared by one named clip set on a
// prim, plus the manifest describing which attributes they sample.
type ClipSet struct {
	Name   string
	Source Source
	// PrimPath is the prim the set was populated for.
	PrimPath     domain.Path
	ClipPrimPath domain.Path
	AssetPaths   []string
	// Clips are sorted by start time and cover disjoint ranges.
	Clips []*Clip
	// Manifest is nil when no manifest could be declared or generated.
	Manifest          *Clip
	ManifestID        string
	GeneratedManifest bool
}

// newClipSet validates def and builds its clips. Incomplete definitions
// yield a nil set with no error; malformed ones an error.
func newClipSet(prim domain.Path, def Definition, env *env) (*ClipSet, error) {
	if def.AssetPaths == nil || def.PrimPath == "" || def.Active == nil {
		return nil, nil
	}

	if !domain.IsAbsolutePrimPath(def.PrimPath) {
		return nil, zerr.With(domain.ErrInvalidClipPrimPath, "prim_path", def.PrimPath)
	}

	type activation struct {
		start float64
		index int
	}
	active := make([]activation, 0, len(def.Active))
	seen := make(map[float64]bool, len(def.Active))
	for _, a := range def.Active {
		index := int(a[1])
		if a[1] < 0 || float64(index) != a[1] || index >= len(def.AssetPaths) {
			return nil, zerr.With(zerr.With(domain.ErrClipIndexOutOfRange, "index", a[1]), "clips", len(def.AssetPaths))
		}
		if seen[a[0]] {
			return nil, zerr.With(domain.ErrDuplicateClipActiveTime, "time", a[0])
		}
		seen[a[0]] = true
		active = append(active, activation{start: a[0], index: index})
	}
	slices.SortFunc(active, func(a, b activation) int { return cmp.Compare(a.start, b.start) })

	set := &ClipSet{
		Name:         def.Name,
		Source:       def.Source,
		PrimPath:     prim,
		ClipPrimPath: domain.NewPath(def.PrimPath),
		AssetPaths:   def.AssetPaths,
	}

	times := NewTimeMappings(def.Times)
	for i, a := range active {
		start, end := a.start, domain.ClipTimesLatest
		if i == 0 {
			start = domain.ClipTimesEarliest
		}
		if i+1 < len(active) {
			end = active[i+1].start
		}
		set.Clips = append(set.Clips, NewClip(ClipParams{
			Source:        def.Source,
			AssetPath:     def.AssetPaths[a.index],
			PrimPath:      set.ClipPrimPath,
			AuthoredStart: a.start,
			Start:         start,
			End:           end,
			Times:         times,
		}, env.registry, env.report))
	}

	if len(set.Clips) == 0 {
		return set, nil
	}

	if def.ManifestAssetPath != "" {
		set.ManifestID = def.ManifestAssetPath
		set.Manifest = NewClip(manifestParams(set, def.ManifestAssetPath), env.registry, env.report)
		return set, nil
	}

	env.attachGeneratedManifest(set)
	return set, nil
}

func manifestParams(set *ClipSet, assetPath string) ClipParams {
	return ClipParams{
		Source:        set.Source,
		AssetPath:     assetPath,
		PrimPath:      set.ClipPrimPath,
		AuthoredStart: domain.ClipTimesEarliest,
		Start:         domain.ClipTimesEarliest,
		End:           domain.ClipTimesLatest,
	}
}

// ActiveClip returns the clip answering queries at stage time t.
func (s *ClipSet) ActiveClip(t float64) *Clip {
	i, _ := slices.BinarySearchFunc(s.Clips, t, func(c *Clip, t float64) int {
		if c.End <= t {
			return -1
		}
		if c.Start > t {
			return 1
		}
		return 0
	})
	if i >= len(s.Clips) {
		return s.Clips[len(s.Clips)-1]
	}
	return s.Clips[i]
}

// MayHaveSamples reports whether the manifest declares path as varying.
// Without a manifest every attribute may have samples.
func (s *ClipSet) MayHaveSamples(path domain.Path) bool {
	if s.Manifest == nil {
		return true
	}
	v, ok := s.Manifest.Layer().Field(s.Manifest.TranslatePath(path), domain.FieldVariability)
	if !ok {
		return false
	}
	tok, _ := v.AsString()
	return tok == domain.VariabilityVarying
}

// BracketingTimeSamples brackets t with the samples of the active clip.
func (s *ClipSet) BracketingTimeSamples(path domain.Path, t float64) (lower, upper float64, ok bool) {
	return s.ActiveClip(t).BracketingTimeSamples(path, t)
}

// ListTimeSamples returns the samples of every clip in the set.
func (s *ClipSet) ListTimeSamples(path domain.Path, interval domain.Interval) []float64 {
	var out []float64
	for _, c := range s.Clips {
		if !domain.HalfOpenInterval(c.Start, c.End).Intersects(interval) {
			continue
		}
		for _, t := range c.ListTimeSamples(path) {
			if interval.Contains(t) {
				out = append(out, t)
			}
		}
	}
	return out
}

// QueryTimeSample resolves the value at t from the active clip, bracketing
// and interpolating in stage time.
func (s *ClipSet) QueryTimeSample(path domain.Path, t float64, in interp.Interpolator) (domain.Value, bool) {
	c := s.ActiveClip(t)
	lower, upper, ok := c.BracketingTimeSamples(path, t)
	if !ok {
		return domain.Value{}, false
	}
	return interp.GetOrInterpolate(c.Sampler(in), path, t, lower, upper, in)
}

func (s *ClipSet) String() string {
	return s.Name + "@" + s.Source.PrimPath.String() + "[" + strconv.Itoa(len(s.Clips)) + " clips]"
}
