package domain

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ResolverContext binds asset resolution to a set of search directories.
// The zero value resolves relative to the anchoring layer only.
type ResolverContext struct {
	SearchPaths []string
}

// String returns a stable textual form used in keys and diagnostics.
func (c ResolverContext) String() string {
	return strings.Join(c.SearchPaths, string(rune(0x1f)))
}

// StageKey identifies a stage by its root layer, session layer and resolver
// context.
type StageKey struct {
	Root    string
	Session string
	Context string
}

// NewStageKey builds a key from layer identifiers and a resolver context.
func NewStageKey(root, session string, ctx ResolverContext) StageKey {
	return StageKey{Root: root, Session: session, Context: ctx.String()}
}

// Hash returns a 64-bit digest of the key.
func (k StageKey) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(k.Root)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(k.Session)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(k.Context)
	return d.Sum64()
}

func (k StageKey) String() string {
	s := "@" + k.Root + "@"
	if k.Session != "" {
		s += " session @" + k.Session + "@"
	}
	return s
}
