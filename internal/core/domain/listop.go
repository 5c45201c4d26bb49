package domain

import (
	"slices"
	"strings"
)

// ListOp is an edit to an ordered list of strings (tokens, paths, names).
// An explicit op replaces the list; otherwise its item lists are applied
// in the order deleted, added, prepended, appended.
type ListOp struct {
	Explicit      bool
	ExplicitItems []string
	Added         []string
	Prepended     []string
	Appended      []string
	Deleted       []string
}

// ExplicitListOp returns an op that replaces the list with items.
func ExplicitListOp(items ...string) ListOp {
	return ListOp{Explicit: true, ExplicitItems: slices.Clone(items)}
}

// Clone returns a deep copy of op.
func (op ListOp) Clone() ListOp {
	return ListOp{
		Explicit:      op.Explicit,
		ExplicitItems: slices.Clone(op.ExplicitItems),
		Added:         slices.Clone(op.Added),
		Prepended:     slices.Clone(op.Prepended),
		Appended:      slices.Clone(op.Appended),
		Deleted:       slices.Clone(op.Deleted),
	}
}

// ApplyOperations applies op to items and returns the edited list. items
// is not modified.
func (op ListOp) ApplyOperations(items []string) []string {
	if op.Explicit {
		return dedupe(op.ExplicitItems)
	}

	out := slices.Clone(items)

	for _, d := range op.Deleted {
		out = slices.DeleteFunc(out, func(s string) bool { return s == d })
	}

	for _, a := range op.Added {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}

	if len(op.Prepended) > 0 {
		pre := dedupe(op.Prepended)
		out = slices.DeleteFunc(out, func(s string) bool { return slices.Contains(pre, s) })
		out = append(pre, out...)
	}

	if len(op.Appended) > 0 {
		app := dedupe(op.Appended)
		out = slices.DeleteFunc(out, func(s string) bool { return slices.Contains(app, s) })
		out = append(out, app...)
	}

	return out
}

// Equal reports whether op and o describe the same edit.
func (op ListOp) Equal(o ListOp) bool {
	return op.Explicit == o.Explicit &&
		slices.Equal(op.ExplicitItems, o.ExplicitItems) &&
		slices.Equal(op.Added, o.Added) &&
		slices.Equal(op.Prepended, o.Prepended) &&
		slices.Equal(op.Appended, o.Appended) &&
		slices.Equal(op.Deleted, o.Deleted)
}

func (op ListOp) String() string {
	if op.Explicit {
		return "explicit[" + strings.Join(op.ExplicitItems, ", ") + "]"
	}
	var parts []string
	add := func(name string, items []string) {
		if len(items) > 0 {
			parts = append(parts, name+"["+strings.Join(items, ", ")+"]")
		}
	}
	add("delete", op.Deleted)
	add("add", op.Added)
	add("prepend", op.Prepended)
	add("append", op.Appended)
	return strings.Join(parts, " ")
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
