package domain

import (
	"maps"
	"slices"
	"strings"
)

// KeyPathDelimiter separates nested keys in a dictionary key path.
const KeyPathDelimiter = ":"

// Dictionary is a string-keyed map of values that may nest.
type Dictionary map[string]Value

// Clone returns a deep copy of d.
func (d Dictionary) Clone() Dictionary {
	if d == nil {
		return nil
	}
	out := make(Dictionary, len(d))
	for k, v := range d {
		if v.kind == KindDictionary {
			v = Value{kind: KindDictionary, dict: v.dict.Clone()}
		}
		out[k] = v
	}
	return out
}

// Keys returns the keys of d in sorted order.
func (d Dictionary) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Lookup returns the value at a colon-delimited key path such as "a:b".
func (d Dictionary) Lookup(keyPath string) (Value, bool) {
	cur := d
	keys := strings.Split(keyPath, KeyPathDelimiter)
	for i, k := range keys {
		v, ok := cur[k]
		if !ok {
			return Value{}, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		if v.kind != KindDictionary {
			return Value{}, false
		}
		cur = v.dict
	}
	return Value{}, false
}

// OverRecursive returns a copy of strong with every gap filled from weak.
// When both hold a dictionary under the same key the two are merged the same
// way; otherwise strong's entry wins.
func OverRecursive(strong, weak Dictionary) Dictionary {
	if strong == nil && weak == nil {
		return nil
	}
	out := strong.Clone()
	if out == nil {
		out = make(Dictionary, len(weak))
	}
	for k, w := range weak {
		s, ok := out[k]
		switch {
		case !ok:
			out[k] = w.MapLeaves(func(v Value) Value { return v })
		case s.kind == KindDictionary && w.kind == KindDictionary:
			out[k] = Value{kind: KindDictionary, dict: OverRecursive(s.dict, w.dict)}
		}
	}
	return out
}

// Equal reports whether d and o hold equal values under the same keys.
func (d Dictionary) Equal(o Dictionary) bool {
	return maps.EqualFunc(d, o, Value.Equal)
}

func (d Dictionary) String() string {
	keys := d.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + d[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
