package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Kind tags the payload held by a Value.
type Kind uint8

const (
	// KindEmpty is the zero Value: no opinion.
	KindEmpty Kind = iota
	// KindBlock is an authored value block.
	KindBlock
	KindBool
	KindInt
	KindDouble
	KindString
	KindToken
	KindAssetPath
	KindTimeCode
	KindVec
	KindQuat
	KindArray
	KindDictionary
	KindListOp
	KindSpecifier
)

var kindNames = [...]string{
	KindEmpty:      "empty",
	KindBlock:      "block",
	KindBool:       "bool",
	KindInt:        "int",
	KindDouble:     "double",
	KindString:     "string",
	KindToken:      "token",
	KindAssetPath:  "asset",
	KindTimeCode:   "timecode",
	KindVec:        "vec",
	KindQuat:       "quat",
	KindArray:      "array",
	KindDictionary: "dictionary",
	KindListOp:     "listop",
	KindSpecifier:  "specifier",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsInterpolatable reports whether values of kind k can be blended linearly.
func (k Kind) IsInterpolatable() bool {
	switch k {
	case KindDouble, KindTimeCode, KindVec, KindQuat:
		return true
	default:
		return false
	}
}

// AssetPath is an authored asset reference and, once resolved, the path
// it resolved to.
type AssetPath struct {
	Authored string
	Resolved string
}

// Quat is a quaternion with real part W and imaginary parts X, Y, Z.
type Quat struct {
	W, X, Y, Z float64
}

// Value is a tagged union of every scene value this module understands.
// Values are immutable once constructed.
type Value struct {
	kind   Kind
	elem   Kind
	b      bool
	i      int64
	num    float64
	str    string
	res    string
	vec    []float64
	arr    []Value
	dict   Dictionary
	listOp *ListOp
	spec   Specifier
}

// Block returns the value-block sentinel.
func Block() Value { return Value{kind: KindBlock} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps i.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double wraps f.
func Double(f float64) Value { return Value{kind: KindDouble, num: f} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Token wraps a token string.
func Token(s string) Value { return Value{kind: KindToken, str: s} }

// Asset wraps an asset path.
func Asset(a AssetPath) Value { return Value{kind: KindAssetPath, str: a.Authored, res: a.Resolved} }

// AssetRef wraps an unresolved asset path.
func AssetRef(authored string) Value { return Asset(AssetPath{Authored: authored}) }

// TimeCodeValue wraps a time code.
func TimeCodeValue(t float64) Value { return Value{kind: KindTimeCode, num: t} }

// Vec wraps a fixed-length vector.
func Vec(comps ...float64) Value { return Value{kind: KindVec, vec: slices.Clone(comps)} }

// QuatValue wraps a quaternion.
func QuatValue(q Quat) Value { return Value{kind: KindQuat, vec: []float64{q.W, q.X, q.Y, q.Z}} }

// Array builds a homogeneous array of elem-kind values. Elements of a
// different kind are dropped.
func Array(elem Kind, elems ...Value) Value {
	out := make([]Value, 0, len(elems))
	for _, e := range elems {
		if e.kind == elem {
			out = append(out, e)
		}
	}
	return Value{kind: KindArray, elem: elem, arr: out}
}

// DoubleArray builds an array of doubles.
func DoubleArray(fs ...float64) Value {
	elems := make([]Value, len(fs))
	for i, f := range fs {
		elems[i] = Double(f)
	}
	return Array(KindDouble, elems...)
}

// TimeCodeArray builds an array of time codes.
func TimeCodeArray(ts ...float64) Value {
	elems := make([]Value, len(ts))
	for i, t := range ts {
		elems[i] = TimeCodeValue(t)
	}
	return Array(KindTimeCode, elems...)
}

// AssetArray builds an array of unresolved asset paths.
func AssetArray(paths ...string) Value {
	elems := make([]Value, len(paths))
	for i, p := range paths {
		elems[i] = AssetRef(p)
	}
	return Array(KindAssetPath, elems...)
}

// VecArray builds an array of vectors.
func VecArray(vs ...[]float64) Value {
	elems := make([]Value, len(vs))
	for i, v := range vs {
		elems[i] = Vec(v...)
	}
	return Array(KindVec, elems...)
}

// Dict wraps a dictionary.
func Dict(d Dictionary) Value { return Value{kind: KindDictionary, dict: d.Clone()} }

// ListOpValue wraps a list operation.
func ListOpValue(op ListOp) Value {
	c := op.Clone()
	return Value{kind: KindListOp, listOp: &c}
}

// SpecifierValue wraps a specifier.
func SpecifierValue(s Specifier) Value { return Value{kind: KindSpecifier, spec: s} }

// Kind returns the payload tag.
func (v Value) Kind() Kind { return v.kind }

// ElemKind returns the element kind of an array value.
func (v Value) ElemKind() Kind { return v.elem }

// IsEmpty reports whether v holds nothing.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// IsBlock reports whether v is a value block.
func (v Value) IsBlock() bool { return v.kind == KindBlock }

// IsInterpolatable reports whether v can be blended linearly, element-wise
// for arrays.
func (v Value) IsInterpolatable() bool {
	if v.kind == KindArray {
		return v.elem.IsInterpolatable()
	}
	return v.kind.IsInterpolatable()
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsDouble returns the double payload.
func (v Value) AsDouble() (float64, bool) { return v.num, v.kind == KindDouble }

// AsFloat returns any scalar numeric payload as a float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindDouble, KindTimeCode:
		return v.num, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsString returns the payload of a string or token value.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString || v.kind == KindToken
}

// AsAssetPath returns the asset path payload.
func (v Value) AsAssetPath() (AssetPath, bool) {
	return AssetPath{Authored: v.str, Resolved: v.res}, v.kind == KindAssetPath
}

// AsTimeCode returns the time code payload.
func (v Value) AsTimeCode() (float64, bool) { return v.num, v.kind == KindTimeCode }

// AsVec returns a copy of the vector payload.
func (v Value) AsVec() ([]float64, bool) {
	if v.kind != KindVec {
		return nil, false
	}
	return slices.Clone(v.vec), true
}

// AsQuat returns the quaternion payload.
func (v Value) AsQuat() (Quat, bool) {
	if v.kind != KindQuat {
		return Quat{}, false
	}
	return Quat{W: v.vec[0], X: v.vec[1], Y: v.vec[2], Z: v.vec[3]}, true
}

// Elems returns a copy of the array elements.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return slices.Clone(v.arr)
}

// Len returns the number of array elements or vector components.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindVec, KindQuat:
		return len(v.vec)
	default:
		return 0
	}
}

// AsDictionary returns a copy of the dictionary payload.
func (v Value) AsDictionary() (Dictionary, bool) {
	if v.kind != KindDictionary {
		return nil, false
	}
	return v.dict.Clone(), true
}

// AsListOp returns a copy of the list operation payload.
func (v Value) AsListOp() (ListOp, bool) {
	if v.kind != KindListOp || v.listOp == nil {
		return ListOp{}, false
	}
	return v.listOp.Clone(), true
}

// AsSpecifier returns the specifier payload.
func (v Value) AsSpecifier() (Specifier, bool) { return v.spec, v.kind == KindSpecifier }

// MapLeaves rebuilds v with fn applied to every scalar leaf, descending into
// arrays and dictionaries.
func (v Value) MapLeaves(fn func(Value) Value) Value {
	switch v.kind {
	case KindArray:
		out := make([]Value, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.MapLeaves(fn)
		}
		return Value{kind: KindArray, elem: v.elem, arr: out}
	case KindDictionary:
		out := make(Dictionary, len(v.dict))
		for k, e := range v.dict {
			out[k] = e.MapLeaves(fn)
		}
		return Value{kind: KindDictionary, dict: out}
	default:
		return fn(v)
	}
}

// Equal reports whether v and o hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty, KindBlock:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindDouble, KindTimeCode:
		return v.num == o.num
	case KindString, KindToken:
		return v.str == o.str
	case KindAssetPath:
		return v.str == o.str && v.res == o.res
	case KindVec, KindQuat:
		return slices.Equal(v.vec, o.vec)
	case KindArray:
		return v.elem == o.elem && slices.EqualFunc(v.arr, o.arr, Value.Equal)
	case KindDictionary:
		return v.dict.Equal(o.dict)
	case KindListOp:
		return v.listOp.Equal(*o.listOp)
	case KindSpecifier:
		return v.spec == o.spec
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindBlock:
		return "None"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble, KindTimeCode:
		return formatFloat(v.num)
	case KindString:
		return strconv.Quote(v.str)
	case KindToken:
		return v.str
	case KindAssetPath:
		if v.res != "" {
			return "@" + v.str + "@ (" + v.res + ")"
		}
		return "@" + v.str + "@"
	case KindVec, KindQuat:
		parts := make([]string, len(v.vec))
		for i, f := range v.vec {
			parts[i] = formatFloat(f)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDictionary:
		return v.dict.String()
	case KindListOp:
		return v.listOp.String()
	case KindSpecifier:
		return v.spec.String()
	default:
		return v.kind.String()
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
