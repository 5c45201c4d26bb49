package config

import (
	"strconv"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Value tags understood in layer files. Untagged scalars decode to bool,
// int, double or string; untagged mappings to dictionaries; untagged
// sequences of numbers to double arrays, of number sequences to vector
// arrays and of strings to string arrays.
const (
	tagBlock     = "!block"
	tagToken     = "!token"
	tagDouble    = "!double"
	tagAsset     = "!asset"
	tagAssets    = "!assets"
	tagTimeCode  = "!timecode"
	tagTimeCodes = "!timecodes"
	tagVec       = "!vec"
	tagVecs      = "!vecs"
	tagQuat      = "!quat"
	tagListOp    = "!listop"
)

// DecodeValue converts a YAML node into a domain value.
func DecodeValue(node *yaml.Node) (domain.Value, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return DecodeValue(node.Alias)
	}

	switch node.Tag {
	case tagBlock:
		return domain.Block(), nil
	case tagToken:
		return domain.Token(node.Value), nil
	case tagAsset:
		return domain.AssetRef(node.Value), nil
	case tagDouble:
		f, err := parseFloat(node)
		return domain.Double(f), err
	case tagTimeCode:
		f, err := parseFloat(node)
		return domain.TimeCodeValue(f), err
	case tagVec:
		fs, err := decodeFloats(node)
		return domain.Vec(fs...), err
	case tagQuat:
		fs, err := decodeFloats(node)
		if err == nil && len(fs) != 4 {
			err = invalid(node, "quaternion needs 4 components")
		}
		if err != nil {
			return domain.Value{}, err
		}
		return domain.QuatValue(domain.Quat{W: fs[0], X: fs[1], Y: fs[2], Z: fs[3]}), nil
	case tagAssets:
		items, err := decodeStrings(node)
		return domain.AssetArray(items...), err
	case tagTimeCodes:
		fs, err := decodeFloats(node)
		return domain.TimeCodeArray(fs...), err
	case tagVecs:
		vs, err := decodeVecs(node)
		return domain.VecArray(vs...), err
	case tagListOp:
		return decodeListOp(node)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return decodeScalar(node)
	case yaml.MappingNode:
		return decodeDictionary(node)
	case yaml.SequenceNode:
		return decodeSequence(node)
	default:
		return domain.Value{}, invalid(node, "unsupported node")
	}
}

func decodeScalar(node *yaml.Node) (domain.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return domain.Value{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return domain.Value{}, invalid(node, err.Error())
		}
		return domain.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return domain.Value{}, invalid(node, err.Error())
		}
		return domain.Int(i), nil
	case "!!float":
		f, err := parseFloat(node)
		return domain.Double(f), err
	default:
		return domain.String(node.Value), nil
	}
}

func decodeDictionary(node *yaml.Node) (domain.Value, error) {
	d := make(domain.Dictionary, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		v, err := DecodeValue(node.Content[i+1])
		if err != nil {
			return domain.Value{}, zerr.With(err, "key", node.Content[i].Value)
		}
		d[node.Content[i].Value] = v
	}
	return domain.Dict(d), nil
}

func decodeSequence(node *yaml.Node) (domain.Value, error) {
	if len(node.Content) == 0 {
		return domain.Array(domain.KindString), nil
	}
	first := node.Content[0]
	switch {
	case first.Kind == yaml.SequenceNode:
		vs, err := decodeVecs(node)
		return domain.VecArray(vs...), err
	case first.Kind == yaml.ScalarNode && isNumber(first):
		fs, err := decodeFloats(node)
		return domain.DoubleArray(fs...), err
	default:
		items, err := decodeStrings(node)
		if err != nil {
			return domain.Value{}, err
		}
		elems := make([]domain.Value, len(items))
		for i, s := range items {
			elems[i] = domain.String(s)
		}
		return domain.Array(domain.KindString, elems...), nil
	}
}

func decodeListOp(node *yaml.Node) (domain.Value, error) {
	var dto struct {
		Explicit []string `yaml:"explicit"`
		Add      []string `yaml:"add"`
		Prepend  []string `yaml:"prepend"`
		Append   []string `yaml:"append"`
		Delete   []string `yaml:"delete"`
	}
	if err := node.Decode(&dto); err != nil {
		return domain.Value{}, invalid(node, err.Error())
	}
	if dto.Explicit != nil {
		return domain.ListOpValue(domain.ExplicitListOp(dto.Explicit...)), nil
	}
	return domain.ListOpValue(domain.ListOp{
		Added:     dto.Add,
		Prepended: dto.Prepend,
		Appended:  dto.Append,
		Deleted:   dto.Delete,
	}), nil
}

func decodeFloats(node *yaml.Node) ([]float64, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(node, "expected a sequence")
	}
	out := make([]float64, len(node.Content))
	for i, c := range node.Content {
		f, err := parseFloat(c)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func decodeVecs(node *yaml.Node) ([][]float64, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, invalid(node, "expected a sequence")
	}
	out := make([][]float64, len(node.Content))
	for i, c := range node.Content {
		fs, err := decodeFloats(c)
		if err != nil {
			return nil, err
		}
		out[i] = fs
	}
	return out, nil
}

func decodeStrings(node *yaml.Node) ([]string, error) {
	var out []string
	if err := node.Decode(&out); err != nil {
		return nil, invalid(node, err.Error())
	}
	return out, nil
}

func parseFloat(node *yaml.Node) (float64, error) {
	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return 0, invalid(node, err.Error())
	}
	return f, nil
}

func isNumber(node *yaml.Node) bool {
	t := node.ShortTag()
	return t == "!!int" || t == "!!float"
}

func invalid(node *yaml.Node, reason string) error {
	return zerr.With(zerr.With(domain.ErrInvalidValue, "line", node.Line), "reason", reason)
}
