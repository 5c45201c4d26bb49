package domain

// Specifier states whether a prim spec defines its prim or only overrides it.
type Specifier uint8

const (
	SpecifierOver Specifier = iota
	SpecifierDef
	SpecifierClass
)

// ParseSpecifier converts the textual form used in layer files.
func ParseSpecifier(s string) (Specifier, bool) {
	switch s {
	case "over":
		return SpecifierOver, true
	case "def":
		return SpecifierDef, true
	case "class":
		return SpecifierClass, true
	default:
		return SpecifierOver, false
	}
}

// IsDefining reports whether s defines its prim.
func (s Specifier) IsDefining() bool {
	return s != SpecifierOver
}

func (s Specifier) String() string {
	switch s {
	case SpecifierDef:
		return "def"
	case SpecifierClass:
		return "class"
	default:
		return "over"
	}
}

// ArcType classifies how a composition node was introduced.
type ArcType uint8

const (
	ArcRoot ArcType = iota
	ArcInherit
	ArcVariant
	ArcReference
	ArcPayload
	ArcSpecialize
)

// ParseArcType converts the textual arc names used in scene files.
func ParseArcType(s string) (ArcType, bool) {
	switch s {
	case "", "root":
		return ArcRoot, true
	case "inherit":
		return ArcInherit, true
	case "variant":
		return ArcVariant, true
	case "reference":
		return ArcReference, true
	case "payload":
		return ArcPayload, true
	case "specialize":
		return ArcSpecialize, true
	default:
		return ArcRoot, false
	}
}

func (a ArcType) String() string {
	switch a {
	case ArcInherit:
		return "inherit"
	case ArcVariant:
		return "variant"
	case ArcReference:
		return "reference"
	case ArcPayload:
		return "payload"
	case ArcSpecialize:
		return "specialize"
	default:
		return "root"
	}
}
