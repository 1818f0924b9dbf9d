package params

import "math/big"

// Type is the discriminator tag carried by every parameter.
type Type string

const (
	TypeNumber  Type = "number"
	TypeBigInt  Type = "bigint"
	TypeString  Type = "string"
	TypeSelect  Type = "select"
	TypeColor   Type = "color"
	TypeBoolean Type = "boolean"
)

// Types lists the supported tags in declaration order.
func Types() []Type {
	return []Type{TypeNumber, TypeBigInt, TypeString, TypeSelect, TypeColor, TypeBoolean}
}

// Update marks how the host refreshes a parameter's control.
type Update string

// CodeDriven means the value is pushed by application code rather than by the
// host's own control widget. Every variant except Number carries it.
const CodeDriven Update = "code-driven"

// Parameter is a typed, named input slot published to the host. The set of
// implementations is closed: Number, BigInt, String, Select, Color, Boolean.
type Parameter interface {
	ID() string
	Name() string
	Type() Type
	// Update returns "" for Number and CodeDriven for every other variant.
	Update() Update
	// HasDefault reports whether a default value was supplied.
	HasDefault() bool
	// Record returns the wire form sent to the host.
	Record() Record

	sealed()
}

type base struct {
	id   string
	name string
}

func (b base) ID() string { return b.id }
func (b base) Name() string { return b.name }

type codeDriven struct{}

func (codeDriven) Update() Update { return CodeDriven }

// NumberOptions constrains a Number parameter. Nil fields are omitted.
type NumberOptions struct {
	Min  *float64
	Max  *float64
	Step *float64
}

// BigIntOptions constrains a BigInt parameter. Nil fields are omitted.
type BigIntOptions struct {
	Min  *big.Int
	Max  *big.Int
	Step *big.Int
}

// StringOptions constrains a String parameter. Nil fields are omitted.
type StringOptions struct {
	MinLength *int
	MaxLength *int
}

// Number is a 64-bit float parameter.
type Number struct {
	base
	options *NumberOptions
	def     *float64
}

func (Number) Type() Type { return TypeNumber }
func (Number) Update() Update { return "" }
func (p Number) HasDefault() bool { return p.def != nil }
func (Number) sealed() {}

// Options returns the range constraints, if any.
func (p Number) Options() (NumberOptions, bool) {
	if p.options == nil {
		return NumberOptions{}, false
	}
	return copyNumberOptions(*p.options), true
}

// Default returns the default value, if any.
func (p Number) Default() (float64, bool) {
	if p.def == nil {
		return 0, false
	}
	return *p.def, true
}

// BigInt is an arbitrary-precision integer parameter.
type BigInt struct {
	base
	codeDriven
	options *BigIntOptions
	def     *big.Int
}

func (BigInt) Type() Type { return TypeBigInt }
func (p BigInt) HasDefault() bool { return p.def != nil }
func (BigInt) sealed() {}

// Options returns the range constraints, if any.
func (p BigInt) Options() (BigIntOptions, bool) {
	if p.options == nil {
		return BigIntOptions{}, false
	}
	return copyBigIntOptions(*p.options), true
}

// Default returns a copy of the default value, if any.
func (p BigInt) Default() (*big.Int, bool) {
	if p.def == nil {
		return nil, false
	}
	return new(big.Int).Set(p.def), true
}

// String is a free text parameter.
type String struct {
	base
	codeDriven
	options *StringOptions
	def     *string
}

func (String) Type() Type { return TypeString }
func (p String) HasDefault() bool { return p.def != nil }
func (String) sealed() {}

// Options returns the length constraints, if any.
func (p String) Options() (StringOptions, bool) {
	if p.options == nil {
		return StringOptions{}, false
	}
	return copyStringOptions(*p.options), true
}

// Default returns the default value, if any.
func (p String) Default() (string, bool) {
	if p.def == nil {
		return "", false
	}
	return *p.def, true
}

// Select picks one entry from an ordered list of choices.
type Select struct {
	base
	codeDriven
	choices []string
	def     *string
}

func (Select) Type() Type { return TypeSelect }
func (p Select) HasDefault() bool { return p.def != nil }
func (Select) sealed() {}

// Choices returns a copy of the ordered choices.
func (p Select) Choices() []string {
	c := make([]string, len(p.choices))
	copy(c, p.choices)
	return c
}

// Default returns the default value, if any.
func (p Select) Default() (string, bool) {
	if p.def == nil {
		return "", false
	}
	return *p.def, true
}

// Color is a hex color parameter.
type Color struct {
	base
	codeDriven
	def *string
}

func (Color) Type() Type { return TypeColor }
func (p Color) HasDefault() bool { return p.def != nil }
func (Color) sealed() {}

// Default returns the default value, if any.
func (p Color) Default() (string, bool) {
	if p.def == nil {
		return "", false
	}
	return *p.def, true
}

// Boolean is a true/false parameter.
type Boolean struct {
	base
	codeDriven
	def *bool
}

func (Boolean) Type() Type { return TypeBoolean }
func (p Boolean) HasDefault() bool { return p.def != nil }
func (Boolean) sealed() {}

// Default returns the default value, if any.
func (p Boolean) Default() (bool, bool) {
	if p.def == nil {
		return false, false
	}
	return *p.def, true
}

func copyNumberOptions(o NumberOptions) NumberOptions {
	return NumberOptions{Min: copyPtr(o.Min), Max: copyPtr(o.Max), Step: copyPtr(o.Step)}
}

func copyBigIntOptions(o BigIntOptions) BigIntOptions {
	return BigIntOptions{Min: copyBig(o.Min), Max: copyBig(o.Max), Step: copyBig(o.Step)}
}

func copyStringOptions(o StringOptions) StringOptions {
	return StringOptions{MinLength: copyPtr(o.MinLength), MaxLength: copyPtr(o.MaxLength)}
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
