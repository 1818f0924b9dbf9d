package params

import "math/big"

// Ptr returns a pointer to v. It is the usual way to pass optional defaults
// and option bounds to the constructors below.
func Ptr[T any](v T) *T {
	return &v
}

// The constructors never validate their input. An empty id, an empty choice
// list or a default outside the declared bounds pass through unchanged; use
// Validate when the caller wants those checked.

// NewNumber builds a Number parameter. options and def are independent and
// both optional.
func NewNumber(id, name string, options *NumberOptions, def *float64) Number {
	p := Number{base: base{id: id, name: name}, def: copyPtr(def)}
	if options != nil {
		o := copyNumberOptions(*options)
		p.options = &o
	}
	return p
}

// NewBigInt builds a code-driven BigInt parameter.
func NewBigInt(id, name string, options *BigIntOptions, def *big.Int) BigInt {
	p := BigInt{base: base{id: id, name: name}, def: copyBig(def)}
	if options != nil {
		o := copyBigIntOptions(*options)
		p.options = &o
	}
	return p
}

// NewString builds a code-driven String parameter.
func NewString(id, name string, options *StringOptions, def *string) String {
	p := String{base: base{id: id, name: name}, def: copyPtr(def)}
	if options != nil {
		o := copyStringOptions(*options)
		p.options = &o
	}
	return p
}

// NewSelect builds a code-driven Select parameter over choices. The default,
// when given, is expected to be one of the choices.
func NewSelect(id, name string, choices []string, def *string) Select {
	c := make([]string, len(choices))
	copy(c, choices)
	return Select{base: base{id: id, name: name}, choices: c, def: copyPtr(def)}
}

// NewColor builds a code-driven Color parameter.
func NewColor(id, name string, def *string) Color {
	return Color{base: base{id: id, name: name}, def: copyPtr(def)}
}

// NewBoolean builds a code-driven Boolean parameter.
func NewBoolean(id, name string, def *bool) Boolean {
	return Boolean{base: base{id: id, name: name}, def: copyPtr(def)}
}
