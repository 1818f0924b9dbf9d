package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownType    = errors.New("unknown parameter type")
	ErrInvalidDefault = errors.New("invalid default value")
	ErrInvalidOptions = errors.New("invalid options")
	ErrInvalidRecord  = errors.New("invalid parameter record")
)

// Record is the wire form of a parameter as the host receives it. Default is
// nil when the parameter has no default; a false, zero or empty default is
// kept.
type Record struct {
	ID      string         `json:"id" yaml:"id" validate:"required"`
	Name    string         `json:"name" yaml:"name"`
	Type    Type           `json:"type" yaml:"type" validate:"required,oneof=number bigint string select color boolean"`
	Update  Update         `json:"update,omitempty" yaml:"update,omitempty" validate:"omitempty,eq=code-driven"`
	Default any            `json:"default,omitempty" yaml:"default,omitempty"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// recordWire is Record as encoded: a nil Options is omitted, an empty one is
// written as {}.
type recordWire struct {
	ID      string          `json:"id" yaml:"id"`
	Name    string          `json:"name" yaml:"name"`
	Type    Type            `json:"type" yaml:"type"`
	Update  Update          `json:"update,omitempty" yaml:"update,omitempty"`
	Default any             `json:"default,omitempty" yaml:"default,omitempty"`
	Options *map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

func (r Record) wire() recordWire {
	w := recordWire{ID: r.ID, Name: r.Name, Type: r.Type, Update: r.Update, Default: r.Default}
	if r.Options != nil {
		w.Options = &r.Options
	}
	return w
}

func (r Record) MarshalJSON() ([]byte, error) { return json.Marshal(r.wire()) }
func (r Record) MarshalYAML() (any, error)    { return r.wire(), nil }

func (p Number) Record() Record {
	r := Record{ID: p.id, Name: p.name, Type: TypeNumber}
	if p.def != nil {
		r.Default = *p.def
	}
	if p.options != nil {
		r.Options = map[string]any{}
		putPtr(r.Options, "min", p.options.Min)
		putPtr(r.Options, "max", p.options.Max)
		putPtr(r.Options, "step", p.options.Step)
	}
	return r
}

func (p BigInt) Record() Record {
	r := Record{ID: p.id, Name: p.name, Type: TypeBigInt, Update: CodeDriven}
	if p.def != nil {
		r.Default = copyBig(p.def)
	}
	if p.options != nil {
		r.Options = map[string]any{}
		putBig(r.Options, "min", p.options.Min)
		putBig(r.Options, "max", p.options.Max)
		putBig(r.Options, "step", p.options.Step)
	}
	return r
}

func (p String) Record() Record {
	r := Record{ID: p.id, Name: p.name, Type: TypeString, Update: CodeDriven}
	if p.def != nil {
		r.Default = *p.def
	}
	if p.options != nil {
		r.Options = map[string]any{}
		putPtr(r.Options, "minLength", p.options.MinLength)
		putPtr(r.Options, "maxLength", p.options.MaxLength)
	}
	return r
}

func (p Select) Record() Record {
	r := Record{
		ID:      p.id,
		Name:    p.name,
		Type:    TypeSelect,
		Update:  CodeDriven,
		Options: map[string]any{"options": p.Choices()},
	}
	if p.def != nil {
		r.Default = *p.def
	}
	return r
}

func (p Color) Record() Record {
	r := Record{ID: p.id, Name: p.name, Type: TypeColor, Update: CodeDriven}
	if p.def != nil {
		r.Default = *p.def
	}
	return r
}

func (p Boolean) Record() Record {
	r := Record{ID: p.id, Name: p.name, Type: TypeBoolean, Update: CodeDriven}
	if p.def != nil {
		r.Default = *p.def
	}
	return r
}

func (p Number) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }
func (p BigInt) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }
func (p String) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }
func (p Select) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }
func (p Color) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }
func (p Boolean) MarshalJSON() ([]byte, error) { return json.Marshal(p.Record()) }

// Records converts a parameter list to its wire form, keeping order.
func Records(list []Parameter) []Record {
	out := make([]Record, len(list))
	for i, p := range list {
		out[i] = p.Record()
	}
	return out
}

// FromRecord rebuilds a typed parameter from its wire form. The update marker
// on the record is ignored; it is implied by the type.
func FromRecord(r Record) (Parameter, error) {
	switch r.Type {
	case TypeNumber:
		var opts *NumberOptions
		if r.Options != nil {
			o := NumberOptions{}
			var err error
			if o.Min, err = optFloat(r.Options, "min"); err != nil {
				return nil, recordErr(r, err)
			}
			if o.Max, err = optFloat(r.Options, "max"); err != nil {
				return nil, recordErr(r, err)
			}
			if o.Step, err = optFloat(r.Options, "step"); err != nil {
				return nil, recordErr(r, err)
			}
			opts = &o
		}
		var def *float64
		if r.Default != nil {
			f, err := asFloat(r.Default)
			if err != nil {
				return nil, recordErr(r, fmt.Errorf("%w: %v", ErrInvalidDefault, err))
			}
			def = &f
		}
		return NewNumber(r.ID, r.Name, opts, def), nil

	case TypeBigInt:
		var opts *BigIntOptions
		if r.Options != nil {
			o := BigIntOptions{}
			var err error
			if o.Min, err = optBig(r.Options, "min"); err != nil {
				return nil, recordErr(r, err)
			}
			if o.Max, err = optBig(r.Options, "max"); err != nil {
				return nil, recordErr(r, err)
			}
			if o.Step, err = optBig(r.Options, "step"); err != nil {
				return nil, recordErr(r, err)
			}
			opts = &o
		}
		var def *big.Int
		if r.Default != nil {
			b, err := asBig(r.Default)
			if err != nil {
				return nil, recordErr(r, fmt.Errorf("%w: %v", ErrInvalidDefault, err))
			}
			def = b
		}
		return NewBigInt(r.ID, r.Name, opts, def), nil

	case TypeString:
		var opts *StringOptions
		if r.Options != nil {
			o := StringOptions{}
			var err error
			if o.MinLength, err = optInt(r.Options, "minLength"); err != nil {
				return nil, recordErr(r, err)
			}
			if o.MaxLength, err = optInt(r.Options, "maxLength"); err != nil {
				return nil, recordErr(r, err)
			}
			opts = &o
		}
		def, err := defaultString(r)
		if err != nil {
			return nil, err
		}
		return NewString(r.ID, r.Name, opts, def), nil

	case TypeSelect:
		raw, ok := r.Options["options"]
		if !ok {
			return nil, recordErr(r, fmt.Errorf("%w: select requires options.options", ErrInvalidOptions))
		}
		choices, err := asStrings(raw)
		if err != nil {
			return nil, recordErr(r, fmt.Errorf("%w: options: %v", ErrInvalidOptions, err))
		}
		def, err := defaultString(r)
		if err != nil {
			return nil, err
		}
		return NewSelect(r.ID, r.Name, choices, def), nil

	case TypeColor:
		def, err := defaultString(r)
		if err != nil {
			return nil, err
		}
		return NewColor(r.ID, r.Name, def), nil

	case TypeBoolean:
		var def *bool
		if r.Default != nil {
			b, ok := r.Default.(bool)
			if !ok {
				return nil, recordErr(r, fmt.Errorf("%w: want bool, got %T", ErrInvalidDefault, r.Default))
			}
			def = &b
		}
		return NewBoolean(r.ID, r.Name, def), nil
	}
	return nil, fmt.Errorf("parameter %q: %w: %q", r.ID, ErrUnknownType, r.Type)
}

// DecodeJSON reads a JSON array of parameter records.
func DecodeJSON(data []byte) ([]Parameter, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode parameter records: %w", err)
	}
	return fromRecords(records)
}

// DecodeYAML reads a YAML sequence of parameter records.
func DecodeYAML(data []byte) ([]Parameter, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode parameter records: %w", err)
	}
	return fromRecords(records)
}

func fromRecords(records []Record) ([]Parameter, error) {
	v := validatorInstance()
	out := make([]Parameter, 0, len(records))
	for i, r := range records {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("record %d: %w: %v", i, ErrInvalidRecord, err)
		}
		p, err := FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func recordErr(r Record, err error) error {
	return fmt.Errorf("parameter %q: %w", r.ID, err)
}

func defaultString(r Record) (*string, error) {
	if r.Default == nil {
		return nil, nil
	}
	s, ok := r.Default.(string)
	if !ok {
		return nil, recordErr(r, fmt.Errorf("%w: want string, got %T", ErrInvalidDefault, r.Default))
	}
	return &s, nil
}

func putPtr[T any](m map[string]any, key string, v *T) {
	if v != nil {
		m[key] = *v
	}
}

func putBig(m map[string]any, key string, v *big.Int) {
	if v != nil {
		m[key] = copyBig(v)
	}
}

func optFloat(m map[string]any, key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := asFloat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOptions, key, err)
	}
	return &f, nil
}

func optBig(m map[string]any, key string) (*big.Int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, err := asBig(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidOptions, key, err)
	}
	return b, nil
}

func optInt(m map[string]any, key string) (*int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, err := asBig(v)
	if err != nil || !b.IsInt64() {
		return nil, fmt.Errorf("%w: %s: want integer, got %v", ErrInvalidOptions, key, v)
	}
	i := int(b.Int64())
	return &i, nil
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func asBig(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return copyBig(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return nil, fmt.Errorf("want integer, got %v", n)
		}
		b, _ := big.NewFloat(n).Int(nil)
		return b, nil
	case json.Number:
		return parseBig(n.String())
	case string:
		return parseBig(n)
	}
	return nil, fmt.Errorf("want integer, got %T", v)
}

func parseBig(s string) (*big.Int, error) {
	if b, ok := new(big.Int).SetString(s, 10); ok {
		return b, nil
	}
	// JSON numbers such as 1e3 or 4.0 are integral but not decimal literals.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("want integer, got %q", s)
	}
	return asBig(f)
}

func asStrings(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d: want string, got %T", i, item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("want list of strings, got %T", v)
}
