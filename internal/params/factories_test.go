package params

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFactoriesTagIdentityAndUpdate(t *testing.T) {
	tests := []struct {
		name       string
		param      Parameter
		wantType   Type
		wantUpdate Update
		hasDefault bool
	}{
		{"number with default", NewNumber("n", "Number", &NumberOptions{Min: Ptr(0.0), Max: Ptr(10.0)}, Ptr(5.0)), TypeNumber, "", true},
		{"number without default", NewNumber("n", "Number", nil, nil), TypeNumber, "", false},
		{"bigint", NewBigInt("b", "BigInt", &BigIntOptions{Min: big.NewInt(0), Max: big.NewInt(100)}, big.NewInt(50)), TypeBigInt, CodeDriven, true},
		{"bigint without default", NewBigInt("b", "BigInt", nil, nil), TypeBigInt, CodeDriven, false},
		{"string", NewString("s", "String", &StringOptions{MinLength: Ptr(1), MaxLength: Ptr(10)}, Ptr("default")), TypeString, CodeDriven, true},
		{"string without default", NewString("s", "String", nil, nil), TypeString, CodeDriven, false},
		{"select", NewSelect("sel", "Select", []string{"a", "b", "c"}, Ptr("b")), TypeSelect, CodeDriven, true},
		{"select without default", NewSelect("sel", "Select", []string{"a"}, nil), TypeSelect, CodeDriven, false},
		{"color", NewColor("c", "Color", Ptr("#ff0000")), TypeColor, CodeDriven, true},
		{"color without default", NewColor("c", "Color", nil), TypeColor, CodeDriven, false},
		{"boolean", NewBoolean("bool", "Boolean", Ptr(true)), TypeBoolean, CodeDriven, true},
		{"boolean without default", NewBoolean("bool", "Boolean", nil), TypeBoolean, CodeDriven, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.param.Type())
			assert.Equal(t, tt.wantUpdate, tt.param.Update())
			assert.Equal(t, tt.hasDefault, tt.param.HasDefault())

			rec := tt.param.Record()
			assert.Equal(t, tt.param.ID(), rec.ID)
			assert.Equal(t, tt.param.Name(), rec.Name)
			assert.Equal(t, tt.wantType, rec.Type)
			assert.Equal(t, tt.hasDefault, rec.Default != nil)

			raw, err := json.Marshal(tt.param)
			require.NoError(t, err)
			var wire map[string]any
			require.NoError(t, json.Unmarshal(raw, &wire))
			_, hasDefault := wire["default"]
			assert.Equal(t, tt.hasDefault, hasDefault)
			update, hasUpdate := wire["update"]
			assert.Equal(t, tt.wantUpdate != "", hasUpdate)
			if hasUpdate {
				assert.Equal(t, "code-driven", update)
			}
		})
	}
}

func TestNumberParameter(t *testing.T) {
	p := NewNumber("test_id", "Test Number", &NumberOptions{Min: Ptr(0.0), Max: Ptr(10.0)}, Ptr(5.0))

	assert.Equal(t, "test_id", p.ID())
	assert.Equal(t, "Test Number", p.Name())
	opts, ok := p.Options()
	require.True(t, ok)
	assert.Equal(t, 0.0, *opts.Min)
	assert.Equal(t, 10.0, *opts.Max)
	assert.Nil(t, opts.Step)
	def, ok := p.Default()
	require.True(t, ok)
	assert.Equal(t, 5.0, def)

	assert.Equal(t, map[string]any{"min": 0.0, "max": 10.0}, p.Record().Options)
}

func TestNumberWithoutOptions(t *testing.T) {
	p := NewNumber("n", "N", nil, nil)
	_, ok := p.Options()
	assert.False(t, ok)
	assert.Nil(t, p.Record().Options)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"n","name":"N","type":"number"}`, string(raw))
}

func TestEmptyOptionsAreEncoded(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
		want  string
	}{
		{name: "number", param: NewNumber("n", "N", &NumberOptions{}, nil), want: `{"id":"n","name":"N","type":"number","options":{}}`},
		{name: "bigint", param: NewBigInt("b", "B", &BigIntOptions{}, nil), want: `{"id":"b","name":"B","type":"bigint","update":"code-driven","options":{}}`},
		{name: "string", param: NewString("s", "S", &StringOptions{}, nil), want: `{"id":"s","name":"S","type":"string","update":"code-driven","options":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.param)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))

			out, err := yaml.Marshal(tt.param.Record())
			require.NoError(t, err)
			assert.Contains(t, string(out), "options: {}")
		})
	}
}

func TestFalsyDefaultsArePresent(t *testing.T) {
	tests := []struct {
		name  string
		param Parameter
		want  string
	}{
		{"zero number", NewNumber("n", "N", nil, Ptr(0.0)), `{"id":"n","name":"N","type":"number","default":0}`},
		{"empty string", NewString("s", "S", nil, Ptr("")), `{"id":"s","name":"S","type":"string","update":"code-driven","default":""}`},
		{"false boolean", NewBoolean("b", "B", Ptr(false)), `{"id":"b","name":"B","type":"boolean","update":"code-driven","default":false}`},
		{"zero bigint", NewBigInt("i", "I", nil, big.NewInt(0)), `{"id":"i","name":"I","type":"bigint","update":"code-driven","default":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.param.HasDefault())
			raw, err := json.Marshal(tt.param)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestSelectParameter(t *testing.T) {
	p := NewSelect("test_id", "Test Select", []string{"a", "b", "c"}, Ptr("b"))

	assert.Equal(t, map[string]any{"options": []string{"a", "b", "c"}}, p.Record().Options)
	def, ok := p.Default()
	require.True(t, ok)
	assert.Equal(t, "b", def)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"test_id","name":"Test Select","type":"select","update":"code-driven","default":"b","options":{"options":["a","b","c"]}}`, string(raw))
}

func TestSelectEmptyChoicesStillEncodeOptions(t *testing.T) {
	p := NewSelect("s", "S", nil, nil)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s","name":"S","type":"select","update":"code-driven","options":{"options":[]}}`, string(raw))
}

func TestBigIntEncodesAsNumber(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	p := NewBigInt("b", "B", &BigIntOptions{Step: big.NewInt(1)}, huge)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b","name":"B","type":"bigint","update":"code-driven","default":123456789012345678901234567890,"options":{"step":1}}`, string(raw))
}

func TestRecordsAreImmutable(t *testing.T) {
	choices := []string{"a", "b"}
	sel := NewSelect("s", "S", choices, nil)
	choices[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, sel.Choices())

	got := sel.Choices()
	got[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, sel.Choices())

	def := big.NewInt(7)
	min := big.NewInt(1)
	bi := NewBigInt("b", "B", &BigIntOptions{Min: min}, def)
	def.SetInt64(99)
	min.SetInt64(99)
	d, _ := bi.Default()
	assert.Equal(t, int64(7), d.Int64())
	d.SetInt64(42)
	d2, _ := bi.Default()
	assert.Equal(t, int64(7), d2.Int64())
	opts, _ := bi.Options()
	assert.Equal(t, int64(1), opts.Min.Int64())

	f := 3.0
	num := NewNumber("n", "N", &NumberOptions{Max: &f}, &f)
	f = 8
	nd, _ := num.Default()
	assert.Equal(t, 3.0, nd)
	nopts, _ := num.Options()
	assert.Equal(t, 3.0, *nopts.Max)
}

func TestFactoriesDoNotValidate(t *testing.T) {
	p := NewSelect("", "", []string{}, Ptr("missing"))
	assert.Equal(t, "", p.ID())
	assert.Empty(t, p.Choices())
	def, ok := p.Default()
	assert.True(t, ok)
	assert.Equal(t, "missing", def)
}
