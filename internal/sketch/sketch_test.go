package sketch

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/fxparams/internal/params"
	"github.com/MJE43/fxparams/internal/sandbox"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.NoError(t, params.Validate(defs))

	var ids []string
	for _, d := range defs {
		ids = append(ids, d.ID())
	}
	assert.Equal(t, []string{"number_id", "bigint_id", "string_id_long", "select_id", "color_id", "boolean_id", "string_id"}, ids)

	bi := defs[1].(params.BigInt)
	opts, ok := bi.Options()
	require.True(t, ok)
	assert.Equal(t, "36028797018963964", opts.Max.String())
	assert.Equal(t, "-36028797018963964", opts.Min.String())
}

func TestAcceptUpdate(t *testing.T) {
	assert.False(t, AcceptUpdate(map[string]any{"number_id": 5.0}))
	assert.True(t, AcceptUpdate(map[string]any{"number_id": 5.0001}))
	assert.True(t, AcceptUpdate(map[string]any{}))
}

func TestInitDefinesParamsThenFeatures(t *testing.T) {
	host := sandbox.New(sandbox.Identity{Hash: "ooTestHash"})
	s := New(host)
	require.NoError(t, s.Init())

	assert.Len(t, host.Definitions(), 7)
	assert.Len(t, s.Service().Parameters(), 7)

	features := host.FeaturesSnapshot()
	require.Len(t, features, 4)
	number, _ := host.Param("number_id")
	assert.Equal(t, number, features["Feature from params, its a number"])
	assert.Contains(t, []string{"A", "B", "C", "D"}, features["A random string"])
	f := features["A random feature"].(int)
	assert.True(t, f >= 0 && f < 10)
	assert.Equal(t, 1, s.Renders())
}

func TestInitIsDeterministicPerHash(t *testing.T) {
	a := New(sandbox.New(sandbox.Identity{Hash: "ooSameHash"}))
	b := New(sandbox.New(sandbox.Identity{Hash: "ooSameHash"}))
	require.NoError(t, a.Init())
	require.NoError(t, b.Init())
	assert.Equal(t, a.Host().RawParamValues(), b.Host().RawParamValues())
	assert.Equal(t, a.Host().FeaturesSnapshot(), b.Host().FeaturesSnapshot())
}

func TestRandomizeAppliesValues(t *testing.T) {
	host := sandbox.New(sandbox.Identity{Hash: "ooTestHash"})
	s := New(host)
	require.NoError(t, s.Init())

	u, err := s.Randomize()
	require.NoError(t, err)
	assert.True(t, u.OptIn)
	assert.Len(t, u.Applied, 7)
	assert.Equal(t, 2, s.Renders())

	raw := host.RawParamValues()
	for id, v := range u.Values {
		if b, ok := v.(*big.Int); ok {
			assert.Equal(t, 0, b.Cmp(raw[id].(*big.Int)), id)
			continue
		}
		assert.Equal(t, v, raw[id], id)
	}
}

func TestRejectedUpdateKeepsValues(t *testing.T) {
	host := sandbox.New(sandbox.Identity{Hash: "ooTestHash"})
	s := New(host)
	require.NoError(t, s.Init())
	before := host.RawParamValues()

	u, err := host.Emit(sandbox.EventParamsUpdate, map[string]any{"number_id": RejectedNumber})
	require.NoError(t, err)
	assert.False(t, u.OptIn)
	assert.Equal(t, before, host.RawParamValues())
	assert.Equal(t, 1, s.Renders())
}

func TestReinitReplacesListener(t *testing.T) {
	host := sandbox.New(sandbox.Identity{Hash: "ooTestHash"})
	s := New(host, WithDefinitions([]params.Parameter{params.NewBoolean("boolean_id", "B", nil)}))
	require.NoError(t, s.Init())
	require.NoError(t, s.Init())

	_, err := host.Emit(sandbox.EventParamsUpdate, map[string]any{"boolean_id": true})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Renders())
}
