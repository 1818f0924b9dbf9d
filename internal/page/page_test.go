package page

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/fxparams/internal/params"
	"github.com/MJE43/fxparams/internal/sandbox"
)

func TestNewViewUsesColorParam(t *testing.T) {
	h := sandbox.New(sandbox.Identity{Hash: "ooHash", Minter: "tz1abc", Iteration: 2, Context: "standalone"})
	require.NoError(t, h.Params([]params.Parameter{
		params.NewColor("color_id", "A color", params.Ptr("#eeeeee")),
		params.NewSelect("select_id", "Fruit", []string{"pear"}, params.Ptr("pear")),
	}))

	v, err := NewView(h)
	require.NoError(t, err)
	assert.Equal(t, "#eeeeeeff", v.Background)
	assert.Equal(t, "#000000", v.Foreground)
	assert.Equal(t, "ooHash", v.Hash)
	assert.Equal(t, uint64(2), v.Iteration)
	assert.Contains(t, v.Params, `"select_id": "pear"`)
}

func TestNewViewWithoutColor(t *testing.T) {
	v, err := NewView(sandbox.New(sandbox.Identity{Hash: "ooHash"}))
	require.NoError(t, err)
	assert.Equal(t, "#ffffffff", v.Background)
	assert.Equal(t, "#000000", v.Foreground)
	assert.Equal(t, "{}", v.Params)
}

func TestNewViewContrastUsesRedChannel(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{color: "#00ff00", want: "#ffffff"},
		{color: "#ff0000", want: "#000000"},
		{color: "#ab0000", want: "#000000"},
		{color: "#aaffff", want: "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			h := sandbox.New(sandbox.Identity{Hash: "ooHash"})
			require.NoError(t, h.Params([]params.Parameter{params.NewColor("color_id", "A color", params.Ptr(tt.color))}))

			v, err := NewView(h)
			require.NoError(t, err)
			assert.Equal(t, tt.color+"ff", v.Background)
			assert.Equal(t, tt.want, v.Foreground)
		})
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, View{
		Hash:       "ooHash",
		Minter:     "tz1abc",
		Iteration:  1,
		Context:    "standalone",
		Background: "#123456ff",
		Foreground: "#ffffff",
		Params:     `{"a": "<b>"}`,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "hash: ooHash")
	assert.Contains(t, out, "iteration: 1")
	assert.Contains(t, out, "background: #123456ff")
	assert.Contains(t, out, `action="/randomize"`)
	assert.Contains(t, out, "emit random params")
	assert.Contains(t, out, "&lt;b&gt;")
	assert.NotContains(t, out, "<b>")
}
