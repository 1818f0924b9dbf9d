// Package page renders the sketch's status page.
package page

import (
	"fmt"
	"html/template"
	"io"

	"github.com/MJE43/fxparams/internal/colors"
	"github.com/MJE43/fxparams/internal/sandbox"
)

// View is the data the status page shows.
type View struct {
	Hash       string
	Minter     string
	Iteration  uint64
	InputBytes string
	Context    string
	Background string
	Foreground string
	Params     string
}

// NewView reads the page data from a host. The background is the color_id
// parameter; it falls back to white when the piece has no such color.
func NewView(h *sandbox.Host) (View, error) {
	raw, err := sandbox.StringifyParams(h.RawParamValues())
	if err != nil {
		return View{}, err
	}
	bg := "#ffffffff"
	if v, ok := h.Param("color_id"); ok {
		if c, ok := v.(sandbox.ColorValue); ok {
			bg = c.Hex.RGBA
		}
	}
	// Contrast reads the red channel of the rrggbb part, not the alpha-suffixed form.
	return View{
		Hash:       h.Hash(),
		Minter:     h.Minter(),
		Iteration:  h.Iteration(),
		InputBytes: h.InputBytes(),
		Context:    h.Context(),
		Background: bg,
		Foreground: colors.ContrastTextColor(bg[:7]),
		Params:     raw,
	}, nil
}

var tmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>fxparams</title>
<style>
body { margin: 0; font-family: monospace; }
#root { min-height: 100vh; padding: 1rem; background: {{.Background}}; color: {{.Foreground}}; }
pre { white-space: pre-wrap; word-break: break-all; }
</style>
</head>
<body>
<div id="root">
<p>hash: {{.Hash}}</p>
<p>minter: {{.Minter}}</p>
<p>iteration: {{.Iteration}}</p>
<p>inputBytes: {{.InputBytes}}</p>
<p>context: {{.Context}}</p>
<p>params:</p>
<pre>{{.Params}}</pre>
<form method="post" action="/randomize"><button type="submit">emit random params</button></form>
</div>
</body>
</html>
`))

// Render writes the status page.
func Render(w io.Writer, v View) error {
	if err := tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
