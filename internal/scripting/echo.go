package scripting

import _ "embed"

// EchoHost is a host script whose getRandomParam returns each parameter's
// default.
//
//go:embed echo.js
var EchoHost string
