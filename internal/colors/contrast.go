package colors

import (
	"strconv"
	"strings"
)

const (
	Black = "#000000"
	White = "#ffffff"
)

// ContrastTextColor picks black or white text for a hex background such as
// "ff8080". The byte at bits 16-23 of the parsed value decides (the red
// channel for rrggbb input): above 0xaa the text is black. Input that does not
// parse as hex gets white text.
func ContrastTextColor(background string) string {
	hex := strings.TrimPrefix(background, "#")
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return White
	}
	if (v>>16)&0xff > 0xaa {
		return Black
	}
	return White
}
