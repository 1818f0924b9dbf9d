package sandbox

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// RGB is a color without alpha, channels 0-255.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// RGBA is a color with alpha, channels 0-255.
type RGBA struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
	A int `json:"a"`
}

// ColorHex holds the "#rrggbb" and "#rrggbbaa" forms.
type ColorHex struct {
	RGB  string `json:"rgb"`
	RGBA string `json:"rgba"`
}

// ColorObj holds object forms.
type ColorObj struct {
	RGB  RGB  `json:"rgb"`
	RGBA RGBA `json:"rgba"`
}

// ColorArr holds array forms.
type ColorArr struct {
	RGB  [3]int `json:"rgb"`
	RGBA [4]int `json:"rgba"`
}

// ColorValue is the transformed value of a color parameter.
type ColorValue struct {
	Hex ColorHex `json:"hex"`
	Obj ColorObj `json:"obj"`
	Arr ColorArr `json:"arr"`
}

// ParseColor reads "rrggbb" or "rrggbbaa", with or without a leading '#'.
// A missing alpha channel is opaque.
func ParseColor(s string) (ColorValue, error) {
	hex := strings.ToLower(strings.TrimPrefix(s, "#"))
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return ColorValue{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorValue{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b, a := int(v>>24&0xff), int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)
	return ColorValue{
		Hex: ColorHex{RGB: "#" + hex[:6], RGBA: "#" + hex},
		Obj: ColorObj{RGB: RGB{R: r, G: g, B: b}, RGBA: RGBA{R: r, G: g, B: b, A: a}},
		Arr: ColorArr{RGB: [3]int{r, g, b}, RGBA: [4]int{r, g, b, a}},
	}, nil
}
