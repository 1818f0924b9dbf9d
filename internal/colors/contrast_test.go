package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastTextColor(t *testing.T) {
	tests := []struct {
		name       string
		background string
		want       string
	}{
		{"black", "000000", White},
		{"dark blue", "0000aa", White},
		{"dark green", "00aa00", White},
		{"white", "ffffff", Black},
		{"light yellow", "ffff00", Black},
		{"light red", "ff8080", Black},
		{"threshold", "aa0000", White},
		{"just above threshold", "ab0000", Black},
		{"leading hash", "#ffffff", Black},
		{"not hex", "zzzzzz", White},
		{"empty", "", White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastTextColor(tt.background))
		})
	}
}

func TestContrastTextColorWithAlpha(t *testing.T) {
	// An eight digit value is shifted as a whole number, so the channel at
	// bits 16-23 is green once alpha is appended.
	assert.Equal(t, Black, ContrastTextColor("00ff00ff"))
	assert.Equal(t, White, ContrastTextColor("ff0000ff"))
}
