package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	theme, ok := Lookup("gruvbox")
	assert.True(t, ok)
	assert.Equal(t, "gruvbox", theme.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestNext_CyclesAndWraps(t *testing.T) {
	assert.Equal(t, Catppuccin.Name, Next(TokyoNight.Name).Name)
	assert.Equal(t, Gruvbox.Name, Next(Catppuccin.Name).Name)
	assert.Equal(t, TokyoNight.Name, Next(Gruvbox.Name).Name)
}

func TestNext_UnknownNameFallsBack(t *testing.T) {
	assert.Equal(t, TokyoNight.Name, Next("nope").Name)
}
