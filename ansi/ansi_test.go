package ansi_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pkt.systems/dbg/ansi"
)

func TestColor256(t *testing.T) {
	assert.Equal(t, "\x1b[38;5;0m", ansi.Color256(0))
	assert.Equal(t, "\x1b[38;5;196m", ansi.Color256(196))
}

func TestPaletteRichEntriesAreEscapePrefixes(t *testing.T) {
	assert.NotEmpty(t, ansi.PaletteRich)
	for _, entry := range ansi.PaletteRich {
		assert.True(t, strings.HasPrefix(entry, "\x1b[38;5;"), "entry %q", entry)
		assert.True(t, strings.HasSuffix(entry, "m"), "entry %q", entry)
	}
}

func TestPaletteByName(t *testing.T) {
	assert.Equal(t, ansi.PaletteBasic, ansi.PaletteByName("basic"))
	assert.Equal(t, ansi.PaletteBasic, ansi.PaletteByName("  BASIC "))
	assert.Equal(t, ansi.PaletteBasic, ansi.PaletteByName("16"))
	assert.Equal(t, ansi.PaletteBasic, ansi.PaletteByName("palette-basic"))
	assert.Equal(t, ansi.PaletteRich, ansi.PaletteByName("rich"))
	assert.Equal(t, ansi.PaletteRich, ansi.PaletteByName("default"))
	assert.Equal(t, ansi.PaletteRich, ansi.PaletteByName("256"))
	assert.Equal(t, ansi.PaletteRich, ansi.PaletteByName(""))
	assert.Equal(t, ansi.PaletteRich, ansi.PaletteByName("no-such-palette"))
}

func TestAvailablePaletteNamesSorted(t *testing.T) {
	names := ansi.AvailablePaletteNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "basic")
	assert.Contains(t, names, "rich")
}
