// Package ansi provides the ANSI escape sequences and palette helpers used
// by dbg's colorized namespace prefixes. A Palette is an ordered set of
// color prefixes; dbg picks one entry per namespace by hashing the namespace
// string, so the same namespace keeps the same color for the process
// lifetime.
package ansi

import (
	"sort"
	"strconv"
	"strings"
)

// Reset is the ANSI escape code that clears all terminal styling; the
// remaining constants expose the classic 16-color sequences.
const (
	Reset         = "\x1b[0m"
	Bold          = "\x1b[1m"
	Faint         = "\x1b[90m"
	Red           = "\x1b[31m"
	Green         = "\x1b[32m"
	Yellow        = "\x1b[33m"
	Blue          = "\x1b[34m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	Gray          = "\x1b[37m"
	BrightRed     = "\x1b[1;31m"
	BrightGreen   = "\x1b[1;32m"
	BrightYellow  = "\x1b[1;33m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
	BrightCyan    = "\x1b[1;36m"
	BrightWhite   = "\x1b[1;37m"
)

// Palette is an ordered list of ANSI color prefixes. Namespace coloring
// indexes into it with hash(namespace) % len(palette).
type Palette []string

// Color256 returns the escape prefix selecting color n from the xterm
// 256-color cube.
func Color256(n uint8) string {
	return "\x1b[38;5;" + strconv.Itoa(int(n)) + "m"
}

// PaletteBasic is the 6-color fallback for terminals without 256-color
// support: cyan, green, yellow, blue, magenta, red.
var PaletteBasic = Palette{Cyan, Green, Yellow, Blue, Magenta, Red}

// paletteRichCodes lists the 256-color codes considered readable on both
// light and dark backgrounds.
var paletteRichCodes = []uint8{
	20, 21, 26, 27, 32, 33, 38, 39, 40, 41, 42, 43, 44, 45, 56, 57,
	62, 63, 68, 69, 76, 77, 78, 79, 80, 81, 92, 93, 98, 99, 112, 113,
	128, 129, 134, 135, 148, 149, 160, 161, 162, 163, 164, 165, 166, 167,
	168, 169, 170, 171, 172, 173, 178, 179, 184, 185, 196, 197, 198, 199,
	200, 201, 202, 203, 204, 205, 206, 207, 208, 209, 214, 215, 220, 221,
}

// PaletteRich is the default palette on 256-color terminals.
var PaletteRich = func() Palette {
	p := make(Palette, len(paletteRichCodes))
	for i, code := range paletteRichCodes {
		p[i] = Color256(code)
	}
	return p
}()

var namedPalettes = map[string]Palette{
	"basic": PaletteBasic,
	"rich":  PaletteRich,
}

var paletteAliases = map[string]string{
	"default": "rich",
	"256":     "rich",
	"16":      "basic",
	"ansi":    "basic",
}

// PaletteByName resolves a built-in palette by its canonical name. Names are
// case-insensitive and support compatibility aliases. Unknown names resolve
// to PaletteRich.
func PaletteByName(name string) Palette {
	normalized := normalizePaletteName(name)
	if normalized == "" {
		return PaletteRich
	}
	if canonical, ok := paletteAliases[normalized]; ok {
		normalized = canonical
	}
	if palette, ok := namedPalettes[normalized]; ok && len(palette) > 0 {
		return palette
	}
	return PaletteRich
}

// AvailablePaletteNames returns canonical built-in palette names in sorted
// order.
func AvailablePaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for name := range namedPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizePaletteName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if strings.HasPrefix(s, "palette-") {
		s = strings.TrimPrefix(s, "palette-")
	} else if strings.HasPrefix(s, "palette") {
		s = strings.TrimPrefix(s, "palette")
		s = strings.TrimLeft(s, "-")
	}
	return s
}
