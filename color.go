package dbg

import (
	"hash/fnv"

	"pkt.systems/dbg/ansi"
)

// selectColor picks the palette entry for namespace. The choice is a pure
// function of the namespace string, so an instance keeps its color for the
// process lifetime and recreating the instance yields the same color.
func selectColor(palette ansi.Palette, namespace string) string {
	if len(palette) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(namespace))
	return palette[h.Sum32()%uint32(len(palette))]
}
