package engine

// Palette is the ordered set of icons a level draws from. A level with
// IconCount n uses the first n entries.
var Palette = []Icon{
	"🐑", "🐄", "🐷", "🐔", "🐴", "🐰", "🦊", "🐻",
	"🌻", "🌸", "🍎", "🍊", "🥕", "🌽", "🍇", "🍓",
}

// Icons returns the first n palette icons, clamped to [0, len(Palette)].
func Icons(n int) []Icon {
	n = max(0, min(n, len(Palette)))
	out := make([]Icon, n)
	copy(out, Palette[:n])
	return out
}

// IconIndex returns the palette slot of icon, or -1 if it is not in the
// palette.
func IconIndex(icon Icon) int {
	for i, p := range Palette {
		if p == icon {
			return i
		}
	}
	return -1
}
