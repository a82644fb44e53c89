package particles

import "github.com/Zachkp/neon-portfolio/internal/appearance"

// Palette holds the four semantic color roles used by the backdrop.
type Palette struct {
	Primary   string
	Secondary string
	Accent    string
	Success   string
}

var (
	darkPalette = Palette{
		Primary:   "#00FFFF",
		Secondary: "#FF00FF",
		Accent:    "#FF69B4",
		Success:   "#00FF90",
	}
	lightPalette = Palette{
		Primary:   "#000000",
		Secondary: "#1a1a1a",
		Accent:    "#333333",
		Success:   "#000000",
	}
)

// PaletteFor returns the palette for a mode. Anything other than light gets
// the dark palette.
func PaletteFor(mode appearance.Mode) Palette {
	if mode == appearance.Light {
		return lightPalette
	}
	return darkPalette
}

// opacities returns the particle and link opacity for a mode. Light
// backgrounds need more contrast.
func opacities(mode appearance.Mode) (particle, link float64) {
	if mode == appearance.Light {
		return 0.8, 0.6
	}
	return 0.5, 0.3
}
