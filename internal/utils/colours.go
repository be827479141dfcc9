package utils

// ColourScheme is one Catppuccin flavour.
type ColourScheme struct {
	Rosewater string
	Mauve     string
	Red       string
	Peach     string
	Yellow    string
	Green     string
	Teal      string
	Blue      string
	Lavender  string
	Text      string
	Subtext0  string
	Overlay1  string
	Surface1  string
	Surface0  string
	Base      string
}

// Mocha is the dark flavour.
var Mocha = ColourScheme{
	Rosewater: "#f5e0dc",
	Mauve:     "#cba6f7",
	Red:       "#f38ba8",
	Peach:     "#fab387",
	Yellow:    "#f9e2af",
	Green:     "#a6e3a1",
	Teal:      "#94e2d5",
	Blue:      "#89b4fa",
	Lavender:  "#b4befe",
	Text:      "#cdd6f4",
	Subtext0:  "#a6adc8",
	Overlay1:  "#7f849c",
	Surface1:  "#45475a",
	Surface0:  "#313244",
	Base:      "#1e1e2e",
}

// Latte is the light flavour.
var Latte = ColourScheme{
	Rosewater: "#dc8a78",
	Mauve:     "#8839ef",
	Red:       "#d20f39",
	Peach:     "#fe640b",
	Yellow:    "#df8e1d",
	Green:     "#40a02b",
	Teal:      "#179299",
	Blue:      "#1e66f5",
	Lavender:  "#7287fd",
	Text:      "#4c4f69",
	Subtext0:  "#6c6f85",
	Overlay1:  "#8c8fa1",
	Surface1:  "#bcc0cc",
	Surface0:  "#ccd0da",
	Base:      "#eff1f5",
}

// SchemeFor returns Latte for "light" and Mocha for anything else.
func SchemeFor(theme string) ColourScheme {
	if theme == "light" {
		return Latte
	}
	return Mocha
}
