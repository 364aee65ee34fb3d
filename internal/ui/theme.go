package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TilePlanTheme wraps the default Fyne theme with compact sizing and a fixed
// light or dark variant chosen in the settings.
type TilePlanTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewTilePlanTheme creates a theme with the given variant.
func NewTilePlanTheme(variant fyne.ThemeVariant) *TilePlanTheme {
	return &TilePlanTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// themeVariant maps a settings value ("light", "dark", "system") to a
// variant. system keeps the platform's current variant.
func themeVariant(name string, system fyne.ThemeVariant) fyne.ThemeVariant {
	switch name {
	case "light":
		return theme.VariantLight
	case "dark":
		return theme.VariantDark
	default:
		return system
	}
}

func (t *TilePlanTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

func (t *TilePlanTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *TilePlanTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *TilePlanTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
