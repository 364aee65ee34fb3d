package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultTileWidth    float64      `json:"default_tile_width" toml:"default_tile_width"`
	DefaultTileHeight   float64      `json:"default_tile_height" toml:"default_tile_height"`
	DefaultDelimiter    float64      `json:"default_delimiter" toml:"default_delimiter"`
	DefaultMethod       LayingMethod `json:"default_method" toml:"default_method"`
	DefaultPricePerTile float64      `json:"default_price_per_tile" toml:"default_price_per_tile"`
	DefaultWastePercent float64      `json:"default_waste_percent" toml:"default_waste_percent"`
	GroutFormula        GroutFormula `json:"grout_formula" toml:"grout_formula"`

	// Rendering
	CanvasWidth   int    `json:"canvas_width" toml:"canvas_width"`
	CanvasHeight  int    `json:"canvas_height" toml:"canvas_height"`
	WatermarkText string `json:"watermark_text" toml:"watermark_text"`

	// Server
	MediaRoot  string `json:"media_root" toml:"media_root"`
	ListenAddr string `json:"listen_addr" toml:"listen_addr"`

	// Application preferences
	RecentProjects []string `json:"recent_projects" toml:"recent_projects"`
	Theme          string   `json:"theme" toml:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the values a new
// project starts from.
func DefaultAppConfig() AppConfig {
	defaults := NewProject()
	return AppConfig{
		DefaultTileWidth:    defaults.Tile.Width,
		DefaultTileHeight:   defaults.Tile.Height,
		DefaultDelimiter:    defaults.Tile.Delimiter,
		DefaultMethod:       defaults.Method,
		DefaultPricePerTile: defaults.PricePerTile,
		DefaultWastePercent: defaults.WastePercent,
		GroutFormula:        defaults.GroutFormula,
		CanvasWidth:         1280,
		CanvasHeight:        720,
		WatermarkText:       "TilePlan",
		MediaRoot:           "media",
		ListenAddr:          ":8888",
		RecentProjects:      []string{},
		Theme:               "system",
	}
}

// CanvasSize returns the configured drawing area in pixels.
func (c AppConfig) CanvasSize() Size {
	return Size{Width: float64(c.CanvasWidth), Height: float64(c.CanvasHeight)}
}

// ApplyToProject copies the default values from AppConfig into a project.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToProject(p *Project) {
	p.Tile = NewTileOptions(c.DefaultTileWidth, c.DefaultTileHeight, c.DefaultDelimiter)
	if c.DefaultMethod.Valid() {
		p.Method = c.DefaultMethod
	}
	p.PricePerTile = c.DefaultPricePerTile
	p.WastePercent = c.DefaultWastePercent
	if c.GroutFormula != "" {
		p.GroutFormula = c.GroutFormula
	}
}

// AddRecent moves path to the front of the recent project list, keeping at
// most max entries.
func (c *AppConfig) AddRecent(path string, max int) {
	list := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			list = append(list, p)
		}
	}
	if max > 0 && len(list) > max {
		list = list[:max]
	}
	c.RecentProjects = list
}
