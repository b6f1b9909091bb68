package config

// UIConfig holds terminal user interface configuration.
type UIConfig struct {
	// PageSize is the number of cards per page (default 10)
	PageSize int `yaml:"page_size"`

	// Theme selects the palette: auto, light, dark
	Theme string `yaml:"theme"`

	// MinColumnWidth is the narrowest a card tile may get before the grid
	// drops a column
	MinColumnWidth int `yaml:"min_column_width"`

	// ShowImageURL renders the stored image URL line on each tile
	ShowImageURL bool `yaml:"show_image_url"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		PageSize:       10,
		Theme:          "auto",
		MinColumnWidth: 38,
		ShowImageURL:   true,
	}
}
