package ui

// Config contains window and input related settings.
type Config struct {
	Title       string // window title
	Scale       int    // integer upscaling factor
	FastForward int    // frames per update while Tab is held
	BatteryPath string // where the menu writes battery RAM; empty disables the entry
	ShotDir     string // directory for F12 screenshots
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbemu"
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.FastForward <= 1 {
		c.FastForward = 5
	}
	if c.ShotDir == "" {
		c.ShotDir = "."
	}
}
