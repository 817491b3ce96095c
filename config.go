package mengine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures the window and game loop started by Run.
// The game always renders into a fixed logical Width x Height space which is
// then placed into the window.
type RunConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`  // logical width
	Height int    `toml:"height"` // logical height

	// WindowWidth and WindowHeight set the initial window size. Zero uses the
	// logical size.
	WindowWidth  int `toml:"window_width"`
	WindowHeight int `toml:"window_height"`

	// Window size limits. Zero means no limit.
	MinWidth  int `toml:"min_width"`
	MinHeight int `toml:"min_height"`
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`

	// TPS is the number of Update calls per second.
	TPS int `toml:"tps"`

	Fullscreen bool `toml:"fullscreen"`
	ShowCursor bool `toml:"show_cursor"`
	Resizable  bool `toml:"resizable"`

	// AutoScale grows or shrinks the logical screen to fit the window while
	// keeping its aspect ratio.
	AutoScale bool `toml:"auto_scale"`
	// DrawCenter centers the logical screen in the window.
	DrawCenter bool `toml:"draw_center"`
	// ShowFPS draws the measured FPS and UPS over the game.
	ShowFPS bool `toml:"show_fps"`

	// ClearColor fills the logical screen before each Draw.
	ClearColor Color `toml:"clear_color"`
	// LetterboxColor fills the window area outside the logical screen.
	LetterboxColor Color `toml:"letterbox_color"`

	// Script is the path of a JSON input script replayed into the game.
	Script string `toml:"script"`
	// QuitAfterScript ends the loop once the script has finished.
	QuitAfterScript bool `toml:"quit_after_script"`
	// ScreenshotDir receives the PNGs captured by script screenshot steps.
	ScreenshotDir string `toml:"screenshot_dir"`
}

// DefaultRunConfig returns a 640x480 configuration running at 60 updates per
// second with a visible cursor and centered drawing.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:          "mengine",
		Width:          640,
		Height:         480,
		TPS:            60,
		ShowCursor:     true,
		DrawCenter:     true,
		ClearColor:     ColorBlack,
		LetterboxColor: ColorBlack,
		ScreenshotDir:  "screenshots",
	}
}

// Validate reports configuration errors.
func (c RunConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("mengine: logical size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("mengine: tps must be positive, got %d", c.TPS)
	}
	if c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
		return fmt.Errorf("mengine: min_width %d exceeds max_width %d", c.MinWidth, c.MaxWidth)
	}
	if c.MaxHeight > 0 && c.MinHeight > c.MaxHeight {
		return fmt.Errorf("mengine: min_height %d exceeds max_height %d", c.MinHeight, c.MaxHeight)
	}
	return nil
}

// ParseRunConfig decodes TOML on top of DefaultRunConfig, so omitted keys
// keep their defaults.
func ParseRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("mengine: parse run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// LoadRunConfig reads and decodes a TOML configuration file.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("mengine: read run config: %w", err)
	}
	return ParseRunConfig(data)
}
