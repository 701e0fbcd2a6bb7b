package termhost

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	cv "github.com/568071718/creator-collection-view"
)

// Config describes a demo collection: which layout, how much data and the
// controller tunables. It is decoded from TOML.
type Config struct {
	Layout string `toml:"layout"`
	Items  int    `toml:"items"`
	FPS    int    `toml:"fps"`

	Controller cv.Config   `toml:"controller"`
	Table      TableConfig `toml:"table"`
	Grid       GridConfig  `toml:"grid"`
	Pager      PagerConfig `toml:"pager"`
}

type TableConfig struct {
	RowHeight    float64 `toml:"row_height"`
	Spacing      float64 `toml:"spacing"`
	InsetTop     float64 `toml:"inset_top"`
	InsetBottom  float64 `toml:"inset_bottom"`
	HeaderHeight float64 `toml:"header_height"`
	FooterHeight float64 `toml:"footer_height"`
	PinHeaders   bool    `toml:"pin_headers"`
	PinFooters   bool    `toml:"pin_footers"`
	// SectionSize splits the items into sections of this many rows.
	// Zero keeps a single section.
	SectionSize  int `toml:"section_size"`
	ExtraVisible int `toml:"extra_visible"`
}

type GridConfig struct {
	ItemWidth    float64       `toml:"item_width"`
	ItemHeight   float64       `toml:"item_height"`
	HSpacing     float64       `toml:"h_spacing"`
	VSpacing     float64       `toml:"v_spacing"`
	Align        cv.Alignment  `toml:"align"`
	LastRowAlign *cv.Alignment `toml:"last_row_align"`
}

type PagerConfig struct {
	Loop              bool          `toml:"loop"`
	Multiplier        int           `toml:"multiplier"`
	Paging            bool          `toml:"paging"`
	AnimationDuration time.Duration `toml:"animation_duration"`
}

// DefaultConfig returns a 1000-row table at 30 frames per second, sized
// in terminal cells.
func DefaultConfig() Config {
	ctrl := cv.DefaultConfig()
	ctrl.AutoReloadOnSizeChange = true
	return Config{
		Layout:     "table",
		Items:      1000,
		FPS:        30,
		Controller: ctrl,
		Table: TableConfig{
			RowHeight:    3,
			HeaderHeight: 1,
			PinHeaders:   true,
			SectionSize:  50,
		},
		Grid: GridConfig{
			ItemWidth:  18,
			ItemHeight: 5,
			HSpacing:   1,
			VSpacing:   1,
			Align:      cv.AlignCenter,
		},
		Pager: PagerConfig{
			Loop:              true,
			Multiplier:        5,
			Paging:            true,
			AnimationDuration: 300 * time.Millisecond,
		},
	}
}

// LoadConfig decodes path over DefaultConfig. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("termhost: load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("termhost: load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// FrameInterval is the tick period for FPS, defaulting to 30 frames per
// second.
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FPS)
}

// ControllerConfig returns the controller tunables with the scroll
// direction matching the layout.
func (c Config) ControllerConfig() cv.Config {
	cfg := c.Controller
	if c.Layout == "pager" {
		cfg.Direction = cv.Horizontal
	} else {
		cfg.Direction = cv.Vertical
	}
	return cfg
}

// BuildLayout creates the configured layout.
func (c Config) BuildLayout() (cv.Layout, error) {
	switch c.Layout {
	case "table", "":
		t := c.Table
		return cv.NewTableLayout().
			RowHeight(t.RowHeight).
			Spacing(t.Spacing).
			Insets(t.InsetTop, t.InsetBottom).
			HeaderHeight(t.HeaderHeight).
			FooterHeight(t.FooterHeight).
			PinHeaders(t.PinHeaders).
			PinFooters(t.PinFooters).
			ExtraVisible(t.ExtraVisible), nil
	case "grid":
		g := c.Grid
		l := cv.NewGridLayout().
			ItemSize(cv.Size{Width: g.ItemWidth, Height: g.ItemHeight}).
			Spacing(g.HSpacing, g.VSpacing).
			Align(g.Align)
		if g.LastRowAlign != nil {
			l.AlignLastRow(*g.LastRowAlign)
		}
		return l, nil
	case "pager":
		p := c.Pager
		return cv.NewPagerLayout().
			Loop(p.Loop).
			Multiplier(p.Multiplier).
			Paging(p.Paging).
			AnimationDuration(p.AnimationDuration), nil
	}
	return nil, fmt.Errorf("termhost: unknown layout %q", c.Layout)
}
