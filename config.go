package collectionview

import "fmt"

// Mode selects how elements are materialized.
type Mode uint8

const (
	// ModeRecycle binds elements for the visible range only and returns
	// off-screen ones to per-identifier pools.
	ModeRecycle Mode = iota
	// ModePreload materializes every element once, at a bounded rate per
	// frame, and hides off-screen ones by zeroing their opacity.
	ModePreload
)

func (m Mode) String() string {
	switch m {
	case ModeRecycle:
		return "recycle"
	case ModePreload:
		return "preload"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "recycle", "":
		*m = ModeRecycle
	case "preload":
		*m = ModePreload
	default:
		return fmt.Errorf("collectionview: unknown mode %q", b)
	}
	return nil
}

// Direction is the requested scroll axis. Layouts that support a single
// axis warn and fall back when asked for the other one.
type Direction uint8

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "vertical", "":
		*d = Vertical
	case "horizontal":
		*d = Horizontal
	default:
		return fmt.Errorf("collectionview: unknown direction %q", b)
	}
	return nil
}

// Config holds the controller's tunables.
type Config struct {
	Mode      Mode      `toml:"mode"`
	Direction Direction `toml:"direction"`

	// FrameInterval refreshes visible elements every N frames while
	// scrolling. Values <= 1 refresh every frame.
	FrameInterval int `toml:"frame_interval"`

	// RecycleInterval reclaims invisible elements every N frames while
	// scrolling. 0 reclaims only on touch release and scroll settle.
	RecycleInterval int `toml:"recycle_interval"`

	// PreloadLimitPerFrame bounds preload-mode materialization per frame.
	PreloadLimitPerFrame int `toml:"preload_limit_per_frame"`

	AutoReloadOnSizeChange bool `toml:"auto_reload_on_size_change"`
	ScrollEnabled          bool `toml:"scroll_enabled"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Mode:                 ModeRecycle,
		Direction:            Vertical,
		FrameInterval:        1,
		RecycleInterval:      1,
		PreloadLimitPerFrame: 2,
		ScrollEnabled:        true,
	}
}
