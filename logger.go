package collectionview

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "collectionview",
	Level:  log.WarnLevel,
})

// SetLogger replaces the package logger used by controllers created
// afterwards. Passing nil is a no-op.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the package logger.
func Logger() *log.Logger { return logger }

// warnDirection records a policy warning for a layout asked to scroll along
// an axis it does not support.
func warnDirection(ctx Context, layout string, supported Direction) {
	if ctx.Direction() == supported {
		return
	}
	ctx.Logger().Warn("unsupported scroll direction, falling back",
		"layout", layout, "requested", ctx.Direction(), "using", supported)
}

func warnSections(ctx Context, layout string) {
	if n := ctx.Sections(); n > 1 {
		ctx.Logger().Warn("multiple sections not supported, using section 0",
			"layout", layout, "sections", n)
	}
}
