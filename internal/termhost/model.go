package termhost

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	cv "github.com/568071718/creator-collection-view"
)

var statusStyle = Style{FG: lipgloss.Color("250"), BG: lipgloss.Color("237")}

const jumpDuration = 300 * time.Millisecond

type frameMsg time.Time

// Model is the bubbletea model hosting one collection view. The last two
// terminal rows hold the horizontal scrollbar and a status line, and the
// last column holds the vertical scrollbar.
type Model struct {
	cfg    Config
	ctrl   *cv.Controller
	vp     *Viewport
	source *ListSource
	canvas *Canvas
	log    *log.Logger

	width, height int
	status        string
	err           error
}

// New builds the layout, viewport and controller described by cfg over
// labels. The first reload is deferred until the terminal size is known.
func New(cfg Config, labels []string, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = log.Default()
	}
	layout, err := cfg.BuildLayout()
	if err != nil {
		return nil, err
	}

	sectionSize := 0
	if cfg.Layout == "table" || cfg.Layout == "" {
		sectionSize = cfg.Table.SectionSize
	}
	src := NewListSource(labels, sectionSize).Centered(cfg.Layout == "grid" || cfg.Layout == "pager")

	vp := NewViewport(0, 0).SetLogger(logger)
	ctrl := cv.NewController(vp, cfg.ControllerConfig()).
		SetLogger(logger).
		SetLayout(layout).
		SetDataSource(src)
	src.Register(ctrl)
	vp.SetListener(ctrl)

	m := &Model{
		cfg:    cfg,
		ctrl:   ctrl,
		vp:     vp,
		source: src,
		canvas: NewCanvas(0, 0),
		log:    logger,
	}
	ctrl.OnCellTouched(func(ip cv.IndexPath) {
		m.status = "selected " + src.Label(dataPath(ctrl, ip))
	}).OnSupplementaryTouched(func(ip cv.IndexPath, kind string) {
		m.status = fmt.Sprintf("%s of section %d", kind, ip.Section)
	}).OnPreloadProgress(func(current, total int) {
		m.status = fmt.Sprintf("preloading %d/%d", current, total)
	})

	if err := ctrl.ReloadData(); err != nil {
		return nil, err
	}
	return m, nil
}

// Controller returns the hosted controller.
func (m *Model) Controller() *cv.Controller { return m.ctrl }

// Viewport returns the hosted viewport.
func (m *Model) Viewport() *Viewport { return m.vp }

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error { return m.err }

// Close destroys every element the controller holds.
func (m *Model) Close() { m.ctrl.Destroy() }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		err error
		cmd tea.Cmd
	)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		err = m.resize(msg.Width, msg.Height)
	case frameMsg:
		if err = m.vp.Tick(time.Time(msg)); err == nil {
			err = m.ctrl.Update()
		}
		cmd = m.tick()
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		default:
			err = m.key(k)
		}
	case tea.MouseMsg:
		err = m.mouse(msg)
	}
	if err != nil {
		m.err = err
		m.log.Error("collection view stopped", "err", err)
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) resize(w, h int) error {
	m.width, m.height = w, h
	m.canvas.Resize(w, h)
	m.vp.SetSize(cv.Size{Width: float64(max(w-1, 1)), Height: float64(max(h-2, 1))})
	if !m.vp.Active() {
		m.vp.SetActive(true)
		return m.ctrl.Attach()
	}
	return m.ctrl.SizeChanged()
}

func (m *Model) key(k string) error {
	size := m.vp.Size()
	switch k {
	case "up", "k":
		return m.nudge(cv.Point{Y: -1})
	case "down", "j":
		return m.nudge(cv.Point{Y: 1})
	case "left", "h":
		return m.flick(cv.Point{X: size.Width})
	case "right", "l":
		return m.flick(cv.Point{X: -size.Width})
	case "pgup", "b":
		return m.flick(cv.Point{Y: size.Height * 2})
	case "pgdown", " ", "f":
		return m.flick(cv.Point{Y: -size.Height * 2})
	case "home", "g":
		return m.ctrl.ScrollTo(cv.IP(0, 0), jumpDuration, true)
	case "end", "G":
		if s := m.ctrl.Sections(); s > 0 && m.ctrl.Items(s-1) > 0 {
			return m.ctrl.ScrollTo(cv.IP(s-1, m.ctrl.Items(s-1)-1), jumpDuration, true)
		}
	case "enter":
		return m.touch(m.vp.ScrollOffset().Add(cv.Point{X: size.Width / 2, Y: size.Height / 2}))
	case "r":
		return m.ctrl.ReloadData()
	case "s":
		m.ctrl.SetScrollEnabled(!m.ctrl.ScrollEnabled())
	}
	return nil
}

func (m *Model) mouse(msg tea.MouseMsg) error {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.nudge(cv.Point{Y: -3})
	case msg.Button == tea.MouseButtonWheelDown:
		return m.nudge(cv.Point{Y: 3})
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		size := m.vp.Size()
		if float64(msg.X) >= size.Width || float64(msg.Y) >= size.Height {
			return nil
		}
		return m.touch(m.vp.ScrollOffset().Add(cv.Point{X: float64(msg.X) + 0.5, Y: float64(msg.Y) + 0.5}))
	}
	return nil
}

// nudge is a drag by delta followed by a release without momentum.
func (m *Model) nudge(delta cv.Point) error {
	if !m.ctrl.ScrollEnabled() {
		return nil
	}
	if err := m.vp.Drag(delta); err != nil {
		return err
	}
	return m.vp.Release(cv.Point{})
}

// flick is a zero-distance drag released with the given finger velocity.
func (m *Model) flick(velocity cv.Point) error {
	if !m.ctrl.ScrollEnabled() {
		return nil
	}
	if err := m.vp.Drag(cv.Point{}); err != nil {
		return err
	}
	return m.vp.Release(velocity)
}

func (m *Model) touch(p cv.Point) error {
	if e := m.vp.ContentNode().ElementAt(p); e != nil {
		m.ctrl.ElementTouched(e)
	}
	return nil
}

func (m *Model) statusLine() string {
	off := m.vp.ScrollOffset()
	total := 0
	for s := 0; s < m.ctrl.Sections(); s++ {
		total += m.ctrl.Items(s)
	}
	line := fmt.Sprintf(" %s · %d items · %s · offset %g,%g · %d visible",
		m.cfg.Layout, total, m.cfg.Controller.Mode, off.X, off.Y, len(m.ctrl.VisibleKeys()))
	if m.status != "" {
		line += " · " + m.status
	}
	return line
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := m.canvas
	c.Clear()

	off := m.vp.ScrollOffset()
	m.vp.ContentNode().Draw(c, off)

	size := m.vp.Size()
	content := m.vp.ContentNode().Size()
	vw, vh := int(size.Width), int(size.Height)
	c.FillRect(vw, 0, m.width-vw, m.height, emptyCell())
	c.FillRect(0, vh, m.width, m.height-vh, emptyCell())
	drawVScrollbar(c, vw, 0, vh, size.Height, content.Height, off.Y)
	drawHScrollbar(c, 0, vh, vw, size.Width, content.Width, off.X)

	c.FillRect(0, m.height-1, m.width, 1, Cell{Rune: ' ', Style: statusStyle})
	c.WriteString(0, m.height-1, ansi.Truncate(m.statusLine(), m.width, "…"), statusStyle)
	return c.Render()
}
