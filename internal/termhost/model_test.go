package termhost

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	cv "github.com/568071718/creator-collection-view"
)

func newTestModel(t *testing.T, cfg Config, items, w, h int) *Model {
	t.Helper()
	m, err := New(cfg, Labels(items), log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.Close)
	m.Viewport().SetClock(func() time.Time { return epoch })
	send(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

func send(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	return cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestModel_Table(t *testing.T) {
	m := newTestModel(t, DefaultConfig(), 100, 40, 12)

	if got := m.Controller().ReloadCount(); got != 1 {
		t.Fatalf("expected the deferred reload to run on first size, got %d reloads", got)
	}
	view := m.View()
	for _, want := range []string{"Section 0", "Item 0", "table"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	t.Run("arrow nudges", func(t *testing.T) {
		send(t, m, key(tea.KeyDown))
		if got := m.Viewport().ScrollOffset(); got != (cv.Point{Y: 1}) {
			t.Errorf("expected offset (0, 1), got %v", got)
		}
		send(t, m, key(tea.KeyUp))
		if got := m.Viewport().ScrollOffset(); got != (cv.Point{}) {
			t.Errorf("expected offset back at origin, got %v", got)
		}
	})

	t.Run("enter touches the centre", func(t *testing.T) {
		send(t, m, key(tea.KeyEnter))
		if m.status != "selected Item 1" {
			t.Errorf("expected status %q, got %q", "selected Item 1", m.status)
		}
	})

	t.Run("click on pinned header", func(t *testing.T) {
		send(t, m, tea.MouseMsg{X: 2, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
		if m.status != "header of section 0" {
			t.Errorf("expected status %q, got %q", "header of section 0", m.status)
		}
	})

	t.Run("end scrolls to last item", func(t *testing.T) {
		send(t, m, key(tea.KeyEnd))
		if !m.Viewport().Animating() {
			t.Fatal("expected an animated jump")
		}
		send(t, m, frameMsg(epoch.Add(time.Second)))
		if got := m.Viewport().ScrollOffset(); got != (cv.Point{Y: 292}) {
			t.Errorf("expected offset clamped to (0, 292), got %v", got)
		}
		view := m.View()
		for _, want := range []string{"Item 99", "Section 1"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected view to contain %q", want)
			}
		}
	})

	t.Run("quit", func(t *testing.T) {
		cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("expected a quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg")
		}
	})
}

func TestModel_ScrollDisabled(t *testing.T) {
	m := newTestModel(t, DefaultConfig(), 100, 40, 12)

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	send(t, m, key(tea.KeyDown))
	if got := m.Viewport().ScrollOffset(); got != (cv.Point{}) {
		t.Errorf("expected no movement with scrolling disabled, got %v", got)
	}
}

func TestModel_Pager(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = "pager"
	m := newTestModel(t, cfg, 3, 41, 12)

	if got := m.Viewport().ScrollOffset(); got != (cv.Point{X: 600}) {
		t.Fatalf("expected looping pager to start at (600, 0), got %v", got)
	}
	if !strings.Contains(m.View(), "Item 0") {
		t.Error("expected first page shown")
	}

	send(t, m, key(tea.KeyRight))
	send(t, m, frameMsg(epoch.Add(time.Second)))
	if got := m.Viewport().ScrollOffset(); got != (cv.Point{X: 640}) {
		t.Errorf("expected one page forward at (640, 0), got %v", got)
	}
	if !strings.Contains(m.View(), "Item 1") {
		t.Error("expected second page shown")
	}

	send(t, m, key(tea.KeyEnter))
	if m.status != "selected Item 1" {
		t.Errorf("expected looped page mapped to its item, got %q", m.status)
	}
}

func TestModel_Preload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controller.Mode = cv.ModePreload
	m := newTestModel(t, cfg, 20, 40, 12)

	send(t, m, frameMsg(epoch))
	if !strings.Contains(m.status, "preloading") {
		t.Errorf("expected preload progress in status, got %q", m.status)
	}
}

func TestModel_UnknownLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = "carousel"
	if _, err := New(cfg, Labels(3), log.New(io.Discard)); err == nil {
		t.Error("expected unknown layout to fail")
	}
}
