package termhost

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	cv "github.com/568071718/creator-collection-view"
)

// CellIdentifier is the reuse identifier ListSource registers for cells.
const CellIdentifier = "text"

var (
	rowStyle    = Style{FG: lipgloss.Color("252"), BG: lipgloss.Color("236")}
	rowAltStyle = Style{FG: lipgloss.Color("252"), BG: lipgloss.Color("238")}
	headerStyle = Style{FG: lipgloss.Color("230"), BG: lipgloss.Color("62"), Bold: true}
	footerStyle = Style{FG: lipgloss.Color("245"), BG: lipgloss.Color("235")}
)

// ListSource serves string labels, optionally split into fixed-size
// sections, as TextElements.
type ListSource struct {
	sections [][]string
	center   bool
}

// NewListSource splits labels into sections of size rows. A size of zero
// or less keeps a single section.
func NewListSource(labels []string, size int) *ListSource {
	s := &ListSource{}
	if size <= 0 || size >= len(labels) {
		s.sections = [][]string{labels}
		return s
	}
	for start := 0; start < len(labels); start += size {
		s.sections = append(s.sections, labels[start:min(start+size, len(labels))])
	}
	return s
}

// Labels generates n item labels.
func Labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Item %d", i)
	}
	return out
}

// Centered draws labels centred, for grid and pager cells.
func (s *ListSource) Centered(on bool) *ListSource {
	s.center = on
	return s
}

// Register adds the makers for every identifier the source dequeues.
func (s *ListSource) Register(c *cv.Controller) {
	maker := func() cv.Element { return NewTextElement() }
	c.RegisterCell(CellIdentifier, maker).
		RegisterSupplementary(cv.KindHeader, maker).
		RegisterSupplementary(cv.KindFooter, maker)
}

func (s *ListSource) Sections() int { return len(s.sections) }

func (s *ListSource) Items(section int) int { return len(s.sections[section]) }

// Label returns the label shown at ip.
func (s *ListSource) Label(ip cv.IndexPath) string {
	if ip.Section < 0 || ip.Section >= len(s.sections) {
		return ""
	}
	items := s.sections[ip.Section]
	if ip.Item < 0 || ip.Item >= len(items) {
		return ""
	}
	return items[ip.Item]
}

// dataPath maps a looping pager's laid-out page back to the item it shows.
func dataPath(c *cv.Controller, ip cv.IndexPath) cv.IndexPath {
	if p, ok := c.Layout().(*cv.PagerLayout); ok {
		ip.Item = p.LogicalPage(ip.Item, c)
	}
	return ip
}

func (s *ListSource) CellFor(c *cv.Controller, ip cv.IndexPath) (cv.Element, error) {
	e, err := c.DequeueReusableCell(CellIdentifier, ip)
	if err != nil {
		return nil, err
	}
	t, ok := e.(*TextElement)
	if !ok {
		return nil, fmt.Errorf("termhost: unexpected cell type %T", e)
	}
	ip = dataPath(c, ip)
	t.Label = s.Label(ip)
	t.Center = s.center
	t.Style = rowStyle
	if ip.Item%2 == 1 {
		t.Style = rowAltStyle
	}
	return t, nil
}

func (s *ListSource) SupplementaryFor(c *cv.Controller, ip cv.IndexPath, kind string) (cv.Element, error) {
	e, err := c.DequeueReusableSupplementary(kind, ip)
	if err != nil {
		return nil, err
	}
	t, ok := e.(*TextElement)
	if !ok {
		return nil, fmt.Errorf("termhost: unexpected %s type %T", kind, e)
	}
	switch kind {
	case cv.KindHeader:
		t.Label = fmt.Sprintf("Section %d", ip.Section)
		t.Style = headerStyle
	case cv.KindFooter:
		t.Label = fmt.Sprintf("%d items", s.Items(ip.Section))
		t.Style = footerStyle
	}
	return t, nil
}
