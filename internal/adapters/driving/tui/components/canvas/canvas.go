// Package canvas renders a PDF page as a character grid with a movable cursor.
//
// The grid stands in for the on-screen page box: a cell is one unit wide and
// one unit tall, so the box handed to the editor is {0, 0, cols, rows} and a
// click lands at the centre of the cursor cell. Terminal cells are roughly
// twice as tall as they are wide, so rows are halved to keep the page aspect.
package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devkavach22/kavach-edit/internal/adapters/driving/tui/styles"
	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

const (
	minCols = 10
	maxCols = 96
	minRows = 4

	// chrome is the space taken by the border and header line.
	chromeWidth  = 2
	chromeHeight = 3
)

// letter is used to shape the grid until the page size is known.
var letter = domain.PageGeometry{WidthPoints: 612, HeightPoints: 792}

// Canvas shows one page with its annotations.
type Canvas struct {
	styles *styles.Styles

	page      int
	pageCount int
	geometry  domain.PageGeometry
	known     bool

	annotations []domain.Annotation
	selected    string
	pending     *domain.PendingPlacement

	cols, rows int
	col, row   int

	width  int
	height int
}

// NewCanvas creates a canvas showing page 1 of an empty document.
func NewCanvas(s *styles.Styles) *Canvas {
	if s == nil {
		s = styles.DefaultStyles()
	}
	c := &Canvas{
		styles:   s,
		page:     1,
		geometry: letter,
		width:    80,
		height:   24,
	}
	c.layout()
	return c
}

// SetDimensions sets the space available to the canvas, chrome included.
func (c *Canvas) SetDimensions(width, height int) {
	c.width = width
	c.height = height
	c.layout()
}

// SetPage shows a 1-based page. ok reports whether g is the page's real size.
func (c *Canvas) SetPage(page, pageCount int, g domain.PageGeometry, ok bool) {
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	c.page = page
	c.pageCount = pageCount
	c.known = ok && g.IsValid()
	if c.known {
		c.geometry = g
	} else {
		c.geometry = letter
	}
	c.layout()
}

// Page returns the visible 1-based page.
func (c *Canvas) Page() int {
	return c.page
}

// PageCount returns the number of pages in the document.
func (c *Canvas) PageCount() int {
	return c.pageCount
}

// SetAnnotations replaces the annotations drawn on the visible page.
// The selection is dropped when its annotation is gone.
func (c *Canvas) SetAnnotations(annotations []domain.Annotation) {
	c.annotations = annotations
	if c.selected != "" && c.indexOf(c.selected) < 0 {
		c.selected = ""
	}
}

// Annotations returns the annotations drawn on the visible page.
func (c *Canvas) Annotations() []domain.Annotation {
	return c.annotations
}

// SetPending marks the placement waiting for an image, or clears it with nil.
func (c *Canvas) SetPending(p *domain.PendingPlacement) {
	c.pending = p
}

// Select marks an annotation as selected and moves the cursor onto it.
func (c *Canvas) Select(id string) {
	i := c.indexOf(id)
	if i < 0 {
		c.selected = ""
		return
	}
	c.selected = id
	c.col, c.row = c.cellFor(c.annotations[i].XPercent, c.annotations[i].YPercent)
}

// Selected returns the selected annotation.
func (c *Canvas) Selected() (domain.Annotation, bool) {
	i := c.indexOf(c.selected)
	if i < 0 {
		return domain.Annotation{}, false
	}
	return c.annotations[i], true
}

// CycleSelection moves the selection by delta through the page's annotations
// in creation order, wrapping at both ends.
func (c *Canvas) CycleSelection(delta int) (domain.Annotation, bool) {
	n := len(c.annotations)
	if n == 0 {
		c.selected = ""
		return domain.Annotation{}, false
	}
	i := c.indexOf(c.selected)
	switch {
	case i < 0 && delta < 0:
		i = n - 1
	case i < 0:
		i = 0
	default:
		i = ((i+delta)%n + n) % n
	}
	c.Select(c.annotations[i].ID)
	return c.annotations[i], true
}

// AnnotationAtCursor returns the most recent annotation drawn in the cursor cell.
func (c *Canvas) AnnotationAtCursor() (domain.Annotation, bool) {
	for i := len(c.annotations) - 1; i >= 0; i-- {
		a := c.annotations[i]
		if col, row := c.cellFor(a.XPercent, a.YPercent); col == c.col && row == c.row {
			return a, true
		}
	}
	return domain.Annotation{}, false
}

// ClearSelection drops the selection.
func (c *Canvas) ClearSelection() {
	c.selected = ""
}

// MoveCursor moves the cursor by whole cells, staying on the page.
func (c *Canvas) MoveCursor(dx, dy int) {
	c.col = clamp(c.col+dx, 0, c.cols-1)
	c.row = clamp(c.row+dy, 0, c.rows-1)
}

// Cursor returns the cursor cell.
func (c *Canvas) Cursor() (col, row int) {
	return c.col, c.row
}

// Grid returns the grid size in cells.
func (c *Canvas) Grid() (cols, rows int) {
	return c.cols, c.rows
}

// Box returns the on-screen page box in cell units.
func (c *Canvas) Box() domain.BoundingBox {
	return domain.BoundingBox{Width: float64(c.cols), Height: float64(c.rows)}
}

// ClickPoint returns the centre of the cursor cell in the coordinates of Box.
func (c *Canvas) ClickPoint() (x, y float64) {
	return float64(c.col) + 0.5, float64(c.row) + 0.5
}

// CursorPercent returns the cursor position as page percentages.
func (c *Canvas) CursorPercent() (xp, yp float64) {
	x, y := c.ClickPoint()
	return x / float64(c.cols) * 100, y / float64(c.rows) * 100
}

// View renders the page header and grid.
func (c *Canvas) View() string {
	header := fmt.Sprintf("Page %d/%d", c.page, max(c.pageCount, 1))
	if c.known {
		header += fmt.Sprintf("  %.0fx%.0f pt", c.geometry.WidthPoints, c.geometry.HeightPoints)
	} else {
		header += "  size unknown"
	}

	markers := c.markers()
	pendingCol, pendingRow := -1, -1
	if c.pending != nil && c.pending.PageIndex == c.page {
		pendingCol, pendingRow = c.cellFor(c.pending.XPercent, c.pending.YPercent)
	}

	lines := make([]string, c.rows)
	for r := 0; r < c.rows; r++ {
		var b strings.Builder
		for col := 0; col < c.cols; col++ {
			b.WriteString(c.renderCell(col, r, markers, pendingCol, pendingRow))
		}
		lines[r] = b.String()
	}

	grid := c.styles.Border.Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, c.styles.Subtitle.Render(header), grid)
}

type marker struct {
	glyph    string
	selected bool
}

func (c *Canvas) markers() map[[2]int]marker {
	out := make(map[[2]int]marker, len(c.annotations))
	for _, a := range c.annotations {
		col, row := c.cellFor(a.XPercent, a.YPercent)
		cell := [2]int{col, row}
		// A selected marker wins over others sharing its cell.
		if m, ok := out[cell]; ok && m.selected {
			continue
		}
		out[cell] = marker{glyph: Glyph(a.Kind), selected: a.ID == c.selected}
	}
	return out
}

func (c *Canvas) renderCell(col, row int, markers map[[2]int]marker, pendingCol, pendingRow int) string {
	isCursor := col == c.col && row == c.row
	if m, ok := markers[[2]int{col, row}]; ok {
		switch {
		case isCursor, m.selected:
			return c.styles.MarkerSelected.Render(m.glyph)
		default:
			return c.styles.Marker.Render(m.glyph)
		}
	}
	if col == pendingCol && row == pendingRow {
		return c.styles.Pending.Render("?")
	}
	if isCursor {
		return c.styles.Cursor.Render("+")
	}
	return c.styles.Page.Render("·")
}

// Glyph returns the single-character marker for an annotation kind.
func Glyph(kind domain.AnnotationKind) string {
	switch kind {
	case domain.AnnotationText:
		return "T"
	case domain.AnnotationSignature:
		return "S"
	case domain.AnnotationImage:
		return "I"
	default:
		return "?"
	}
}

// cellFor maps page percentages onto a grid cell.
func (c *Canvas) cellFor(xp, yp float64) (col, row int) {
	col = clamp(int(math.Floor(xp/100*float64(c.cols))), 0, c.cols-1)
	row = clamp(int(math.Floor(yp/100*float64(c.rows))), 0, c.rows-1)
	return col, row
}

func (c *Canvas) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, a := range c.annotations {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// layout sizes the grid to the available space and page aspect, keeping the
// cursor in the same relative place.
func (c *Canvas) layout() {
	var xp, yp float64
	if c.cols > 0 && c.rows > 0 {
		xp, yp = c.CursorPercent()
	}

	ratio := c.geometry.HeightPoints / c.geometry.WidthPoints

	cols := clamp(c.width-chromeWidth, minCols, maxCols)
	rows := int(math.Round(float64(cols) * ratio / 2))
	maxRows := max(c.height-chromeHeight, minRows)
	if rows > maxRows {
		rows = maxRows
		cols = clamp(int(math.Round(float64(rows)*2/ratio)), minCols, maxCols)
	}
	c.cols = cols
	c.rows = max(rows, minRows)

	c.col, c.row = c.cellFor(xp, yp)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
