package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"shelfwise/internal/domain"
	"shelfwise/internal/paging"
)

const (
	maxCellWidth       = 40
	sidebarWidth       = 16
	collapsedBarWidth  = 3
	defaultTermWidth   = 80
	defaultTermHeight  = 24
	containerPaddingX  = 4
	containerPaddingY  = 2
	paginationPrevText = "‹ Prev"
	paginationNextText = "Next ›"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Resource         domain.Resource
	SidebarOpen      bool
	SidebarCollapsed bool

	SearchInput string // rendered text input
	Query       string

	Columns        []string
	Rows           [][]string
	StatusColumn   int
	Cursor         int
	ViewportOffset int
	ViewportHeight int

	CurrentPage int
	TotalPages  int
	WindowSize  int

	Loading       bool
	Spinner       string
	Err           string
	StatusMessage string
	HelpView      string

	Popup       string // shown instead of the table when set
	PopupScroll int
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = defaultTermWidth
	}
	height := state.Height
	if height <= 0 {
		height = defaultTermHeight
	}

	if state.Popup != "" {
		return r.popupRender.RenderPopup(state.Popup, state.PopupScroll, width, height)
	}

	var sidebar string
	if state.SidebarOpen {
		sidebar = r.RenderSidebar(state.Resource, state.SidebarCollapsed, height-containerPaddingY)
	}
	contentWidth := width - containerPaddingX - lipgloss.Width(sidebar)

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, contentWidth))
	content.WriteString("\n\n")
	content.WriteString(state.SearchInput)
	content.WriteString("\n\n")
	content.WriteString(r.RenderTable(state, contentWidth))
	if strip := r.RenderPagination(state.CurrentPage, state.TotalPages, state.WindowSize); strip != "" {
		content.WriteString("\n")
		content.WriteString(strip)
	}
	content.WriteString("\n")
	content.WriteString(r.RenderStatus(state))

	// Push the help line to the bottom of the screen
	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		paddingNeeded := height - containerPaddingY - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	body := content.String()
	if sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}
	return r.styles.Main.MaxHeight(height).Render(body)
}

// renderTitle renders the logo with the resource and page summary right-aligned
func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("shelfwise")

	right := state.Resource.Title()
	if state.TotalPages > 0 {
		right = fmt.Sprintf("%s · page %d of %d", right, state.CurrentPage+1, state.TotalPages)
	}
	if q := strings.TrimSpace(state.Query); q != "" {
		right = fmt.Sprintf("%s  %s", right, r.styles.Query.Render(fmt.Sprintf("[%s]", q)))
	}
	right = r.styles.Dim.Render(right)

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// RenderSidebar lists the searchable resources with the active one highlighted.
// A collapsed sidebar shows initials only.
func (r *Renderer) RenderSidebar(active domain.Resource, collapsed bool, height int) string {
	lines := make([]string, 0, len(domain.Resources)+2)
	if !collapsed {
		lines = append(lines, r.styles.Dim.Render("Browse"), "")
	}
	for _, res := range domain.Resources {
		label := res.Title()
		if collapsed {
			label = label[:1]
		}
		style := r.styles.SidebarItem
		marker := "  "
		if res == active {
			style = r.styles.SidebarActive
			marker = "▸ "
		}
		if collapsed {
			marker = ""
		}
		lines = append(lines, style.Render(marker+label))
	}

	w := sidebarWidth
	if collapsed {
		w = collapsedBarWidth
	}
	style := r.styles.Sidebar.Width(w)
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderTable renders the visible slice of result rows under the column headers
func (r *Renderer) RenderTable(state ViewState, width int) string {
	if len(state.Columns) == 0 {
		return ""
	}

	start, end := visibleRange(len(state.Rows), state.ViewportOffset, state.ViewportHeight)
	visible := make([][]string, 0, end-start)
	for _, row := range state.Rows[start:end] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = ansi.Truncate(cell, maxCellWidth, "…")
		}
		visible = append(visible, cells)
	}
	cursor := state.Cursor - start

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Border).
		Headers(state.Columns...).
		Rows(visible...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.styles.Header
			case row == cursor:
				return r.styles.SelectionBg
			case col == state.StatusColumn && row >= 0 && row < len(visible) && col < len(visible[row]):
				return r.styles.Cell.Foreground(lipgloss.Color(GetStatusColor(visible[row][col])))
			default:
				return r.styles.Cell
			}
		})
	if width > 0 {
		t = t.Width(width)
	}

	out := t.Render()
	if start > 0 {
		out = r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", start)) + "\n" + out
	}
	if below := len(state.Rows) - end; below > 0 {
		out = out + "\n" + r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below))
	}
	return out
}

// RenderPagination renders the page strip, or nothing when there is a single page
func (r *Renderer) RenderPagination(current, total, windowSize int) string {
	if total <= 1 {
		return ""
	}
	current = paging.Clamp(current, total)

	prev := r.styles.PageDisabled.Render(paginationPrevText)
	if paging.HasPrev(current, total) {
		prev = r.styles.PageLink.Render(paginationPrevText)
	}
	next := r.styles.PageDisabled.Render(paginationNextText)
	if paging.HasNext(current, total) {
		next = r.styles.PageLink.Render(paginationNextText)
	}

	parts := []string{prev}
	for _, m := range paging.Window(current, total, windowSize) {
		switch {
		case m.Ellipsis:
			parts = append(parts, r.styles.Dim.Render(m.String()))
		case m.Page == current:
			parts = append(parts, r.styles.PageCurrent.Render("["+m.String()+"]"))
		default:
			parts = append(parts, r.styles.PageLink.Render(m.String()))
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}

// RenderStatus renders the line under the table: loading, error or result count
func (r *Renderer) RenderStatus(state ViewState) string {
	switch {
	case state.Loading:
		return r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Searching…"))
	case state.Err != "":
		return r.styles.StatusError.Render("✗ " + state.Err)
	case state.StatusMessage != "":
		return r.styles.Dim.Render(state.StatusMessage)
	case len(state.Rows) == 0:
		return r.styles.Dim.Render("No results")
	default:
		return r.styles.StatusSuccess.Render(fmt.Sprintf("%d on this page", len(state.Rows)))
	}
}

// visibleRange clamps the viewport to the available rows
func visibleRange(rows, offset, height int) (int, int) {
	if height <= 0 {
		height = rows
	}
	if offset < 0 {
		offset = 0
	}
	if offset > rows {
		offset = rows
	}
	end := offset + height
	if end > rows {
		end = rows
	}
	return offset, end
}
