package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// popupChrome is the border and padding around popup text, in lines
const popupChrome = 4

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centres content in a bordered box filling the screen, showing
// the lines from scrollOffset that fit
func (pr *PopupRenderer) RenderPopup(content string, scrollOffset, width, height int) string {
	if width <= 0 {
		width = defaultTermWidth
	}
	if height <= 0 {
		height = defaultTermHeight
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	visibleHeight := VisiblePopupLines(height)
	totalLines := len(lines)

	if totalLines > visibleHeight {
		scrollOffset = ClampPopupScroll(content, scrollOffset, height)
		endLine := scrollOffset + visibleHeight
		if endLine > totalLines {
			endLine = totalLines
		}
		lines = append([]string(nil), lines[scrollOffset:endLine]...)

		// Add scroll indicators
		if scrollOffset > 0 {
			lines[0] = pr.styles.Scroll.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = pr.styles.Scroll.Render("↓ (more below)")
		}
	}
	lines = append(lines, "", pr.styles.Help.Render("esc to close"))

	popup := pr.styles.Popup.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

// VisiblePopupLines is how many content lines fit in a popup on a screen of height
func VisiblePopupLines(height int) int {
	visible := height - popupChrome - 2 // close hint and its spacer
	if visible < 5 {
		visible = 5
	}
	return visible
}

// ClampPopupScroll keeps scrollOffset within the content
func ClampPopupScroll(content string, scrollOffset, height int) int {
	total := len(strings.Split(strings.TrimRight(content, "\n"), "\n"))
	maxOffset := total - VisiblePopupLines(height)
	if maxOffset < 0 {
		maxOffset = 0
	}
	if scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	return scrollOffset
}
