package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/breadsheet/internal/notify"
)

func (a *App) View() string {
	body := a.renderPicker()
	if a.state == stateTable && a.hasSheet {
		body = a.renderSearchLine() + "\n" + a.renderGrid()
	}
	view := a.placeWithFooter(a.renderHeader()+"\n"+body, a.renderStatus(), a.renderFooter(a.keys.HelpBindings(a.scope())))

	if a.showHelp && a.state == stateTable {
		modal := modalStyle.Render(titleStyle.Render("Keys") + "\n\n" + a.help.FullHelpView(a.fullHelp()))
		view = overlayCenter(view, modal, a.width, max(1, a.height-2))
	}
	if t, ok := a.toasts.Current(); ok {
		view = overlayTopRight(view, renderToast(t, a.toastWidth()), 1, 1, a.width, a.height)
	}
	return view
}

func (a *App) scope() string {
	switch {
	case a.state == stateTable && a.searching:
		return scopeSearch
	case a.state == stateTable:
		return scopeTable
	case a.pathFocus:
		return scopePickerPath
	default:
		return scopePicker
	}
}

func (a *App) resize() {
	a.resizeList()
	a.searchInput.Width = max(10, a.width-30)
	a.help.Width = a.width
	if a.hasSheet {
		a.ensureCursorVisible()
	}
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func (a *App) renderHeader() string {
	content := headerAppStyle.Render(appName)
	if a.hasSheet {
		rows, cols := a.table.Dims()
		content += "  " + headerFileStyle.Render(a.table.Name()) +
			"  " + headerMetaStyle.Render(fmt.Sprintf("%d rows × %d cols", rows, cols))
	}
	if a.width <= 0 {
		return headerBarStyle.Render(content)
	}
	return headerBarStyle.Width(a.width).MaxHeight(1).Render(content)
}

func (a *App) renderSearchLine() string {
	if a.searching {
		return a.searchInput.View()
	}
	q := strings.TrimSpace(a.searchInput.Value())
	if q == "" {
		return searchIdleStyle.Render("/ to search")
	}
	meta := fmt.Sprintf("%d matches", a.result.Matches)
	return searchPromptStyle.Render("/ ") + q + "  " + searchIdleStyle.Render(meta)
}

func (a *App) renderStatus() string {
	left := strings.ReplaceAll(a.status, "\n", " ")
	if a.loading && left == "" {
		left = "Loading..."
	}
	right := ""
	if a.state == stateTable && a.hasSheet {
		right = a.cursor.A1()
		if c := a.table.At(a.cursor); c != nil && c.NonEmpty {
			right += "  " + truncate(flatten(c.Text), 30)
		}
	}
	if a.width == 0 {
		if right != "" {
			left += "  " + right
		}
		return statusBarStyle.Render(left)
	}
	inner := a.width - statusBarStyle.GetHorizontalFrameSize()
	gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	line := left
	if gap >= 2 {
		line = left + strings.Repeat(" ", gap) + right
	}
	return statusBarStyle.Width(a.width).Render(truncate(line, inner))
}

func (a *App) renderFooter(bindings []key.Binding) string {
	// Every character carries the footer background.
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	limit := a.width - footerStyle.GetHorizontalFrameSize()
	var content string
	for _, binding := range bindings {
		h := binding.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		part := keyStyle.Render(h.Key) + space + descStyle.Render(h.Desc)
		next := part
		if content != "" {
			next = content + sep + part
		}
		if a.width > 0 && ansi.StringWidth(next) > limit {
			break
		}
		content = next
	}

	if a.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(content)
}

// fullHelp groups the table bindings into columns for the help overlay.
func (a *App) fullHelp() [][]key.Binding {
	all := a.keys.HelpBindings(scopeTable)
	const perColumn = 7
	var groups [][]key.Binding
	for len(all) > 0 {
		n := min(perColumn, len(all))
		groups = append(groups, all[:n])
		all = all[n:]
	}
	return groups
}

func (a *App) placeWithFooter(body, statusLine, footer string) string {
	if a.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := max(1, a.height-2)
	if lipgloss.Height(body) >= contentHeight {
		lines := splitLines(body)
		body = strings.Join(lines[:contentHeight], "\n")
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(a.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	// Full-width lines stop ghosting from previous frames.
	lines := splitLines(main)
	for i, line := range lines {
		lines[i] = padRight(line, a.width)
	}
	return strings.Join(lines, "\n") + "\n" + statusLine + "\n" + footer
}

// ---------------------------------------------------------------------------
// Toasts
// ---------------------------------------------------------------------------

func (a *App) toastWidth() int {
	if a.width == 0 {
		return 50
	}
	return max(16, min(50, a.width/2))
}

func renderToast(t notify.Toast, width int) string {
	style := toastSuccessStyle
	if t.Kind == notify.Error {
		style = toastErrorStyle
	}
	if t.Phase == notify.Hiding {
		style = style.Faint(true)
	}
	inner := max(1, width-style.GetHorizontalFrameSize())
	return style.Render(truncate(flatten(t.Message), inner))
}
