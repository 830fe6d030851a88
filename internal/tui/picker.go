package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/breadsheet/internal/decode"
)

// ---------------------------------------------------------------------------
// File-picker item (implements list.Item)
// ---------------------------------------------------------------------------

type fileItem struct {
	name string
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.name }

type fileItemDelegate struct{}

func (d fileItemDelegate) Height() int                             { return 1 }
func (d fileItemDelegate) Spacing() int                            { return 0 }
func (d fileItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d fileItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(fileItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = cursorStyle.Render("> ")
	}
	fmt.Fprint(w, padRight(prefix+entry.name, m.Width()))
}

func newFileList() list.Model {
	l := list.New([]list.Item{}, fileItemDelegate{}, 0, 0)
	l.Title = "Open a spreadsheet"
	l.Styles.Title = titleStyle
	l.Styles.NoItems = lipgloss.NewStyle().Foreground(colorOverlay1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func (a *App) loadFilesCmd() tea.Cmd {
	dec, dir := a.decoder, a.dir
	return func() tea.Msg {
		names, err := dec.List(dir)
		if err != nil {
			return filesLoadedMsg{err: err}
		}
		items := make([]list.Item, 0, len(names))
		for _, n := range names {
			items = append(items, fileItem{name: n})
		}
		return filesLoadedMsg{items: items}
	}
}

func (a *App) handleFilesLoaded(msg filesLoadedMsg) tea.Cmd {
	if msg.err != nil {
		a.status = fmt.Sprintf("File scan error: %v", msg.err)
		return nil
	}
	a.listReady = true
	return a.fileList.SetItems(msg.items)
}

func (a *App) openPicker() tea.Cmd {
	a.state = statePicker
	a.showHelp = false
	a.listReady = false
	a.fileList.Select(0)
	return a.loadFilesCmd()
}

func (a *App) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if b := a.keys.Lookup(msg.String(), scopePicker); b != nil {
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionSelect:
			item, _ := a.fileList.SelectedItem().(fileItem)
			return a.loadSheetCmd(item.name)
		case actionTogglePath:
			a.pathFocus = true
			return a.pathInput.Focus()
		case actionRefresh:
			return a.loadFilesCmd()
		case actionBack:
			if a.hasSheet {
				a.state = stateTable
			}
			return nil
		}
	}
	var cmd tea.Cmd
	a.fileList, cmd = a.fileList.Update(msg)
	return cmd
}

func (a *App) handlePathKey(msg tea.KeyMsg) tea.Cmd {
	if b := a.keys.Lookup(msg.String(), scopePickerPath); b != nil {
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionSelect:
			return a.loadSheetCmd(strings.TrimSpace(a.pathInput.Value()))
		case actionTogglePath, actionBack:
			a.pathFocus = false
			a.pathInput.Blur()
			return nil
		}
	}
	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return cmd
}

func (a *App) renderPicker() string {
	var b strings.Builder
	if !a.listReady {
		b.WriteString(titleStyle.Render("Open a spreadsheet") + "\n\n")
		b.WriteString(helpDescStyle.Render("Scanning " + a.dir + "..."))
	} else if len(a.fileList.Items()) == 0 {
		b.WriteString(titleStyle.Render("Open a spreadsheet") + "\n\n")
		b.WriteString(helpDescStyle.Render(pickerEmptyMessage(a.decoder)))
	} else {
		b.WriteString(a.fileList.View())
	}
	b.WriteString("\n\n")
	if a.pathFocus {
		b.WriteString(a.pathInput.View())
	} else {
		b.WriteString(searchIdleStyle.Render("tab to type a path · accepts " + strings.Join(a.decoder.Extensions(), ", ")))
	}

	width := a.pickerWidth()
	box := listBoxStyle.Width(width).Render(b.String())
	if a.width == 0 {
		return box
	}
	return lipgloss.Place(a.width, lipgloss.Height(box), lipgloss.Center, lipgloss.Top, box)
}

func (a *App) pickerWidth() int {
	if a.width == 0 {
		return 60
	}
	return max(30, min(70, a.width-6))
}

func (a *App) resizeList() {
	if a.width == 0 || a.height == 0 {
		return
	}
	w := a.pickerWidth() - listBoxStyle.GetHorizontalFrameSize()
	a.fileList.SetWidth(w)
	a.fileList.SetHeight(max(3, min(14, a.height-10)))
	a.pathInput.Width = max(10, w-len(a.pathInput.Prompt)-1)
}

// pickerEmptyMessage is shown when the directory holds no openable file.
func pickerEmptyMessage(dec *decode.Decoder) string {
	return "No " + strings.Join(dec.Extensions(), "/") + " files here"
}
