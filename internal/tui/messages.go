package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/jask/breadsheet/internal/sheet"
)

type filesLoadedMsg struct {
	items []list.Item
	err   error
}

type sheetLoadedMsg struct {
	seq   int
	path  string
	sheet sheet.Sheet
	err   error
}

// searchDebounceMsg fires after the debounce interval; only the latest seq
// is applied.
type searchDebounceMsg struct {
	seq int
}

type toastExpireMsg struct {
	id string
}

type toastRemoveMsg struct {
	id string
}
