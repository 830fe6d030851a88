package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.alis.build/alog"

	"github.com/jask/breadsheet/internal/config"
	"github.com/jask/breadsheet/internal/decode"
	"github.com/jask/breadsheet/internal/notify"
	"github.com/jask/breadsheet/internal/search"
	"github.com/jask/breadsheet/internal/sheet"
	"github.com/jask/breadsheet/internal/table"
)

const appName = "Breadsheet"

// Deps are the collaborators the UI drives.
type Deps struct {
	Decoder   *decode.Decoder
	Clipboard table.Clipboard
	// Dir is scanned for the file picker and resolves relative paths.
	Dir string
	// Open is loaded on start when set.
	Open string
}

type appState string

const (
	statePicker appState = "picker"
	stateTable  appState = "table"
)

// App is the Bubble Tea model. It owns the table, the search state and the
// toast center; every event is handled on the Bubble Tea loop.
type App struct {
	ctx     context.Context
	cfg     config.Config
	keys    *KeyRegistry
	decoder *decode.Decoder
	toasts  *notify.Center
	table   *table.Table
	dir     string
	open    string

	state    appState
	path     string
	hasSheet bool
	loadSeq  int
	loading  bool
	status   string

	// picker
	fileList  list.Model
	pathInput textinput.Model
	pathFocus bool
	listReady bool

	// search
	searchInput textinput.Model
	searching   bool
	searchSeq   int
	result      search.Result
	matchIdx    int

	// grid viewport
	cursor sheet.Ref
	top    int
	left   int
	widths []int

	help     help.Model
	showHelp bool
	width    int
	height   int
}

// New builds the model. A nil decoder selects the configured default.
func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	dec := deps.Decoder
	if dec == nil {
		dec = decode.New(cfg.Files.AllowedExtensions, cfg.Files.MaxBytes)
	}
	dir := deps.Dir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	toasts := notify.NewCenter(ctx, cfg.Toast.Display, cfg.Toast.Fade)

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search..."
	si.PromptStyle = searchPromptStyle

	pi := textinput.New()
	pi.Prompt = "path: "
	pi.Placeholder = "data.xlsx"
	pi.PromptStyle = searchPromptStyle

	h := help.New()
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.FullKey = helpKeyStyle
	h.Styles.FullDesc = helpDescStyle

	return &App{
		ctx:         ctx,
		cfg:         cfg,
		keys:        NewKeyRegistry(),
		decoder:     dec,
		toasts:      toasts,
		table:       table.New(deps.Clipboard, toasts),
		dir:         dir,
		open:        deps.Open,
		state:       statePicker,
		fileList:    newFileList(),
		pathInput:   pi,
		searchInput: si,
		help:        h,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadFilesCmd()}
	if a.open != "" {
		cmds = append(cmds, a.loadSheetCmd(a.open))
	}
	return tea.Batch(cmds...)
}

// Update dispatches msg and schedules timers for any toast it raised.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.toastCmds())
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resize()
		return nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		return a.handleMouse(m)
	case filesLoadedMsg:
		return a.handleFilesLoaded(m)
	case sheetLoadedMsg:
		return a.handleSheetLoaded(m)
	case searchDebounceMsg:
		if m.seq == a.searchSeq && a.hasSheet {
			a.applySearch(a.searchInput.Value())
		}
		return nil
	case toastExpireMsg:
		if a.toasts.Expire(m.id) {
			if a.toasts.Fade == 0 {
				a.toasts.Remove(m.id)
				return nil
			}
			return tea.Tick(a.toasts.Fade, func(time.Time) tea.Msg { return toastRemoveMsg{id: m.id} })
		}
		return nil
	case toastRemoveMsg:
		a.toasts.Remove(m.id)
		return nil
	}

	// Cursor blink and other component messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if a.searching {
		a.searchInput, cmd = a.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.pathFocus {
		a.pathInput, cmd = a.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state {
	case stateTable:
		if a.searching {
			return a.handleSearchKey(msg)
		}
		return a.handleTableKey(msg)
	default:
		if a.pathFocus {
			return a.handlePathKey(msg)
		}
		return a.handlePickerKey(msg)
	}
}

// toastCmds arms the display timer of every toast raised since the last call.
func (a *App) toastCmds() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range a.toasts.Drain() {
		id := t.ID
		cmds = append(cmds, tea.Tick(a.toasts.Display, func(time.Time) tea.Msg {
			return toastExpireMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (a *App) notifyError(msg string) {
	a.toasts.Notify(notify.Error, msg)
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

func (a *App) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.dir, path)
}

// loadSheetCmd validates path and returns the async decode. Invalid names are
// reported at once and nothing is read.
func (a *App) loadSheetCmd(path string) tea.Cmd {
	if err := a.decoder.Check(path); err != nil {
		alog.Warnf(a.ctx, "rejected %q: %v", path, err)
		a.notifyError(decode.Message(err))
		return nil
	}
	full := a.resolve(path)
	a.loadSeq++
	a.loading = true
	a.status = fmt.Sprintf("Loading %s...", filepath.Base(full))

	seq, ctx, dec := a.loadSeq, a.ctx, a.decoder
	return func() tea.Msg {
		s, err := dec.Load(ctx, full)
		return sheetLoadedMsg{seq: seq, path: full, sheet: s, err: err}
	}
}

func (a *App) handleSheetLoaded(msg sheetLoadedMsg) tea.Cmd {
	if msg.seq != a.loadSeq {
		return nil
	}
	a.loading = false
	if msg.err != nil {
		alog.Errorf(a.ctx, "load %s: %v", msg.path, msg.err)
		a.status = ""
		a.notifyError(decode.Message(msg.err))
		return nil
	}

	a.table.Render(msg.sheet)
	a.path = msg.path
	a.hasSheet = true
	a.state = stateTable
	a.pathFocus = false
	a.pathInput.Blur()

	a.searchInput.Reset()
	a.searchInput.Blur()
	a.searching = false
	a.searchSeq++
	a.result = search.Result{}
	a.matchIdx = 0

	a.cursor = sheet.Ref{}
	a.top, a.left = 0, 0
	a.widths = columnWidths(a.table, a.cfg.UI.MaxColumnWidth)

	rows, cols := a.table.Dims()
	a.status = fmt.Sprintf("Loaded %s (%d x %d)", msg.sheet.Name, rows, cols)
	return nil
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if b := a.keys.Lookup(msg.String(), scopeSearch); b != nil {
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionCommit:
			a.searching = false
			a.searchInput.Blur()
			a.searchSeq++
			a.applySearch(a.searchInput.Value())
			return nil
		case actionClearSearch:
			a.clearSearch()
			return nil
		}
	}

	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, a.scheduleSearch())
}

// scheduleSearch debounces input changes.
func (a *App) scheduleSearch() tea.Cmd {
	a.searchSeq++
	if a.cfg.Search.Debounce <= 0 {
		a.applySearch(a.searchInput.Value())
		return nil
	}
	seq := a.searchSeq
	return tea.Tick(a.cfg.Search.Debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// clearSearch empties the query and applies it without waiting.
func (a *App) clearSearch() {
	a.searching = false
	a.searchInput.Blur()
	a.searchInput.Reset()
	a.searchSeq++
	a.applySearch("")
}

func (a *App) applySearch(q string) {
	res := search.Apply(a.table, q)
	a.result = res
	a.matchIdx = 0

	switch {
	case res.Cleared():
		a.status = ""
		if a.cfg.UI.ScrollTopOnClear {
			a.cursor = sheet.Ref{}
			a.top, a.left = 0, 0
		}
	case res.First == nil:
		a.status = fmt.Sprintf("No matches for %q", res.Query)
		if hint := search.Suggest(a.table, q); hint != "" {
			a.status += fmt.Sprintf(", closest: %q", truncate(hint, 30))
		}
	default:
		a.status = fmt.Sprintf("%d matches for %q", res.Matches, res.Query)
		a.scrollToMatch(res.First.Ref)
	}
	alog.Debugf(a.ctx, "search %q: %d matches", res.Query, res.Matches)
}

// stepMatch moves the cursor to the next (dir > 0) or previous match.
func (a *App) stepMatch(dir int) {
	matches := search.Matches(a.table)
	if len(matches) == 0 {
		return
	}
	a.matchIdx = (a.matchIdx + dir + len(matches)) % len(matches)
	a.scrollToMatch(matches[a.matchIdx].Ref)
	a.status = fmt.Sprintf("match %d of %d for %q", a.matchIdx+1, len(matches), a.result.Query)
}
