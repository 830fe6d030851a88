package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry resolves key names to actions per UI scope, falling back to
// the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
	// isolated scopes own a text input and never fall back to global keys.
	isolated map[string]bool
}

const (
	scopeGlobal     = "global"
	scopePicker     = "picker"
	scopePickerPath = "picker_path"
	scopeTable      = "table"
	scopeSearch     = "search"
)

const (
	actionQuit        Action = "quit"
	actionNavigate    Action = "navigate"
	actionUp          Action = "up"
	actionDown        Action = "down"
	actionLeft        Action = "left"
	actionRight       Action = "right"
	actionPageUp      Action = "page_up"
	actionPageDown    Action = "page_down"
	actionTop         Action = "top"
	actionBottom      Action = "bottom"
	actionRowStart    Action = "row_start"
	actionRowEnd      Action = "row_end"
	actionSelect      Action = "select"
	actionCopy        Action = "copy"
	actionSearch      Action = "search"
	actionClearSearch Action = "clear_search"
	actionCommit      Action = "commit"
	actionNextMatch   Action = "next_match"
	actionPrevMatch   Action = "prev_match"
	actionOpen        Action = "open"
	actionReload      Action = "reload"
	actionHelp        Action = "help"
	actionTogglePath  Action = "toggle_path"
	actionBack        Action = "back"
	actionRefresh     Action = "refresh"
)

// NewKeyRegistry returns the default bindings.
func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
		isolated:        map[string]bool{scopePickerPath: true, scopeSearch: true},
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePicker, actionNavigate, []string{"j/k", "up", "down", "j", "k"}, "navigate")
	reg(scopePicker, actionSelect, []string{"enter"}, "open")
	reg(scopePicker, actionTogglePath, []string{"tab"}, "type path")
	reg(scopePicker, actionRefresh, []string{"ctrl+r"}, "rescan")
	reg(scopePicker, actionBack, []string{"esc"}, "back")
	reg(scopePicker, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePickerPath, actionSelect, []string{"enter"}, "open")
	reg(scopePickerPath, actionTogglePath, []string{"tab"}, "file list")
	reg(scopePickerPath, actionBack, []string{"esc"}, "cancel")
	reg(scopePickerPath, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeTable, actionUp, []string{"up", "k"}, "up")
	reg(scopeTable, actionDown, []string{"down", "j"}, "down")
	reg(scopeTable, actionLeft, []string{"left", "h"}, "left")
	reg(scopeTable, actionRight, []string{"right", "l"}, "right")
	reg(scopeTable, actionPageUp, []string{"pgup", "ctrl+u"}, "page up")
	reg(scopeTable, actionPageDown, []string{"pgdown", "ctrl+d"}, "page down")
	reg(scopeTable, actionTop, []string{"g"}, "top")
	reg(scopeTable, actionBottom, []string{"G"}, "bottom")
	reg(scopeTable, actionRowStart, []string{"home", "0"}, "row start")
	reg(scopeTable, actionRowEnd, []string{"end", "$"}, "row end")
	reg(scopeTable, actionCopy, []string{"enter", "y"}, "copy")
	reg(scopeTable, actionSearch, []string{"/"}, "search")
	reg(scopeTable, actionNextMatch, []string{"n"}, "next match")
	reg(scopeTable, actionPrevMatch, []string{"N"}, "prev match")
	reg(scopeTable, actionClearSearch, []string{"esc"}, "clear")
	reg(scopeTable, actionOpen, []string{"o"}, "open file")
	reg(scopeTable, actionReload, []string{"ctrl+r"}, "reload")
	reg(scopeTable, actionHelp, []string{"?"}, "help")
	reg(scopeTable, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeSearch, actionCommit, []string{"enter"}, "done")
	reg(scopeSearch, actionClearSearch, []string{"esc"}, "clear")
	reg(scopeSearch, actionQuit, []string{"ctrl+c"}, "quit")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup finds the binding for keyName in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal && !r.isolated[scope] {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// HelpBindings converts a scope to bubbles key bindings for the footer and
// the full help view.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		// Single runes keep their case so n and N can differ.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}
