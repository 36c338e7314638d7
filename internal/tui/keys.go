package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	up        key.Binding
	down      key.Binding
	digit     key.Binding
	backspace key.Binding
	enter     key.Binding
	esc       key.Binding
	quit      key.Binding
	info      key.Binding

	// lock screen
	biometric key.Binding
	retry     key.Binding
	usePin    key.Binding

	// answers to a pending biometric challenge
	bioPass   key.Binding
	bioCancel key.Binding
	bioFail   key.Binding
	bioLock   key.Binding

	// offers and confirmations
	yes        key.Binding
	no         key.Binding
	later      key.Binding
	never      key.Binding
	disableAll key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "вверх")),
	down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "вниз")),
	digit:     key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "цифра")),
	backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "стереть")),
	enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "выбрать")),
	esc:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "отмена")),
	quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "выход")),
	info:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "о программе")),

	biometric: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "биометрия")),
	retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "повторить")),
	usePin:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "ввести PIN")),

	bioPass:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "распознать")),
	bioCancel: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "закрыть запрос")),
	bioFail:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "не распознано")),
	bioLock:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "блокировка ОС")),

	yes:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "да")),
	no:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "нет")),
	later:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "напомнить позже")),
	never:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "больше не показывать")),
	disableAll: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "отключить все")),
}

// bindings adapts a fixed set of bindings to help.KeyMap.
type bindings []key.Binding

var _ help.KeyMap = bindings(nil)

func (b bindings) ShortHelp() []key.Binding {
	return b
}

func (b bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}
