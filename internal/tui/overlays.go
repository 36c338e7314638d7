package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// confirmModel is a yes/no question drawn over the current page. The answer
// itself is handled by the page that opened it.
type confirmModel struct {
	message string
}

func (m confirmModel) View() string {
	answers := bindings{keys.yes, keys.no}
	return overlayBoxStyle.Render(m.message + "\n\n" + helpLine(answers))
}

var closeOverlay = key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "закрыть"))

// errorOverlayModel shows why the session ended in the error state. reason is
// a session reason or an error text; known reasons are translated.
type errorOverlayModel struct {
	reason string
}

func (m errorOverlayModel) View() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Не удалось проверить PIN"))
	b.WriteString("\n\n")
	b.WriteString(humanizeReason(m.reason))
	b.WriteString("\n\n")
	b.WriteString(helpLine(bindings{closeOverlay}))
	return overlayBoxStyle.Render(b.String())
}

// helpLine renders bindings as a single "key description" row.
func helpLine(bs bindings) string {
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "    ")
}
