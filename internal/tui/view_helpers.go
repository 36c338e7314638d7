package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pin-guard/internal/service"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(hotKeys)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: выход"))

	return appStyle.Render(b.String())
}

// pinDots renders n filled positions out of the PIN length.
func pinDots(n int) string {
	dots := make([]string, 0, service.PinLength)
	for i := range service.PinLength {
		if i < n {
			dots = append(dots, dotFilledStyle.Render("●"))
		} else {
			dots = append(dots, dotEmptyStyle.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}

// formatCountdown renders d as mm:ss, rounding up to the next second.
func formatCountdown(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
