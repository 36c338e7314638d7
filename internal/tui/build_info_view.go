// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pin-guard/models"
)

// renderBuildInfoWindow shows the build metadata together with the user the
// lock screen protects.
func renderBuildInfoWindow(info models.AppBuildInfo, userID string) string {
	rows := [][2]string{
		{"Приложение", "PinGuard"},
		{"Версия", info.Version},
		{"Дата сборки", info.Date},
		{"Коммит", info.Commit},
		{"Пользователь", userID},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-13s %s", row[0]+":", orNA(row[1]))
	}

	return renderPage("PINGUARD · О ПРОГРАММЕ", b.String(), helpLine(bindings{keys.esc}))
}

func orNA(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "N/A"
	}
	return v
}
