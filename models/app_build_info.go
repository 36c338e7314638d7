// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// AppBuildInfo is the release metadata injected into cmd/client with
// -ldflags "-X main.buildVersion=..." and friends. Empty fields mean the
// binary was built without them.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Known reports whether any build field was injected.
func (a AppBuildInfo) Known() bool {
	return strings.TrimSpace(a.Version+a.Date+a.Commit) != ""
}
