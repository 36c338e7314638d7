// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs one unlock session in the terminal UI on top of the device
// security services and closes the local storage when the session ends.
package client
