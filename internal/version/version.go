/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version provides version information.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current version of trecs.
// This is set at build time via ldflags:
//
//	-X github.com/friendsincode/trecs/internal/version.Version=X.Y.Z
var Version = "0.3.0"

// String returns the version line printed by the CLI.
func String() string {
	return fmt.Sprintf("trecs %s (%s, %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
