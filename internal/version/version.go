// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // semantic version from git tags, e.g. "v1.2.3"
	GitCommit string // short git commit hash
	BuildTime string // build timestamp in RFC3339 format
}

// String renders the info for startup logs and the health endpoint.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	if i.GitCommit != "" {
		v += " (" + i.GitCommit + ")"
	}
	return v
}
