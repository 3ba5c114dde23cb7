// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

// Package config loads and validates application configuration.
//
// Configuration is layered with Koanf v2: built-in defaults first, then an
// optional YAML config file, then environment variables. Later layers win.
// The resulting Config is immutable after Load and safe for concurrent
// reads.
package config
