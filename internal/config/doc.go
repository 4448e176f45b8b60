// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and manages cardstack configuration.
//
// Configuration lives in ~/.cardstack/config.toml with built-in defaults
// for every field and CARDSTACK_* environment overrides on top. A watcher
// built on fsnotify re-reads the file on change so edits apply to a running
// session without a restart.
package config
