// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tree implements the card tree store: the single source of truth
// for the active project's card forest.
//
// The store owns all mutations (create, message append/patch, cascading
// delete) and the one query everything downstream consumes, PathToRoot.
// Layout and navigation classification are pure read-only consumers of its
// snapshots.
//
// Expected races (a stale card id arriving from a superseded animation or
// an aborted stream) are no-ops with a logged warning, never errors; only
// genuine corruption of the forest surfaces as ErrCorruptTree.
package tree
