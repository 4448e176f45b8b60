// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists projects in a local SQLite database.
//
// Each project's card forest is stored as a JSON document alongside
// queryable columns for listing and ordering, so the picker never has to
// decode full trees. Loads validate forest invariants before handing a
// project to the rest of the app; a corrupt row surfaces as an error
// instead of a half-broken tree.
package storage
