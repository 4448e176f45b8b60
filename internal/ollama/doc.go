// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is the HTTP client for a local Ollama server.
//
// Chat responses stream as newline-delimited JSON; the reader surfaces each
// chunk through a callback (or channel) and honors context cancellation, so
// the UI can abort a generation mid-stream by cancelling the request
// context. Card title generation uses the non-streaming generate endpoint
// behind a rate limiter, since titles are regenerated opportunistically as
// conversations grow.
package ollama
