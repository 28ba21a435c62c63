// Package settings provides the Claude Code permission document model for
// permkit. It handles loading, merging, and emitting settings.json-shaped
// documents while preserving fields it does not understand.
//
// The package supports:
//   - Parsing permission documents with opaque pass-through of unknown fields
//   - Order-preserving deduplication of permission pattern lists
//   - Merging the allow/deny lists of several documents onto the first
//   - Building a fresh document from an extracted pattern list
//   - Rendering documents as indented or compact JSON
package settings
