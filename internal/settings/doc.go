// Package settings patches the host settings document shared with Claude Code.
//
// The document is always handled whole, as a generic JSON object. Only two
// fields are owned here: statusLine and hooks. Every other field round-trips
// untouched, and a document that ends up empty is deleted rather than written.
package settings
