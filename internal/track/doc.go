// Package track holds the shared data model for recorded work: individual
// work entries, learned project mappings, and the application state that
// ties them together. Everything here is plain in-memory data; persistence
// lives in internal/store and rendering in internal/report.
package track
