// Package ui renders the terminal output of the divelink CLI: styled
// headers and listings, and a live progress meter for memory dumps.
//
// The progress meter is a Bubble Tea program fed from the download
// goroutine through Program.Send, so the session layer stays free of any
// terminal concerns. On a non-TTY stdout the meter degrades to nothing and
// the CLI falls back to plain logging.
package ui
