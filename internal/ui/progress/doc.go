// Package progress shows activity on stderr while ignix fetches from the
// registry or writes files.
//
// [Spinner] is for operations of unknown length (fetching the index),
// [Bar] for a known number of steps (writing component files). Both run
// a Bubbletea program in the background and are safe to update from the
// goroutine doing the work.
package progress
