// Package model defines the bun models of the music library and registers
// them for table bootstrap.
package model
