// Package repository provides read-only repositories built on Bun: a generic
// base over any bun model and the album repository.
package repository
