// Package musiclibrary is a small data-access layer over a relational
// database for album records. Open a Library, read albums through
// Library.Albums, and Close it when done.
package musiclibrary
