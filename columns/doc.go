// Package columns removes repeated CSV columns that share a name.
//
// The pass reads the header once, computes which column positions to keep
// (every column, except later copies of the deduplicated name) and then
// projects each data row onto those positions, preserving row order. Output
// is written as it is produced; a failure part way through leaves the rows
// written so far on disk.
package columns
