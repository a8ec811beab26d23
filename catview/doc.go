// Package catview serves a source tree through FUSE in the organized
// category/period/site_file layout without copying anything.
//
// The layout is computed once, when the filesystem is created, by planning an
// organize run over the source directory. Directories are synthesized; file
// reads go straight to the source plot. The view is read-only.
package catview
