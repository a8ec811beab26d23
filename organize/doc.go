// Package organize reorganizes rendered count plots by category and period.
//
// The source tree is laid out as site/object_category/file. Every file whose
// name matches one of the four fixed period patterns (hour, day, week, year)
// is copied to target/object_category/period/site_file. Target directories are
// created only when a file needs them and copies overwrite unconditionally,
// so re-running over the same source reproduces the same target tree.
//
// Any I/O error stops the pass immediately. Copies made before the failure
// are left in place.
package organize
