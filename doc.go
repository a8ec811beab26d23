// Package main provides the tidy-counts command-line interface.
//
// tidy-counts tidies the outputs of the camera-trap count aggregation runs.
// It removes repeated animal_counts columns from the hourly averages CSV and
// regroups the per-site period plots into a tree organized by category and
// period, so plots from different sites can be compared side by side.
//
// The main binary supports multiple subcommands:
//   - dedupe: Remove repeated animal_counts columns from a CSV file
//   - organize: Copy period plots from site/category into category/period
//   - count: Count the plots organize would copy, per site and period
//   - validate: Check an organized tree for misplaced or drifted copies
//   - seed: Generate a synthetic source tree of plots
//   - mount: Browse a source tree in the organized layout through FUSE
//
// The single-purpose binaries under cmd/ run one pass with fixed defaults.
package main
