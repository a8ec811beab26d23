// Package cmd provides the command-line interface implementation for tidy-counts.
//
// It uses the Cobra library for command structure; main executes the root
// command through Fang for styled help and error output.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, config loading and logging setup
//   - dedupe: Repeated CSV column removal (package columns)
//   - organize: Plot copying into a category/period tree (package organize)
//   - count: Per-site plot counts for a source tree
//   - validate: Consistency checks for an organized tree
//   - seed: Synthetic source tree generation
//   - mount: Read-only FUSE view of a source tree (package catview)
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Flags given on the command line
// win over values from the TOML config file, which win over the defaults.
package cmd
