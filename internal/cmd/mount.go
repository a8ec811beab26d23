package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/tidy-counts/catview"
	"github.com/dendrascience/tidy-counts/organize"
	"github.com/dendrascience/tidy-counts/version"
)

// NewMountCmd creates and returns the mount subcommand.
// It mounts a read-only organized view of a source tree.
func NewMountCmd(g *globals) *cobra.Command {
	var firstMatch bool

	cmd := &cobra.Command{
		Use:   "mount SOURCE MOUNTPOINT",
		Short: "Mount a read-only category/period view of a source tree",
		Long: `Mount a read-only view of SOURCE laid out the way organize would copy it.

SOURCE is a SITE/CATEGORY/FILE tree of count plots.
MOUNTPOINT is the directory where the view will be mounted.
The layout is computed at mount time; remount to pick up new plots.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(g.log, args[0], args[1], matchPolicy(cmd, g.cfg.Organize, firstMatch))
		},
	}

	cmd.Flags().BoolVar(&firstMatch, "first-match", false, "List a file only under its first matching period")

	return cmd
}

// pathsOverlap reports whether either path contains the other.
func pathsOverlap(a, b string) bool {
	absA, err := filepath.Abs(a)
	if err != nil {
		absA = filepath.Clean(a)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		absB = filepath.Clean(b)
	}
	if absA == absB {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(absA, absB+sep) || strings.HasPrefix(absB, absA+sep)
}

func runMount(log *logrus.Logger, source, mountpoint string, policy organize.MatchPolicy) error {
	if pathsOverlap(source, mountpoint) {
		return fmt.Errorf("source %s and mountpoint %s overlap", source, mountpoint)
	}

	view, err := catview.NewFS(source, policy)
	if err != nil {
		return fmt.Errorf("failed to build view of %s: %w", source, err)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("tidy-counts"),
		fuse.Subtype("catview"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		log.Info("Received interrupt signal, unmounting...")
		if err := fuse.Unmount(mountpoint); err != nil {
			log.WithError(err).Error("unmount failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"version":    version.GetVersion(),
		"source":     source,
		"mountpoint": mountpoint,
	}).Info("view mounted")
	if err := fs.Serve(c, view); err != nil {
		return err
	}
	log.Info("Shutdown complete")
	return nil
}
