//go:build !linux

package organize

import (
	"os"
	"time"
)

// accessTime falls back to the modification time where the platform stat
// layout is not handled.
func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
