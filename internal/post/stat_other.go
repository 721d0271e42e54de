//go:build !linux && !darwin && !freebsd

package post

import (
	"os"
	"time"
)

func createdTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
