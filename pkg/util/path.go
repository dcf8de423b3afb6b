package util

import (
	"os"
)

// EnsureDirectoryExists creates directory if it doesn't exist
func EnsureDirectoryExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// try to create it
		err = os.MkdirAll(path, 0755)
		if err != nil {
			return false
		}
	}
	return true
}

// FileExceedsSize reports whether path exists as a regular file larger than
// minBytes. The transcript extractor uses this for its skip-if-exists
// policy so a tiny placeholder file doesn't count as done work.
func FileExceedsSize(path string, minBytes int64) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Size() > minBytes
}
