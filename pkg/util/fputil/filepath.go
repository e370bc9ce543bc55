package fputil

import (
	"os"
	"path/filepath"
)

const (
	touchFileName = ".touch"
	touchFileMode = os.FileMode(0600)
)

// IsWritableDir reports whether dir can be written to, by creating and
// removing a throwaway file in it. Used before committing to a log path so
// configuration errors surface at startup instead of on the first write.
func IsWritableDir(dir string) error {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	filename := filepath.Join(dir, touchFileName)
	if err := os.WriteFile(filename, []byte(""), touchFileMode); err != nil {
		return err
	}
	return os.Remove(filename)
}
