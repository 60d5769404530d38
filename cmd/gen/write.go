package main

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// atomicWriteFile writes data to a uniquely-named temp file in path's
// directory, then renames it into place, so a reader never observes a
// partially-written output file.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
