package main

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
)

// cacheEntry is the .lgtab artifact cache record: the spec file's content
// hash at generation time plus the source it produced. A hash match means
// the spec hasn't changed since, so the (expensive) grammar/LALR build and
// code emission can be skipped entirely in favor of the bytes already on
// disk from last time.
type cacheEntry struct {
	SpecHash  string
	LexerSrc  []byte
	ParserSrc []byte
}

// cachePathFor returns the .lgtab sidecar path for a spec file.
func cachePathFor(specPath string) string {
	dir := filepath.Dir(specPath)
	base := filepath.Base(specPath)
	return filepath.Join(dir, "."+base+".lgtab")
}

func hashOf(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// readCacheEntry loads cachePath and returns its entry if present and its hash
// matches src's current content.
func readCacheEntry(cachePath string, src []byte) (cacheEntry, bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return cacheEntry{}, false
	}

	var entry cacheEntry
	if _, err := rezi.Dec(data, &entry); err != nil {
		return cacheEntry{}, false
	}
	if entry.SpecHash != hashOf(src) {
		return cacheEntry{}, false
	}
	return entry, true
}

// writeCacheEntry persists the generated source for src under cachePath,
// best-effort: a failure to write the cache never fails a generation run.
func writeCacheEntry(cachePath string, src, lexerSrc, parserSrc []byte) {
	entry := cacheEntry{SpecHash: hashOf(src), LexerSrc: lexerSrc, ParserSrc: parserSrc}
	data, err := rezi.Enc(entry)
	if err != nil {
		return
	}
	_ = atomicWriteFile(cachePath, data)
}
