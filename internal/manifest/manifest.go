// Package manifest extracts version hints and framework names from
// ecosystem descriptor files. Every parser is best-effort: malformed or
// unreadable input yields an empty result, never an error — a missing
// signal must not abort stack inference.
package manifest

import "os"

// maxManifestSize bounds manifest reads; descriptors past this are ignored.
const maxManifestSize = 1024 * 1024

// readManifest reads the file at path, reporting false for missing,
// unreadable or oversized files.
func readManifest(path string) ([]byte, bool) {
	if path == "" {
		return nil, false
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxManifestSize {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// union merges framework sets into a new set.
func union(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

// Union merges framework sets into a new set without mutating any input.
func Union(sets ...map[string]bool) map[string]bool {
	return union(sets...)
}
