// Released under an MIT license. See LICENSE.

// Package cache remembers the executables found in PATH directories.
package cache

import (
	"os"
	"sort"
	"strings"
	"time"
)

type entry struct {
	modified time.Time
	names    []string
}

// T (cache) maps a directory to the executables it contains. A directory
// is rescanned when its modification time changes.
type T struct {
	executables map[string]entry
}

// New creates an empty cache.
func New() *T {
	return &T{executables: map[string]entry{}}
}

// Executables returns the names of the executable files in dirname.
func (c *T) Executables(dirname string) []string {
	stat, err := os.Stat(dirname)
	if err != nil || !stat.IsDir() {
		delete(c.executables, dirname)

		return nil
	}

	e, found := c.executables[dirname]
	if found && e.modified.Equal(stat.ModTime()) {
		return e.names
	}

	e = entry{modified: stat.ModTime(), names: scan(dirname)}
	c.executables[dirname] = e

	return e.names
}

// Programs returns the sorted, distinct executable names in the
// colon-separated path that start with prefix.
func (c *T) Programs(prefix, path string) []string {
	seen := map[string]struct{}{}
	names := []string{}

	for _, dirname := range strings.Split(path, ":") {
		if dirname == "" {
			continue
		}

		for _, name := range c.Executables(dirname) {
			if !strings.HasPrefix(name, prefix) {
				continue
			}

			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

func scan(dirname string) []string {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil
	}

	names := []string{}

	for _, e := range entries {
		// Follows symbolic links, which is how most of /usr/bin is populated.
		i, err := os.Stat(dirname + "/" + e.Name())
		if err != nil || i.IsDir() {
			continue
		}

		if i.Mode()&0o111 != 0 {
			names = append(names, e.Name())
		}
	}

	return names
}
