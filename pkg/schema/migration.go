package schema

import (
	"path/filepath"
	"slices"
	"strings"
)

// Migration is one SQL file of a migrations directory.
type Migration struct {
	// Version identifies the migration in the ledger.
	Version string
	// Path is the location of the SQL file.
	Path string
}

// FromFiles turns paths of .sql files into migrations sorted by version.
// Files with other extensions are ignored. Version is the base name
// without the extension, so lexical order of file names is the order of
// application.
func FromFiles(paths []string) []Migration {
	res := make([]Migration, 0, len(paths))
	for _, v := range paths {
		base := filepath.Base(v)
		ext := filepath.Ext(base)
		if !strings.EqualFold(ext, ".sql") {
			continue
		}
		res = append(res, Migration{
			Version: strings.TrimSuffix(base, ext),
			Path:    v,
		})
	}
	slices.SortFunc(res, func(a, b Migration) int {
		return strings.Compare(a.Version, b.Version)
	})
	return res
}

// Pending returns migrations whose versions are not in applied, keeping
// the order of all.
func Pending(all []Migration, applied []string) []Migration {
	done := make(map[string]struct{}, len(applied))
	for _, v := range applied {
		done[v] = struct{}{}
	}

	var res []Migration
	for _, m := range all {
		if _, ok := done[m.Version]; !ok {
			res = append(res, m)
		}
	}
	return res
}
