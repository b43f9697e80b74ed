package planner

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Diff returns every source descriptor whose fingerprint is absent from
// dest, in source insertion order.
func Diff(source, dest *Index) []FileDescriptor {
	missing := []FileDescriptor{}
	for _, fd := range source.Values() {
		if !dest.Has(Fingerprint(fd)) {
			missing = append(missing, fd)
		}
	}
	return missing
}

// PlanCopies maps each missing descriptor to its destination path under
// destRoot, keeping the relative directory.
func PlanCopies(missing []FileDescriptor, destRoot string) []CopyDescriptor {
	ops := make([]CopyDescriptor, 0, len(missing))
	for _, fd := range missing {
		ops = append(ops, CopyDescriptor{
			Source: fd.Path,
			Dest:   filepath.Join(destRoot, fd.RelativeDirectory, fd.Name),
		})
	}
	return ops
}

func IsExcluded(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// filterExcluded drops the paths under root whose relative slash path
// matches one of the globs.
func filterExcluded(root string, paths []string, globs []string) ([]string, error) {
	if len(globs) == 0 {
		return paths, nil
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, err
		}
		excluded, err := IsExcluded(filepath.ToSlash(rel), globs)
		if err != nil {
			return nil, err
		}
		if !excluded {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
