package recorder

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProgram walks pathList for an executable named like program that is
// not self. Symlinks are resolved so a wrapper installed as a link to self
// is skipped.
func FindProgram(program, pathList, self string) (string, error) {
	name := filepath.Base(program)
	selfResolved := resolve(self)

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() || info.Mode()&0111 == 0 {
			continue
		}
		resolved := resolve(candidate)
		if selfResolved != "" && resolved == selfResolved {
			continue
		}
		return resolved, nil
	}

	return "", fmt.Errorf("could not find %s in PATH: %w", name, os.ErrNotExist)
}

func resolve(path string) string {
	if path == "" {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return resolved
	}
	return abs
}
