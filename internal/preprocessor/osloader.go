package preprocessor

import (
	"os"
	"path/filepath"
)

// OSFileLoader resolves #include targets against the filesystem: a
// quoted include first tries the including file's own directory, then
// falls through (same as an angled include) to the configured search
// path list, matching the usual C-preprocessor quoted/angled distinction.
type OSFileLoader struct{}

func (OSFileLoader) Resolve(name string, angled bool, currentDir string, searchPaths []string) (string, bool) {
	if !angled {
		candidate := filepath.Join(currentDir, name)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (OSFileLoader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
