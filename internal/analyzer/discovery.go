package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiscoveryError reports an unreadable discovery root. Failures on individual
// candidates never produce it; those candidates are silently omitted.
type DiscoveryError struct {
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovering repositories under %s: %v", e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// Discover lists immediate non-hidden subdirectories of root that contain a
// .git metadata directory. It does not recurse.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &DiscoveryError{Root: root, Err: err}
	}

	repos := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		marker := filepath.Join(root, entry.Name(), ".git")
		info, err := os.Stat(marker)
		if err != nil || !info.IsDir() {
			continue
		}

		repos = append(repos, filepath.Join(root, entry.Name()))
	}

	return repos, nil
}
