package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/componentry/regtool/pkg/io"
)

var repoURLPattern = regexp.MustCompile(`https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`)

// Component is a single registry submission.
//
// Fields stay in alphabetical order so encoded submissions keep their
// keys sorted.
type Component struct {
	Description string   `json:"description,omitempty"`
	Name        string   `json:"name"`
	Repo        string   `json:"repo,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Load reads a single component submission from path.
func Load(path string) (Component, error) {
	var c Component
	if err := io.ReadJSON(path, &c); err != nil {
		return Component{}, err
	}
	if c.Name == "" {
		return Component{}, fmt.Errorf("component %s: missing name", filepath.Base(path))
	}
	return c, nil
}

// List loads every submission in dir, in lexical filename order.
// Enrichment outputs (*.meta.json) are skipped.
func List(dir string) ([]Component, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read components dir: %w", err)
	}

	components := make([]Component, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasSuffix(name, ".meta.json") {
			continue
		}
		c, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, nil
}

// OwnerRepo extracts the GitHub owner and repository name from the
// component's repo URL.
func (c Component) OwnerRepo() (owner, repo string, ok bool) {
	m := repoURLPattern.FindStringSubmatch(c.Repo)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
