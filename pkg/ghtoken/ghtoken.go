// Package ghtoken resolves GitHub API tokens from the process environment.
//
// Registry tooling reads an existing token from well-known environment
// variables; it never performs an authentication flow of its own. Callers
// can prefer a specific variable and supply extra candidates, which are
// checked ahead of the defaults.
package ghtoken

import (
	"os"
	"strings"
)

// DefaultEnvVars lists the environment variables checked for a GitHub
// token when the caller expresses no preference, in order.
var DefaultEnvVars = []string{"GH_TOKEN", "GH_API_TOKEN", "GITHUB_TOKEN"}

// Candidates builds the ordered list of environment-variable names to
// check: the preferred name first (skipped when empty), then extras, then
// [DefaultEnvVars]. Names are trimmed; duplicates keep their first
// occurrence.
func Candidates(preferred string, extras ...string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	add(preferred)
	for _, name := range extras {
		add(name)
	}
	for _, name := range DefaultEnvVars {
		add(name)
	}
	return names
}

// Resolve returns the first candidate variable whose trimmed value is
// non-empty, along with the name of the variable that supplied it.
// It only reads the process environment and has no side effects.
func Resolve(preferred string, extras ...string) (name, token string, ok bool) {
	for _, n := range Candidates(preferred, extras...) {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return n, v, true
		}
	}
	return "", "", false
}

// FromEnv returns the first non-empty token found among the candidate
// variables. See [Candidates] for the lookup order.
func FromEnv(preferred string, extras ...string) (string, bool) {
	_, token, ok := Resolve(preferred, extras...)
	return token, ok
}

// Has reports whether any candidate variable holds a non-empty token.
func Has(preferred string, extras ...string) bool {
	_, ok := FromEnv(preferred, extras...)
	return ok
}
