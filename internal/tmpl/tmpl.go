// Package tmpl applies mustache-style substitution to descriptor values.
package tmpl

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// VersionVar is the variable name substituted into descriptor templates.
const VersionVar = "version"

// Apply renders s with the provided variables. Values without placeholders
// pass through unchanged.
func Apply(s string, vars map[string]string) (string, error) {
	if s == "" {
		return "", nil
	}
	out, err := mustache.Render(s, vars)
	if err != nil {
		return "", fmt.Errorf("render template %q: %w", s, err)
	}
	return out, nil
}

// Version is a convenience for the single variable the tool descriptors use.
func Version(s, version string) (string, error) {
	return Apply(s, map[string]string{VersionVar: version})
}
