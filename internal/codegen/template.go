package codegen

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

const (
	// actionsPlaceholder is the single placeholder line in a skeleton
	// that the rendered statement block replaces.
	actionsPlaceholder = "{{actions}}"

	// urlToken is substituted once, at template load time, with the
	// session's start URL.
	urlToken = "{{url}}"

	// indentUnit is the fixed indentation applied to every emitted
	// statement.
	indentUnit = "    "
)

//go:embed skeleton.spec.js
var defaultSkeleton string

// Template is a code skeleton loaded once per session start.
type Template struct {
	skeleton string
}

// LoadTemplate reads the skeleton from path, or falls back to the
// embedded default when path is empty, and substitutes the session
// start URL. The skeleton must contain the actions placeholder on a
// line of its own.
func LoadTemplate(path, url string) (*Template, error) {
	skeleton := defaultSkeleton
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		skeleton = string(data)
	}
	if !strings.Contains(skeleton, actionsPlaceholder) {
		return nil, fmt.Errorf("template is missing the %s placeholder", actionsPlaceholder)
	}
	return &Template{
		skeleton: strings.ReplaceAll(skeleton, urlToken, url),
	}, nil
}

// Render substitutes the emitted statements into the skeleton. Each
// statement is indented by one unit and statements are separated by a
// blank line. An empty statement list renders the skeleton with an
// empty substitution.
func (t *Template) Render(lines []string) string {
	indented := make([]string, 0, len(lines))
	for _, line := range lines {
		indented = append(indented, indentUnit+line)
	}
	block := strings.Join(indented, "\n\n")
	return strings.Replace(t.skeleton, actionsPlaceholder, block, 1)
}
