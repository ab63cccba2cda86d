// Package ignore matches project paths against .gitignore patterns.
//
// Only the basic subset is supported: blank lines and # comments are
// skipped, a pattern ending in "/" ignores every path under that prefix, and
// any other pattern is a shell glob matched against the whole
// slash-separated relative path, with "*" also matching "/".
// Negation (!) and nested .gitignore files are not supported.
package ignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// FileName is the conventional ignore file name.
const FileName = ".gitignore"

type pattern struct {
	raw    string
	prefix string         // set for directory patterns ("build/")
	re     *regexp.Regexp // set for glob patterns
}

// Matcher holds compiled ignore patterns. The zero value ignores nothing.
type Matcher struct {
	patterns []pattern
}

// Parse reads patterns from r.
func Parse(r io.Reader) (*Matcher, error) {
	m := &Matcher{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := pattern{raw: line}
		if strings.HasSuffix(line, "/") {
			p.prefix = strings.TrimRight(line, "/")
		}
		re, err := regexp.Compile(translate(line))
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", line, err)
		}
		p.re = re
		m.patterns = append(m.patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore patterns: %w", err)
	}
	return m, nil
}

// Load reads patterns from the file at path. A missing file yields an empty
// matcher.
func Load(path string) (*Matcher, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the project's ignore file
	if err != nil {
		if os.IsNotExist(err) {
			return &Matcher{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Patterns returns the loaded patterns in file order.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	for i, p := range m.patterns {
		out[i] = p.raw
	}
	return out
}

// Match reports whether the slash-separated relative path is ignored.
func (m *Matcher) Match(relPath string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		if p.prefix != "" && strings.HasPrefix(relPath, p.prefix) {
			return true
		}
		if p.re.MatchString(relPath) {
			return true
		}
	}
	return false
}

// translate converts a shell glob into an anchored regular expression.
func translate(glob string) string {
	var sb strings.Builder
	sb.WriteString(`^(?s:`)

	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		case '[':
			j := i + 1
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				j++
			}
			if j < len(runes) && runes[j] == ']' {
				j++
			}
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				sb.WriteString(`\[`)
				continue
			}
			class := string(runes[i+1 : j])
			class = strings.ReplaceAll(class, `\`, `\\`)
			if strings.HasPrefix(class, "!") {
				class = "^" + class[1:]
			} else if strings.HasPrefix(class, "^") {
				class = `\` + class
			}
			sb.WriteString("[" + class + "]")
			i = j
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	sb.WriteString(`)$`)
	return sb.String()
}
