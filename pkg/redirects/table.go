package redirects

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported redirects file format")
	ErrInvalidRule       = errors.New("invalid redirect rule")
)

const (
	FORMAT_YAML = "yaml"
	FORMAT_TOML = "toml"
	SPLAT       = "*"
)

type Rule struct {
	From      string `yaml:"from" toml:"from" json:"from"`
	To        string `yaml:"to" toml:"to" json:"to"`
	Permanent bool   `yaml:"permanent" toml:"permanent" json:"permanent"`
}

func (r Rule) Status() int {
	if r.Permanent {
		return http.StatusPermanentRedirect
	}
	return http.StatusTemporaryRedirect
}

func (r Rule) isPrefix() bool {
	return strings.HasSuffix(r.From, "/"+SPLAT)
}

type file struct {
	Redirects []Rule `yaml:"redirects" toml:"redirects"`
}

type Table struct {
	exact    map[string]Rule
	prefixes []Rule
}

func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

func NewTable(rules []Rule) (*Table, error) {
	table := &Table{exact: make(map[string]Rule)}
	for i, rule := range rules {
		if !strings.HasPrefix(rule.From, "/") || rule.To == "" {
			return nil, errors.Join(ErrInvalidRule, fmt.Errorf("rule %d: from %q to %q", i, rule.From, rule.To))
		}
		if rule.isPrefix() {
			table.prefixes = append(table.prefixes, rule)
			continue
		}
		from := normalizePath(rule.From)
		if _, exists := table.exact[from]; exists {
			return nil, errors.Join(ErrInvalidRule, fmt.Errorf("rule %d: duplicate from %q", i, rule.From))
		}
		table.exact[from] = rule
	}
	sort.SliceStable(table.prefixes, func(i, j int) bool {
		return len(table.prefixes[i].From) > len(table.prefixes[j].From)
	})

	for i, rule := range rules {
		target, local := targetPath(rule.To)
		if !local {
			continue
		}
		if _, _, ok := table.Resolve(target); ok {
			return nil, errors.Join(ErrInvalidRule, fmt.Errorf("rule %d: target %q is redirected again", i, rule.To))
		}
	}
	return table, nil
}

// targetPath reduces a rule target to the path a browser requests after following it.
// A splat target is reduced to its base. Absolute URLs leave the site and report false.
func targetPath(to string) (string, bool) {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return "", false
	}
	if i := strings.IndexAny(to, "?#"); i >= 0 {
		to = to[:i]
	}
	return normalizePath(strings.TrimSuffix(to, "/"+SPLAT)), true
}

func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FORMAT_YAML, nil
	case ".toml":
		return FORMAT_TOML, nil
	}
	return "", errors.Join(ErrUnsupportedFormat, fmt.Errorf("file: %s", path))
}

func Parse(data []byte, format string) (*Table, error) {
	var f file
	switch format {
	case FORMAT_YAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case FORMAT_TOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Join(ErrUnsupportedFormat, fmt.Errorf("format: %s", format))
	}
	return NewTable(f.Redirects)
}

func Load(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.exact) + len(t.prefixes)
}

// Resolve finds the target for a request path. Exact rules win over prefix rules and the
// longest prefix wins among prefix rules. A target ending in /* receives the matched rest.
func (t *Table) Resolve(path string) (string, int, bool) {
	if t == nil {
		return "", 0, false
	}
	path = normalizePath(path)

	if rule, ok := t.exact[path]; ok {
		return rule.To, rule.Status(), true
	}

	for _, rule := range t.prefixes {
		base := strings.TrimSuffix(rule.From, "/"+SPLAT)
		var rest string
		switch {
		case path == base:
		case strings.HasPrefix(path, base+"/"):
			rest = strings.TrimPrefix(path, base+"/")
		default:
			continue
		}

		target := rule.To
		if strings.HasSuffix(target, "/"+SPLAT) {
			target = strings.TrimSuffix(target, SPLAT) + rest
			target = normalizePath(target)
		}
		return target, rule.Status(), true
	}
	return "", 0, false
}
