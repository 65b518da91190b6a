package redirects

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlTable = `
redirects:
  - from: /press
    to: /newsroom
    permanent: true
  - from: /articles/*
    to: /blog/*
    permanent: true
  - from: /articles/archive/*
    to: /blog
  - from: /chains/ethereum
    to: /supported-chains/ethereum
`

const tomlTable = `
[[redirects]]
from = "/privacy-policy"
to = "/privacy"
permanent = true

[[redirects]]
from = "/docs/*"
to = "https://docs.example.com/*"
`

func TestResolve(t *testing.T) {
	table, err := Parse([]byte(yamlTable), FORMAT_YAML)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	tests := []struct {
		path   string
		target string
		status int
		ok     bool
	}{
		{path: "/press", target: "/newsroom", status: http.StatusPermanentRedirect, ok: true},
		{path: "/press/", target: "/newsroom", status: http.StatusPermanentRedirect, ok: true},
		{path: "/articles/hello-world", target: "/blog/hello-world", status: http.StatusPermanentRedirect, ok: true},
		{path: "/articles", target: "/blog", status: http.StatusPermanentRedirect, ok: true},
		{path: "/articles/archive/2021/post", target: "/blog", status: http.StatusTemporaryRedirect, ok: true},
		{path: "/chains/ethereum", target: "/supported-chains/ethereum", status: http.StatusTemporaryRedirect, ok: true},
		{path: "/articlesx", ok: false},
		{path: "/blog", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			target, status, ok := table.Resolve(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.target, target)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestParseTOML(t *testing.T) {
	table, err := Parse([]byte(tomlTable), FORMAT_TOML)
	require.NoError(t, err)

	target, status, ok := table.Resolve("/docs/getting-started")
	assert.True(t, ok)
	assert.Equal(t, "https://docs.example.com/getting-started", target)
	assert.Equal(t, http.StatusTemporaryRedirect, status)
}

func TestNewTableRejectsInvalidRules(t *testing.T) {
	_, err := NewTable([]Rule{{From: "press", To: "/newsroom"}})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewTable([]Rule{{From: "/press", To: ""}})
	assert.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewTable([]Rule{{From: "/press", To: "/a"}, {From: "/press/", To: "/b"}})
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestNewTableRejectsRedirectLoops(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
	}{
		{name: "self", rules: []Rule{{From: "/self", To: "/self"}}},
		{name: "self with trailing slash", rules: []Rule{{From: "/self", To: "/self/?ref=old"}}},
		{name: "prefix into own base", rules: []Rule{{From: "/old/*", To: "/old/new/*"}}},
		{name: "prefix onto itself", rules: []Rule{{From: "/old/*", To: "/old/*"}}},
		{name: "exact pair", rules: []Rule{{From: "/a", To: "/b"}, {From: "/b", To: "/a"}}},
		{name: "exact into prefix", rules: []Rule{{From: "/press", To: "/articles/press"}, {From: "/articles/*", To: "/press"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.rules)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestNewTableAllowsExternalAndTerminalTargets(t *testing.T) {
	table, err := NewTable([]Rule{
		{From: "/docs/*", To: "https://docs.example.com/docs/*"},
		{From: "/cdn", To: "//cdn.example.com/cdn"},
		{From: "/articles/*", To: "/blog/*"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "redirects.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlTable), 0o644))

	table, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	_, err = Load(filepath.Join(dir, "redirects.json"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
