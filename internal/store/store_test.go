package store

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/subhub-go/internal/model"
)

const sampleYAML = `
subscriptions:
  - name: Home
    path: home-nodes
    nodes:
      - link: "trojan://p@c.example.com:443#C"
        order: 30
      - link: "  ss://YWVzLTEyOC1nY206cGFzcw==@a.example.com:8388#%E9%A6%99%E6%B8%AF  "
        order: 10
      - link: "HK = snell, 1.2.3.4, 443, psk=x"
        name: My Snell
        order: 20
        enabled: false
  - name: Work
    path: work-nodes
`

func TestLoad(t *testing.T) {
	s, err := Load(sampleYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"home-nodes", "work-nodes"}, s.Paths())

	home, err := s.Get("home-nodes")
	require.NoError(t, err)
	assert.Equal(t, "Home", home.Name)
	require.Len(t, home.Nodes, 3)
	assert.Equal(t, Node{Link: "ss://YWVzLTEyOC1nY206cGFzcw==@a.example.com:8388#%E9%A6%99%E6%B8%AF", Name: "香港", Order: 10, Enabled: true}, home.Nodes[0])
	assert.Equal(t, "My Snell", home.Nodes[1].Name)
	assert.False(t, home.Nodes[1].Enabled)
	assert.Equal(t, "C", home.Nodes[2].Name)

	lines, err := s.Lines("home-nodes")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ss://YWVzLTEyOC1nY206cGFzcw==@a.example.com:8388#%E9%A6%99%E6%B8%AF",
		"trojan://p@c.example.com:443#C",
	}, lines)

	lines, err = s.Lines("work-nodes")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestLoad_DefaultOrderIsPosition(t *testing.T) {
	s, err := Load(`
subscriptions:
  - name: A
    path: aaaaa
    nodes:
      - link: "trojan://p@b.example.com:443#B"
      - link: "trojan://p@a.example.com:443#A"
`)
	require.NoError(t, err)
	lines, err := s.Lines("aaaaa")
	require.NoError(t, err)
	assert.Equal(t, []string{"trojan://p@b.example.com:443#B", "trojan://p@a.example.com:443#A"}, lines)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code string
	}{
		{"unknown key", "subscriptions:\n  - name: A\n    path: aaaaa\n    colour: red\n", CodeConfig},
		{"not yaml", "subscriptions: [", CodeConfig},
		{"two documents", "subscriptions: []\n---\nsubscriptions: []\n", CodeConfig},
		{"bad path", "subscriptions:\n  - name: A\n    path: Bad_Path\n", CodeInvalid},
		{"short path", "subscriptions:\n  - name: A\n    path: abc\n", CodeInvalid},
		{"missing name", "subscriptions:\n  - path: aaaaa\n", CodeInvalid},
		{"duplicate path", "subscriptions:\n  - name: A\n    path: aaaaa\n  - name: B\n    path: aaaaa\n", CodeInvalid},
		{"bad link", "subscriptions:\n  - name: A\n    path: aaaaa\n    nodes:\n      - link: http://example.com\n", CodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.yaml)
			var se *Error
			require.True(t, errors.As(err, &se), "err=%v", err)
			assert.Equal(t, tt.code, se.AppError.Code)
		})
	}
}

func TestLoad_BadLinkReportsPosition(t *testing.T) {
	_, err := Load("subscriptions:\n  - name: A\n    path: aaaaa\n    nodes:\n      - link: trojan://p@h:1\n      - link: nope\n")
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "aaaaa", se.AppError.Path)
	assert.Equal(t, 2, se.AppError.Line)
	assert.Equal(t, "nope", se.AppError.Snippet)
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "subs.yaml")
	require.NoError(t, os.WriteFile(p, []byte(sampleYAML), 0o600))
	s, err := LoadFile(p)
	require.NoError(t, err)
	assert.Len(t, s.Paths(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, CodeConfig, se.AppError.Code)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Empty(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, s.Paths())
}

func TestIngestNode(t *testing.T) {
	link := "trojan://p@h.example.com:443#T"
	n, err := IngestNode(base64.StdEncoding.EncodeToString([]byte(link)), "")
	require.NoError(t, err)
	assert.Equal(t, link, n.Link)
	assert.Equal(t, "T", n.Name)
	assert.True(t, n.Enabled)

	n, err = IngestNode("VMESS://eyJhZGQiOiJoIn0=", "  Named  ")
	require.NoError(t, err)
	assert.Equal(t, "Named", n.Name)

	n, err = IngestNode("tuic://u:p@h.example.com:443", "")
	require.NoError(t, err)
	assert.Equal(t, model.UnnamedNode, n.Name)

	for _, bad := range []string{"", "   ", "http://x", "snell, 1.2.3.4, 443", "random text"} {
		_, err := IngestNode(bad, "")
		assert.Error(t, err, bad)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.Put(Subscription{Name: "A", Path: "aaaaa", Nodes: []Node{{Link: "trojan://p@h:1#X", Enabled: true}}}))

	got, err := s.Get("aaaaa")
	require.NoError(t, err)
	got.Nodes[0].Link = "changed"

	lines, err := s.Lines("aaaaa")
	require.NoError(t, err)
	assert.Equal(t, []string{"trojan://p@h:1#X"}, lines)
}

func TestStore_NotFound(t *testing.T) {
	s := New()
	_, err := s.Lines("nothere")
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, CodeNotFound, se.AppError.Code)
	assert.Equal(t, "nothere", se.AppError.Path)

	_, err = s.Get("nothere")
	assert.Error(t, err)
}

func TestStore_Replace(t *testing.T) {
	s, err := Load(sampleYAML)
	require.NoError(t, err)
	next, err := Load("subscriptions:\n  - name: N\n    path: next-path\n")
	require.NoError(t, err)

	s.Replace(next)
	assert.Equal(t, []string{"next-path"}, s.Paths())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s, err := Load(sampleYAML)
	require.NoError(t, err)
	next, err := Load(sampleYAML)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Lines("home-nodes")
		}()
		go func() {
			defer wg.Done()
			s.Replace(next)
		}()
	}
	wg.Wait()
	assert.Len(t, s.Paths(), 2)
}

func TestValidatePath(t *testing.T) {
	assert.True(t, ValidatePath("my-sub-path"))
	assert.True(t, ValidatePath("12345"))
	assert.False(t, ValidatePath("abcd"))
	assert.False(t, ValidatePath("UPPER-case"))
	assert.False(t, ValidatePath("has/slash"))
}
