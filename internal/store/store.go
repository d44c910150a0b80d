// Package store holds the subscriptions served by subhub. A subscription is
// a path plus an ordered list of descriptor links; the store is loaded from
// a YAML file and replaced wholesale on reload.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/John-Robertt/subhub-go/internal/model"
	"github.com/John-Robertt/subhub-go/internal/sub"
)

const (
	CodeNotFound    = "SUBSCRIPTION_NOT_FOUND"
	CodeInvalid     = "SUBSCRIPTION_INVALID"
	CodeUnsupported = "NODE_UNSUPPORTED"
	CodeConfig      = "CONFIG_PARSE_ERROR"
)

var pathPattern = regexp.MustCompile(`^[a-z0-9-]{5,50}$`)

type Node struct {
	Link    string
	Name    string
	Order   int
	Enabled bool
}

type Subscription struct {
	Name  string
	Path  string
	Nodes []Node
}

type Error struct {
	AppError model.AppError
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// ValidatePath reports whether p is usable as a subscription path.
func ValidatePath(p string) bool { return pathPattern.MatchString(p) }

// IngestNode cleans up a submitted link the way the admin form does: trim,
// unwrap whole-line base64, and accept only recognized schemes. An empty
// name is replaced by the name carried in the link.
func IngestNode(link, name string) (Node, error) {
	line := sub.Normalize(link)
	if !acceptable(line) {
		return Node{}, &Error{
			AppError: model.AppError{
				Code:    CodeUnsupported,
				Message: "不支持的节点格式",
				Stage:   "store",
				Snippet: truncate(line, 200),
				Hint:    "expected: ss:// vmess:// trojan:// vless:// socks:// hysteria2:// tuic:// or a snell line",
			},
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = sub.ExtractName(line)
	}
	return Node{Link: line, Name: name, Enabled: true}, nil
}

func acceptable(line string) bool {
	switch sub.Detect(line) {
	case model.SchemeUnknown:
		return false
	case model.SchemeSnell:
		return strings.Contains(line, "=")
	}
	return true
}

type Store struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

func New() *Store {
	return &Store{subs: map[string]*Subscription{}}
}

// Put validates s and adds it, replacing any subscription with the same
// path. Nodes are kept sorted by Order; equal orders keep their input order.
func (s *Store) Put(in Subscription) error {
	in.Path = strings.TrimSpace(in.Path)
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !ValidatePath(in.Path) {
		return &Error{
			AppError: model.AppError{
				Code:    CodeInvalid,
				Message: "订阅名称不能为空，路径只能包含小写字母、数字和连字符（5-50 个字符）",
				Stage:   "store",
				Path:    in.Path,
			},
		}
	}

	nodes := make([]Node, 0, len(in.Nodes))
	for i, n := range in.Nodes {
		ingested, err := IngestNode(n.Link, n.Name)
		if err != nil {
			var se *Error
			if errors.As(err, &se) {
				se.AppError.Path = in.Path
				se.AppError.Line = i + 1
			}
			return err
		}
		ingested.Order = n.Order
		ingested.Enabled = n.Enabled
		nodes = append(nodes, ingested)
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Order < nodes[j].Order })
	in.Nodes = nodes

	s.mu.Lock()
	s.subs[in.Path] = &in
	s.mu.Unlock()
	return nil
}

// Replace swaps the whole content of s for that of other.
func (s *Store) Replace(other *Store) {
	other.mu.RLock()
	subs := make(map[string]*Subscription, len(other.subs))
	for k, v := range other.subs {
		subs[k] = v
	}
	other.mu.RUnlock()

	s.mu.Lock()
	s.subs = subs
	s.mu.Unlock()
}

// Get returns a copy of the subscription stored at path.
func (s *Store) Get(path string) (Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	got, ok := s.subs[path]
	if !ok {
		return Subscription{}, notFound(path)
	}
	out := *got
	out.Nodes = append([]Node(nil), got.Nodes...)
	return out, nil
}

// Lines returns the links of the enabled nodes of a subscription in order.
func (s *Store) Lines(path string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	got, ok := s.subs[path]
	if !ok {
		return nil, notFound(path)
	}
	lines := make([]string, 0, len(got.Nodes))
	for _, n := range got.Nodes {
		if n.Enabled {
			lines = append(lines, n.Link)
		}
	}
	return lines, nil
}

// Paths lists the stored subscription paths, sorted.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.subs))
	for p := range s.subs {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func notFound(path string) error {
	return &Error{
		AppError: model.AppError{
			Code:    CodeNotFound,
			Message: "订阅不存在",
			Stage:   "store",
			Path:    path,
		},
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if len(s) <= n {
		return s
	}
	return s[:n]
}
