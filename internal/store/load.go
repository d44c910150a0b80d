package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/subhub-go/internal/model"
)

type rawFile struct {
	Subscriptions []rawSubscription `yaml:"subscriptions"`
}

type rawSubscription struct {
	Name  string    `yaml:"name"`
	Path  string    `yaml:"path"`
	Nodes []rawNode `yaml:"nodes"`
}

type rawNode struct {
	Link    string `yaml:"link"`
	Name    string `yaml:"name"`
	Order   *int   `yaml:"order"`
	Enabled *bool  `yaml:"enabled"`
}

// LoadFile reads a subscriptions YAML file.
func LoadFile(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			AppError: model.AppError{
				Code:    CodeConfig,
				Message: "订阅配置读取失败",
				Stage:   "load_config",
				Hint:    path,
			},
			Cause: err,
		}
	}
	return Load(string(b))
}

// Load parses a subscriptions YAML document. Unknown keys, duplicate paths
// and unsupported links are errors. A node without order takes its
// position in the list; a node without enabled is enabled.
func Load(content string) (*Store, error) {
	var rf rawFile
	if err := yamlDecodeStrict(content, &rf); err != nil {
		return nil, &Error{
			AppError: model.AppError{
				Code:    CodeConfig,
				Message: "订阅配置 YAML 解析失败",
				Stage:   "load_config",
				Snippet: truncate(content, 200),
			},
			Cause: err,
		}
	}

	s := New()
	for _, rs := range rf.Subscriptions {
		path := strings.TrimSpace(rs.Path)
		if _, ok := s.subs[path]; ok {
			return nil, &Error{
				AppError: model.AppError{
					Code:    CodeInvalid,
					Message: fmt.Sprintf("订阅路径重复：%s", path),
					Stage:   "load_config",
					Path:    path,
				},
			}
		}

		in := Subscription{Name: rs.Name, Path: path, Nodes: make([]Node, 0, len(rs.Nodes))}
		for i, rn := range rs.Nodes {
			n := Node{Link: rn.Link, Name: rn.Name, Order: i, Enabled: true}
			if rn.Order != nil {
				n.Order = *rn.Order
			}
			if rn.Enabled != nil {
				n.Enabled = *rn.Enabled
			}
			in.Nodes = append(in.Nodes, n)
		}
		if err := s.Put(in); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func yamlDecodeStrict(content string, out any) error {
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	var extra any
	if err := dec.Decode(&extra); err == nil {
		return errors.New("multiple YAML documents are not allowed")
	} else if !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
