package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/John-Robertt/subhub-go/internal/codec"
	"github.com/John-Robertt/subhub-go/internal/compiler"
	"github.com/John-Robertt/subhub-go/internal/model"
)

type Target string

const (
	TargetSurge Target = "surge"
	TargetClash Target = "clash"
	TargetV2ray Target = "v2ray"
	// TargetRaw is the plain descriptor list with Snell lines removed.
	TargetRaw Target = "raw"
)

// Targets lists every target in a stable order.
var Targets = []Target{TargetSurge, TargetClash, TargetV2ray, TargetRaw}

// ParseTarget maps a user supplied target name to a Target.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Targets {
		if t == known {
			return t, nil
		}
	}
	return "", &RenderError{
		AppError: model.AppError{
			Code:    "UNSUPPORTED_TARGET",
			Message: fmt.Sprintf("不支持的 target：%s", s),
			Stage:   "render",
			Hint:    "expected one of: surge clash v2ray raw",
		},
	}
}

func (t Target) ContentType() string {
	if t == TargetClash {
		return "text/yaml; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

type Options struct {
	// Now stamps the Clash header. Nil means time.Now.
	Now func() time.Time
	// Parallelism is passed to compiler.Compile.
	Parallelism int
}

type Result struct {
	Text        string
	ContentType string
	// Emitted counts the nodes (or raw lines) written to Text.
	Emitted int
	// Dropped counts input lines that could not be emitted for this
	// target: parse failures plus schemes the target does not support.
	Dropped int
}

type RenderError struct {
	AppError model.AppError
	Cause    error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// Render converts descriptor lines into the target dialect. Individual
// lines that cannot be converted are skipped; errors are reserved for an
// unknown target and cancellation.
func Render(ctx context.Context, target Target, lines []string, opt Options) (*Result, error) {
	switch target {
	case TargetV2ray, TargetRaw:
		kept, dropped := filterBundle(lines)
		text := strings.Join(kept, "\n")
		if target == TargetV2ray {
			text = codec.EncodeBase64(text)
		}
		return &Result{Text: text, ContentType: target.ContentType(), Emitted: len(kept), Dropped: dropped}, nil
	case TargetSurge, TargetClash:
	default:
		_, err := ParseTarget(string(target))
		return nil, err
	}

	res, err := compiler.Compile(ctx, lines, compiler.Options{Parallelism: opt.Parallelism})
	if err != nil {
		return nil, &RenderError{
			AppError: model.AppError{
				Code:    "RENDER_ABORTED",
				Message: "节点转换未完成",
				Stage:   "render",
			},
			Cause: err,
		}
	}

	nodes := make([]model.Node, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		if Supports(target, n.Scheme()) {
			nodes = append(nodes, n)
		}
	}
	out := &Result{
		ContentType: target.ContentType(),
		Emitted:     len(nodes),
		Dropped:     res.Dropped + len(res.Nodes) - len(nodes),
	}

	if target == TargetSurge {
		out.Text = renderSurge(nodes)
		return out, nil
	}
	now := time.Now
	if opt.Now != nil {
		now = opt.Now
	}
	out.Text = renderClash(nodes, now())
	return out, nil
}
