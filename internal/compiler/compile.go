package compiler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/John-Robertt/subhub-go/internal/model"
	"github.com/John-Robertt/subhub-go/internal/sub"
)

type Options struct {
	// Parallelism bounds how many lines are parsed at once. Values <= 0 mean
	// runtime.GOMAXPROCS(0).
	Parallelism int
}

// Result holds the nodes that parsed, in input order. Lines that did not
// parse are counted in Dropped and described in Errors.
type Result struct {
	Nodes   []model.Node
	Dropped int
	Errors  []error
}

type CompileError struct {
	AppError model.AppError
	Cause    error
}

func (e *CompileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// Compile parses every descriptor line. A line that fails to parse never
// affects the others; the only error Compile returns is cancellation.
//
// Lines are expanded with sub.Expand first, so a base64 blob holding a
// whole subscription contributes one node per descriptor inside it.
func Compile(ctx context.Context, lines []string, opt Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	expanded := sub.Expand(lines)
	nodes := make([]model.Node, len(expanded))
	errs := make([]error, len(expanded))

	limit := opt.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, line := range expanded {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := sub.Parse(line)
			if err != nil {
				var pe *sub.ParseError
				if errors.As(err, &pe) {
					pe.AppError.Line = i + 1
				}
				errs[i] = err
				return nil
			}
			nodes[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, canceled(err)
	}

	res := &Result{Nodes: make([]model.Node, 0, len(expanded))}
	for i := range expanded {
		if errs[i] != nil {
			res.Dropped++
			res.Errors = append(res.Errors, errs[i])
			continue
		}
		res.Nodes = append(res.Nodes, nodes[i])
	}
	return res, nil
}

func canceled(cause error) error {
	return &CompileError{
		AppError: model.AppError{
			Code:    "CANCELED",
			Message: "节点解析被取消",
			Stage:   "compile",
		},
		Cause: cause,
	}
}

// UniqueNames returns one display name per node, in order. The first
// occurrence of a name keeps it; later ones, and names listed in reserved,
// become "name-2", "name-3", ... skipping any already taken.
func UniqueNames(nodes []model.Node, reserved ...string) []string {
	used := make(map[string]struct{}, len(nodes)+len(reserved))
	for _, r := range reserved {
		used[r] = struct{}{}
	}

	out := make([]string, len(nodes))
	for i, n := range nodes {
		base := strings.TrimSpace(n.Common().Name)
		if base == "" {
			base = model.UnnamedNode
		}

		name := base
		if _, ok := used[name]; ok {
			for k := 2; ; k++ {
				try := fmt.Sprintf("%s-%d", base, k)
				if _, ok := used[try]; ok {
					continue
				}
				name = try
				break
			}
		}
		out[i] = name
		used[name] = struct{}{}
	}
	return out
}
