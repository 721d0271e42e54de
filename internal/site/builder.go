package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
	"git.home.luguber.info/inful/hakkan/internal/markdown"
	"git.home.luguber.info/inful/hakkan/internal/post"
)

// Builder parses a list of content files into an Index.
type Builder struct {
	baseURL   string
	converter markdown.Converter
	workers   int
}

// NewBuilder returns a Builder. A nil converter selects the goldmark default;
// workers below one selects runtime.NumCPU.
func NewBuilder(baseURL string, conv markdown.Converter, workers int) *Builder {
	if conv == nil {
		conv = markdown.New()
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Builder{baseURL: baseURL, converter: conv, workers: workers}
}

// Build parses files concurrently and assembles the Index in file order.
// Paths are normalized and parsed once each. Every malformed file and every
// duplicate key is reported; if there is any, no Index is returned and the
// error joins all of them.
func (b *Builder) Build(ctx context.Context, files []string) (*Index, error) {
	files = normalizePaths(files)

	results := make([]*post.Post, len(files))
	failures := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], failures[i] = post.Load(file, b.baseURL, b.converter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	accepted := make([]*post.Post, 0, len(files))
	owner := make(map[string]string, len(files))
	for i, p := range results {
		if failures[i] != nil {
			slog.Error("Failed to parse post", logfields.File(files[i]), logfields.Error(failures[i]))
			errs = append(errs, failures[i])
			continue
		}
		if first, dup := owner[p.Key]; dup {
			err := derrors.DuplicateKeyError("two content files resolve to the same post key").
				WithCause(fmt.Errorf("%w: %s also defined by %s", ErrDuplicateKey, p.Key, first)).
				WithContext("key", p.Key).
				WithContext("file", p.Path).
				Build()
			slog.Error("Duplicate post key", logfields.PostKey(p.Key), logfields.File(p.Path))
			errs = append(errs, err)
			continue
		}
		owner[p.Key] = p.Path
		accepted = append(accepted, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return newIndex(accepted), nil
}

// Build discovers every post below root and builds the Index with the default
// converter.
func Build(ctx context.Context, root, baseURL string) (*Index, error) {
	files, err := Discover(root)
	if err != nil {
		return nil, err
	}
	return NewBuilder(baseURL, nil, 0).Build(ctx, files)
}

func normalizePaths(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		abs = filepath.Clean(abs)
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}
	return out
}
