// Package rbuild drives a batch parse of many documents concurrently,
// tagging the run with a correlation id and, when a cache is given,
// backing repeat parses of unchanged top-level documents with
// internal/rcache.
package rbuild

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/rst2x/internal/rcache"
	"github.com/GriffinCanCode/rst2x/internal/rlog"
	"github.com/GriffinCanCode/rst2x/internal/rpath"
	"github.com/GriffinCanCode/rst2x/pkg/rst"
)

// Request describes one document to parse as part of a batch.
type Request struct {
	Path    string
	Options rst.ParseOptions
}

// Result is one document's outcome.
type Result struct {
	RunID    string
	Path     string
	AST      *rst.Node
	HasToc   bool
	CacheHit bool
	Err      error
}

// Runner executes a batch of Requests with bounded concurrency, each
// tagged with a shared run id for log correlation.
type Runner struct {
	Cache       *rcache.Cache
	Concurrency int
}

// Run parses every request, returning one Result per request in input
// order. A nil Cache disables the per-document cache lookup entirely;
// requests are still parsed and returned.
func (r *Runner) Run(ctx context.Context, reqs []Request) ([]Result, error) {
	runID := uuid.NewString()
	rlog.LogBuildStart(len(reqs))

	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[i] = r.runOne(runID, req)
			return nil
		})
	}

	err := g.Wait()
	rlog.LogBuildComplete(err == nil, "")
	return results, err
}

func (r *Runner) runOne(runID string, req Request) Result {
	fingerprint := fmt.Sprintf("%+v", req.Options)

	if r.Cache != nil {
		if info, statErr := os.Stat(req.Path); statErr == nil {
			if entry, ok := r.Cache.LookupFresh(req.Path, fingerprint, info.ModTime().Unix()); ok {
				if ast, decodeErr := decodeAST(entry.AST); decodeErr == nil {
					rlog.Debug("cache hit", "run", runID, "path", req.Path, "nodes", entry.NodeCount)
					return Result{RunID: runID, Path: req.Path, AST: ast, HasToc: entry.HasToc, CacheHit: true}
				}
			}
		}
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return Result{RunID: runID, Path: req.Path, Err: fmt.Errorf("read %s: %w", req.Path, err)}
	}

	findFile := rpath.DefaultFindFile(rpath.SearchPaths{BaseDir: filepath.Dir(req.Path)})
	ast, hasToc, err := rst.Parse(string(data), req.Path, 0, 0, req.Options, findFile, nil)
	if err != nil {
		return Result{RunID: runID, Path: req.Path, Err: err}
	}

	if r.Cache != nil {
		if info, statErr := os.Stat(req.Path); statErr == nil {
			if encoded, encodeErr := encodeAST(ast); encodeErr == nil {
				digest := rcache.Digest(data, fingerprint)
				_ = r.Cache.Put(req.Path, fingerprint, digest, info.ModTime().Unix(), encoded, countNodes(ast), hasToc)
			}
		}
	}

	rlog.LogParse(req.Path, countNodes(ast))
	return Result{RunID: runID, Path: req.Path, AST: ast, HasToc: hasToc}
}

func encodeAST(n *rst.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeAST(data []byte) (*rst.Node, error) {
	var n rst.Node
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func countNodes(n *rst.Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
