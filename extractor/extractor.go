package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/viant/protoscope/inspector/info"
	"github.com/viant/protoscope/inspector/proto"
	"github.com/viant/protoscope/inspector/repository"
)

// Result is the outcome of an extraction
type Result struct {
	Found  []string     // Sorted distinct qualified names of the extracted declarations
	Protos []*info.File // Filtered files, one per package
}

// Extractor computes the closure of type declarations needed by a set of root schema files
type Extractor struct {
	reader    repository.Reader
	inspector *proto.Inspector
	logger    *slog.Logger
	include   MatchExpression
	exclude   MatchExpression
	owned     bool
}

// run holds the state of a single Extract call
type run struct {
	root    string
	imports graph.Graph[string, string]
}

// Extract reads files relative to root and follows their imports until every referenced
// type is found or the import closure is exhausted. Files the reader reports absent are skipped.
func (e *Extractor) Extract(ctx context.Context, root string, files []string) (*Result, error) {
	r := &run{
		root:    root,
		imports: graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles()),
	}
	progress, err := e.extract(ctx, r, "", files, e.include)
	if err != nil {
		return nil, err
	}
	found := distinct(progress.Found)
	sort.Strings(found)
	e.logger.Debug("extraction completed", "root", root, "found", len(found), "missing", len(progress.Missing))
	return &Result{Found: found, Protos: progress.Protos}, nil
}

func (e *Extractor) extract(ctx context.Context, r *run, parent string, files []string, include MatchExpression) (*Progress, error) {
	result := &Progress{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := repository.Combine(r.root, file)
		if !e.reader.Exists(ctx, path) {
			continue
		}
		if parent != "" {
			ok, err := r.link(parent, path)
			if err != nil {
				return nil, err
			}
			if !ok {
				e.logger.Debug("skipping circular import", "file", parent, "import", path)
				continue
			}
		}
		read, err := e.read(ctx, path, include)
		if err != nil {
			return nil, err
		}
		result = MergeRead(read, result)
		if len(result.Missing) == 0 {
			continue
		}
		nested, err := e.extract(ctx, r, path, read.File.Dependencies(), Literals(result.Missing...))
		if err != nil {
			return nil, err
		}
		result = Merge(result, nested)
	}
	return result, nil
}

func (e *Extractor) read(ctx context.Context, path string, include MatchExpression) (*ReadResult, error) {
	e.logger.Debug("reading file", "path", path, "include", include.String())
	data, err := e.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	file, err := e.inspector.InspectSource(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return Read(file, include, e.exclude), nil
}

// link records the import edge from parent to child, it returns false when the edge would close a cycle
func (r *run) link(parent, child string) (bool, error) {
	for _, vertex := range []string{parent, child} {
		if err := r.imports.AddVertex(vertex); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return false, fmt.Errorf("failed to add import %s: %w", vertex, err)
		}
	}
	err := r.imports.AddEdge(parent, child)
	switch {
	case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
		return true, nil
	case errors.Is(err, graph.ErrEdgeCreatesCycle):
		return false, nil
	}
	return false, fmt.Errorf("failed to link import %s -> %s: %w", parent, child, err)
}

// New creates an Extractor reading files with reader
func New(reader repository.Reader, opts ...Option) (*Extractor, error) {
	ret := &Extractor{
		reader:  reader,
		include: AllTypes(),
		exclude: NoTypes(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if ret.inspector == nil {
		inspector, err := proto.NewInspector(info.DefaultConfig())
		if err != nil {
			return nil, err
		}
		ret.inspector = inspector
		ret.owned = true
	}
	return ret, nil
}

// Close releases the parse cache unless the inspector was supplied with WithInspector
func (e *Extractor) Close() {
	if e.owned {
		e.inspector.Close()
	}
}

// Extract is a shortcut for New followed by Extractor.Extract
func Extract(ctx context.Context, reader repository.Reader, root string, files []string, opts ...Option) (*Result, error) {
	e, err := New(reader, opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()
	return e.Extract(ctx, root, files)
}
