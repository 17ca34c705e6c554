package extractor_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/protoscope/extractor"
	"github.com/viant/protoscope/inspector/info"
	"github.com/viant/protoscope/inspector/proto"
	"github.com/viant/protoscope/inspector/repository"
)

// memoryReader serves files from a map and records every read path
type memoryReader struct {
	files map[string]string
	reads []string
}

func (r *memoryReader) Exists(_ context.Context, path string) bool {
	_, ok := r.files[path]
	return ok
}

func (r *memoryReader) Read(_ context.Context, path string) ([]byte, error) {
	r.reads = append(r.reads, path)
	content, ok := r.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %v", path)
	}
	return []byte(content), nil
}

func messageNames(result *extractor.Result) []string {
	var names []string
	for _, file := range result.Protos {
		for _, m := range file.Messages {
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

func mustPatterns(patterns []extractor.Pattern, err error) extractor.MatchExpression {
	if err != nil {
		panic(err)
	}
	return extractor.Patterns(patterns...)
}

func TestExtract_Samples(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("testdata", "root"))
	require.NoError(t, err)
	reader := repository.NewReader(afs.New(), nil)

	var testCases = []struct {
		description string
		options     []extractor.Option
		messages    []string
		found       []string
	}{
		{
			description: "all types",
			messages:    []string{"Address", "Name", "Person"},
			found:       []string{"examples.components.Address", "examples.components.Name", "examples.entities.Person"},
		},
		{
			description: "literal include",
			options:     []extractor.Option{extractor.WithInclude(extractor.Literals("examples.entities.Person"))},
			messages:    []string{"Address", "Name", "Person"},
			found:       []string{"examples.components.Address", "examples.components.Name", "examples.entities.Person"},
		},
		{
			description: "regexp include",
			options:     []extractor.Option{extractor.WithInclude(mustPatterns(extractor.Regexp("Person")))},
			messages:    []string{"Address", "Name", "Person"},
			found:       []string{"examples.components.Address", "examples.components.Name", "examples.entities.Person"},
		},
		{
			description: "literal exclude",
			options:     []extractor.Option{extractor.WithExclude(extractor.Literals("examples.components.Name"))},
			messages:    []string{"Address", "Person"},
			found:       []string{"examples.components.Address", "examples.entities.Person"},
		},
		{
			description: "regexp exclude",
			options:     []extractor.Option{extractor.WithExclude(mustPatterns(extractor.Regexp("Name")))},
			messages:    []string{"Address", "Person"},
			found:       []string{"examples.components.Address", "examples.entities.Person"},
		},
		{
			description: "glob exclude",
			options:     []extractor.Option{extractor.WithExclude(mustPatterns(extractor.Glob("examples.components.*")))},
			messages:    []string{"Person"},
			found:       []string{"examples.entities.Person"},
		},
		{
			description: "include matching nothing",
			options:     []extractor.Option{extractor.WithInclude(extractor.NoTypes())},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			result, err := extractor.Extract(context.Background(), reader, root, []string{"Entities.proto"}, tc.options...)
			require.NoError(t, err)
			assert.Equal(t, tc.messages, messageNames(result))
			assert.Equal(t, tc.found, result.Found)
		})
	}
}

func TestExtract_Packages(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("testdata", "root"))
	require.NoError(t, err)
	result, err := extractor.Extract(context.Background(), repository.NewReader(nil, nil), root, []string{"Entities.proto"})
	require.NoError(t, err)

	require.Len(t, result.Protos, 2)
	components, entities := result.Protos[0], result.Protos[1]
	assert.Equal(t, "examples.components", components.Package)
	assert.Equal(t, "examples.entities", entities.Package)
	assert.Nil(t, components.Message("Country"))
	assert.NotNil(t, components.Message("Address"))
	assert.NotNil(t, components.Message("Name"))
}

func TestExtract_CrossFile(t *testing.T) {
	reader := &memoryReader{files: map[string]string{
		"protos/main.proto": `syntax = "proto3";
package acme.api;
import "types.proto";
message Order {
  Money total = 1;
  oneof payer { Customer customer = 2; }
}`,
		"protos/types.proto": `syntax = "proto3";
package acme;
message Money { int64 units = 1; }
message Customer { string id = 1; }
message Unused { string id = 1; }`,
	}}

	result, err := extractor.Extract(context.Background(), reader, "protos", []string{"main.proto", "missing.proto"})
	require.NoError(t, err)

	assert.Equal(t, []string{"acme.Customer", "acme.Money", "acme.api.Order"}, result.Found)
	assert.Equal(t, []string{"Customer", "Money", "Order"}, messageNames(result))
}

func TestExtract_NestedScope(t *testing.T) {
	reader := &memoryReader{files: map[string]string{
		"a.proto": `syntax = "proto3";
package a.b;
import "c.proto";
message Outer {
  message Inner { Shared shared = 1; }
  Inner inner = 1;
}`,
		"c.proto": `syntax = "proto3";
package a;
message Shared { bool ok = 1; }`,
	}}

	result, err := extractor.Extract(context.Background(), reader, "", []string{"a.proto"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.Shared", "a.b.Outer", "a.b.Outer.Inner"}, result.Found)
}

func TestExtract_Cycles(t *testing.T) {
	t.Run("testdata", func(t *testing.T) {
		root, err := filepath.Abs(filepath.Join("testdata", "cycle"))
		require.NoError(t, err)
		result, err := extractor.Extract(context.Background(), repository.NewReader(nil, nil), root, []string{"a.proto"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cycle.A", "cycle.B"}, result.Found)
		require.Len(t, result.Protos, 1)
		assert.Equal(t, []string{"A", "B"}, messageNames(result))
	})

	t.Run("each import edge is followed once", func(t *testing.T) {
		reader := &memoryReader{files: map[string]string{
			"a.proto": `syntax = "proto3"; package p; import "b.proto"; message A { B b = 1; Gone g = 2; }`,
			"b.proto": `syntax = "proto3"; package p; import "a.proto"; message B { A a = 1; }`,
		}}
		result, err := extractor.Extract(context.Background(), reader, "", []string{"a.proto"})
		require.NoError(t, err)
		assert.Equal(t, []string{"p.A", "p.B"}, result.Found)
		assert.Equal(t, []string{"a.proto", "b.proto"}, reader.reads)
	})
}

func TestExtract_ParseError(t *testing.T) {
	reader := &memoryReader{files: map[string]string{
		"root/main.proto":  `syntax = "proto3"; import "bad.proto"; message A { B b = 1; }`,
		"root/bad.proto":   `syntax = "proto2";`,
		"root/other.proto": `syntax = "proto3";`,
	}}

	result, err := extractor.Extract(context.Background(), reader, "root/", []string{"main.proto", "other.proto"})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse root/bad.proto")
	var parseErr *proto.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestExtractor_SharedInspector(t *testing.T) {
	inspector, err := proto.NewInspector(&info.Config{CacheSize: 4})
	require.NoError(t, err)
	defer inspector.Close()

	reader := &memoryReader{files: map[string]string{
		"a.proto": `syntax = "proto3"; package p; message A { string s = 1; }`,
	}}
	ext, err := extractor.New(reader, extractor.WithInspector(inspector), extractor.WithExclude(extractor.Literals("p.A")))
	require.NoError(t, err)

	excluded, err := ext.Extract(context.Background(), "", []string{"a.proto"})
	require.NoError(t, err)
	assert.Empty(t, excluded.Found)
	assert.Empty(t, excluded.Protos)

	cached, err := inspector.InspectSource([]byte(reader.files["a.proto"]))
	require.NoError(t, err)
	assert.Len(t, cached.Messages, 1)
}

func TestExtract_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reader := &memoryReader{files: map[string]string{"a.proto": `syntax = "proto3";`}}
	_, err := extractor.Extract(ctx, reader, "", []string{"a.proto"})
	assert.ErrorIs(t, err, context.Canceled)
}
