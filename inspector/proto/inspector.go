package proto

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/protoscope/inspector/info"
)

// Inspector parses proto3 sources into info.File models, reusing results for identical content
type Inspector struct {
	config *info.Config
	fs     afs.Service
	cache  *cache
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *info.Config) (*Inspector, error) {
	if config == nil {
		config = info.DefaultConfig()
	}
	files, err := newCache(config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}
	return &Inspector{config: config, fs: afs.New(), cache: files}, nil
}

// InspectSource parses proto3 source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*info.File, error) {
	hash, err := Hash(src)
	if err != nil {
		return nil, fmt.Errorf("failed to hash source: %w", err)
	}
	if file, ok := i.cache.get(hash); ok {
		return file, nil
	}
	file, err := Parse(src)
	if err != nil {
		return nil, err
	}
	i.cache.set(hash, file)
	return file, nil
}

// InspectFile downloads the file at URL and parses it
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*info.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	file, err := i.InspectSource(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", URL, err)
	}
	return file, nil
}

// Close releases the parse cache
func (i *Inspector) Close() {
	i.cache.close()
}
