package proto

import (
	"github.com/maypok86/otter"
	"github.com/minio/highwayhash"
	"github.com/viant/protoscope/inspector/info"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns the 64 bit highwayhash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// cache keeps parsed files by source hash; cached files are shared and must not be mutated
type cache struct {
	files otter.Cache[uint64, *info.File]
}

func newCache(size int) (*cache, error) {
	if size <= 0 {
		return nil, nil
	}
	files, err := otter.MustBuilder[uint64, *info.File](size).Build()
	if err != nil {
		return nil, err
	}
	return &cache{files: files}, nil
}

func (c *cache) get(hash uint64) (*info.File, bool) {
	if c == nil {
		return nil, false
	}
	return c.files.Get(hash)
}

func (c *cache) set(hash uint64, file *info.File) {
	if c == nil {
		return
	}
	c.files.Set(hash, file)
}

func (c *cache) close() {
	if c == nil {
		return
	}
	c.files.Close()
}
