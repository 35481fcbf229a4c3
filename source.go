package sdui

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/sduikit/sdui/internal/errors"
	"github.com/sduikit/sdui/internal/logging"
)

// Source provides raw page documents by name.
//
// It is the boundary to whatever delivers content: a directory of JSON
// files during development, the HTTP client in pkg/api in production.
// A missing resource is reported with an error recognized by IsNotFound.
type Source interface {
	Fetch(name string) ([]byte, error)
}

// IsNotFound checks if the given error reports a missing page.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}

// FetchPage fetches the named document from the source and decodes it.
func FetchPage(s Source, name string) (*Page, error) {
	data, err := s.Fetch(name)
	if err != nil {
		return nil, err
	}
	return DecodePage(data)
}

type fsSource struct {
	dir string
}

// NewFilesystemSource returns a Source that reads `<name>.json` files
// from the given directory.
func NewFilesystemSource(dir string) Source {
	return &fsSource{dir: dir}
}

func (s *fsSource) Fetch(name string) ([]byte, error) {
	path := filepath.Join(s.dir, name+".json")
	logging.Debug("fetch page %q from %q", name, path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("no page named %q", name)
		}
		return nil, err
	}
	return data, nil
}

type cachingSource struct {
	src   Source
	mx    sync.RWMutex
	cache map[string][]byte
}

// NewCachingSource wraps a source with an in-memory cache.
// A fetch that failed is not cached; a fetch that succeeded is served
// from memory on subsequent calls.
func NewCachingSource(src Source) Source {
	return &cachingSource{
		src:   src,
		cache: make(map[string][]byte),
	}
}

func (c *cachingSource) Fetch(name string) ([]byte, error) {
	c.mx.RLock()
	data, ok := c.cache[name]
	c.mx.RUnlock()
	if ok {
		logging.Debug("cache hit for page %q", name)
		return data, nil
	}

	logging.Debug("cache miss for page %q", name)
	data, err := c.src.Fetch(name)
	if err != nil {
		return nil, err
	}

	c.mx.Lock()
	c.cache[name] = data
	c.mx.Unlock()

	return data, nil
}
