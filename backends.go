package statmeta

import (
	"github.com/simonhull/statmeta/internal/registry"
	"github.com/simonhull/statmeta/internal/source"
)

// Backend names accepted by WithBackend.
const (
	BackendBuffer = "buffer" // whole file read into memory
	BackendFile   = "file"   // random access through the OS file
	BackendMmap   = "mmap"   // read-only memory mapping
)

func init() {
	registry.Register(BackendBuffer, func() source.Source { return source.NewLoaded() })
	registry.Register(BackendFile, func() source.Source { return source.NewFile() })
	registry.Register(BackendMmap, func() source.Source { return source.NewMapped() })
}

// Backends returns the names of every registered backend.
func Backends() []string {
	return registry.Names()
}

// backendName names the backend of src for logs and metrics.
func backendName(src Source) string {
	switch s := src.(type) {
	case *source.Buffer:
		return BackendBuffer
	case *source.File:
		return BackendFile
	case *source.Mapped:
		if s.IsMapped() {
			return BackendMmap
		}
		return BackendBuffer
	default:
		return "custom"
	}
}
