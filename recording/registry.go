package recording

import (
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/mortier"
)

// BackendFactory creates a fresh backend for one document.
type BackendFactory func() Backend

// Format is a registered output format.
type Format struct {
	// Name selects the format, e.g. "svg".
	Name string
	// Extension is the file name extension, including the dot.
	Extension string
	New       BackendFactory
}

var (
	registryMu sync.RWMutex
	formats    = make(map[string]Format)
)

// Register makes a format available by name. Backend packages call it from
// init, the way database/sql drivers register themselves:
//
//	func init() {
//	    recording.Register(recording.Format{
//	        Name:      "svg",
//	        Extension: ".svg",
//	        New:       func() recording.Backend { return NewBackend() },
//	    })
//	}
//
// Register panics on an empty name, a nil factory or a duplicate name.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if f.Name == "" {
		panic("recording: Register with empty format name")
	}
	if f.New == nil {
		panic("recording: Register factory is nil for " + f.Name)
	}
	if _, dup := formats[f.Name]; dup {
		panic("recording: Register called twice for " + f.Name)
	}
	if f.Extension == "" {
		f.Extension = "." + strings.ToLower(f.Name)
	}
	formats[f.Name] = f
}

// Unregister removes a format. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(formats, name)
}

// LookupFormat returns the format registered under name.
func LookupFormat(name string) (Format, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := formats[name]
	return f, ok
}

// NewBackend creates a backend for the named format. Unknown names fail with
// an InvalidParameter error that lists the registered formats; the usual
// cause is a missing blank import of the backend package:
//
//	import _ "github.com/gogpu/mortier/recording/backends/raster"
func NewBackend(name string) (Backend, error) {
	f, ok := LookupFormat(name)
	if !ok {
		return nil, mortier.Errorf(mortier.KindInvalidParameter, "recording",
			"unknown format %q (registered: %s)", name, strings.Join(Formats(), ", "))
	}
	return f.New(), nil
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
