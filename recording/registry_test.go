package recording

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/mortier"
)

// mockBackend is a minimal backend implementation for testing.
// It logs every call it receives.
type mockBackend struct {
	name       string
	beginCalls int
	endCalls   int
	view       mortier.Viewport
	calls      []string
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (b *mockBackend) Begin(view mortier.Viewport) error {
	b.beginCalls++
	b.view = view
	return nil
}

func (b *mockBackend) End() error {
	b.endCalls++
	return nil
}

func (b *mockBackend) Save()                   { b.calls = append(b.calls, "Save") }
func (b *mockBackend) Restore()                { b.calls = append(b.calls, "Restore") }
func (b *mockBackend) SetClip(_ *mortier.Path) { b.calls = append(b.calls, "SetClip") }
func (b *mockBackend) ClearClip()              { b.calls = append(b.calls, "ClearClip") }
func (b *mockBackend) BeginGroup(id string)    { b.calls = append(b.calls, "BeginGroup "+id) }
func (b *mockBackend) EndGroup()               { b.calls = append(b.calls, "EndGroup") }

func (b *mockBackend) FillPath(_ *mortier.Path, br Brush) {
	b.calls = append(b.calls, "FillPath "+BrushColor(br).Hex())
}

func (b *mockBackend) StrokePath(_ *mortier.Path, br Brush, s Stroke) {
	b.calls = append(b.calls, fmt.Sprintf("StrokePath %s %g", BrushColor(br).Hex(), s.Width))
}

// resetRegistry clears all registered formats for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	formats = make(map[string]Format)
}

func mockFormat(name string) Format {
	return Format{Name: name, New: func() Backend { return newMockBackend(name) }}
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(mockFormat("test"))

	backend, err := NewBackend("test")
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	mock, ok := backend.(*mockBackend)
	if !ok {
		t.Fatal("backend is not a mockBackend")
	}
	if mock.name != "test" {
		t.Errorf("got name %q, want %q", mock.name, "test")
	}

	other, _ := NewBackend("test")
	if other == backend {
		t.Error("NewBackend returned a shared instance")
	}
}

func TestRegisterDefaultsExtension(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(mockFormat("SVGZ"))
	f := Format{Name: "tiff", Extension: ".tif", New: mockFormat("tiff").New}
	Register(f)

	if got, _ := LookupFormat("SVGZ"); got.Extension != ".svgz" {
		t.Errorf("default extension = %q, want .svgz", got.Extension)
	}
	if got, _ := LookupFormat("tiff"); got.Extension != ".tif" {
		t.Errorf("extension = %q, want .tif", got.Extension)
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()
	Register(mockFormat("svg"))

	_, err := NewBackend("gif")
	if !errors.Is(err, mortier.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if want := `mortier: recording: unknown format "gif" (registered: svg)`; err.Error() != want {
		t.Errorf("err = %q, want %q", err, want)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		f    Format
	}{
		{"empty name", Format{New: mockFormat("x").New}},
		{"nil factory", Format{Name: "nil"}},
		{"duplicate", mockFormat("dup")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRegistry()
			defer resetRegistry()
			Register(mockFormat("dup"))

			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			Register(tt.f)
		})
	}
}

func TestUnregister(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(mockFormat("temp"))
	if _, ok := LookupFormat("temp"); !ok {
		t.Fatal("format should be registered")
	}
	Unregister("temp")
	if _, ok := LookupFormat("temp"); ok {
		t.Error("format should not be registered after Unregister")
	}
	Unregister("nonexistent")
}

func TestFormatsSorted(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	for _, name := range []string{"svg", "png", "pdf"} {
		Register(mockFormat(name))
	}
	if diff := cmp.Diff([]string{"pdf", "png", "svg"}, Formats()); diff != "" {
		t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
	}
}

func TestBackendLifecycle(t *testing.T) {
	resetRegistry()
	defer resetRegistry()
	Register(mockFormat("lifecycle"))

	backend, err := NewBackend("lifecycle")
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	mock := backend.(*mockBackend)

	view := mortier.Viewport{Width: 800, Height: 600}
	if err := backend.Begin(view); err != nil {
		t.Errorf("Begin failed: %v", err)
	}
	if err := backend.End(); err != nil {
		t.Errorf("End failed: %v", err)
	}
	if mock.beginCalls != 1 || mock.endCalls != 1 {
		t.Errorf("got %d Begin and %d End calls, want 1 each", mock.beginCalls, mock.endCalls)
	}
	if mock.view != view {
		t.Errorf("got viewport %v, want %v", mock.view, view)
	}
}

func TestConcurrentRegistration(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 25 {
				Register(mockFormat(fmt.Sprintf("f%d-%d", i, j)))
				_ = Formats()
				_, _ = LookupFormat("missing")
			}
		}()
	}
	wg.Wait()

	if n := len(Formats()); n != 100 {
		t.Errorf("got %d formats, want 100", n)
	}
}
