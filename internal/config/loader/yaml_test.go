package loader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

const sampleYAML = `
version: "1.2.1"
interface:
  webSearch: false
  privacyPolicy:
    externalUrl: https://example.com/privacy
endpoints:
  agents:
    disableBuilder: true
customSection:
  keepMe: yes
`

func TestYAMLLoaderLoad(t *testing.T) {
	reg := registry.NewWithDefaults()

	fs := fstest.MapFS{
		"librechat.yaml": &fstest.MapFile{Data: []byte(sampleYAML)},
	}

	l := NewYAMLLoaderWithFS(reg, fs, "librechat.yaml")
	result, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, _ := dotpath.Get(result.Values, "interface.webSearch"); got != false {
		t.Errorf("interface.webSearch = %v, want false", got)
	}
	if got, _ := dotpath.Get(result.Values, "endpoints.agents.disableBuilder"); got != true {
		t.Errorf("disableBuilder = %v, want true", got)
	}

	// Unregistered keys are preserved.
	if _, ok := dotpath.Get(result.Values, "customSection.keepMe"); !ok {
		t.Error("unregistered key was dropped")
	}

	wantExplicit := map[string]bool{
		"app.configVersion":                   true,
		"interface.webSearch":                 true,
		"interface.privacyPolicy.externalUrl": true,
		"agents.disableBuilder":               true,
	}
	if len(result.Explicit) != len(wantExplicit) {
		t.Errorf("Explicit = %v, want %d entries", result.Explicit, len(wantExplicit))
	}
	for _, id := range result.Explicit {
		if !wantExplicit[id] {
			t.Errorf("unexpected explicit field %s", id)
		}
	}
}

func TestYAMLLoaderMissingFile(t *testing.T) {
	reg := registry.NewWithDefaults()

	l := NewYAMLLoaderWithFS(reg, fstest.MapFS{}, "absent.yaml")
	result, err := l.Load()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if result.Values != nil || result.Explicit != nil {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestYAMLLoaderParseError(t *testing.T) {
	reg := registry.NewWithDefaults()

	fs := fstest.MapFS{
		"bad.yaml": &fstest.MapFile{Data: []byte("interface: [unclosed")},
	}

	l := NewYAMLLoaderWithFS(reg, fs, "bad.yaml")
	_, err := l.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if perr.Path != "bad.yaml" {
		t.Errorf("ParseError.Path = %s, want bad.yaml", perr.Path)
	}
}

func TestYAMLLoaderFromReader(t *testing.T) {
	reg := registry.NewWithDefaults()
	l := NewYAMLLoader(reg, "")

	result, err := l.LoadFromReader(strings.NewReader("interface:\n  modelSelect: false\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if got, _ := dotpath.Get(result.Values, "interface.modelSelect"); got != false {
		t.Errorf("interface.modelSelect = %v, want false", got)
	}
}
