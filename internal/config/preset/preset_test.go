package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/confdash/confdash/internal/config/registry"
	"github.com/confdash/confdash/internal/config/state"
)

func testReconciler() *state.Reconciler {
	return state.New(registry.NewWithDefaults())
}

func TestApply(t *testing.T) {
	r := testReconciler()
	snap := state.NewSnapshot()

	p := &Preset{
		Name: "test",
		Edits: []Edit{
			{FieldID: "email.service", Value: "smtp"},
			{FieldID: "email.port", Value: 2525},
		},
	}

	next, skipped := p.Apply(r, snap)

	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
	if got := r.CurrentValue(next, "email.service"); got != "smtp" {
		t.Errorf("email.service = %v, want smtp", got)
	}
	if got := r.Classify(next, "email.port"); got != state.StatusExplicitModified {
		t.Errorf("email.port status = %v, want explicit-modified", got)
	}

	// Input snapshot untouched.
	if got := r.Classify(snap, "email.service"); got != state.StatusNotSet {
		t.Error("Apply mutated the input snapshot")
	}
}

func TestApplySkipsUnknownFields(t *testing.T) {
	r := testReconciler()

	p := &Preset{
		Name: "drifted",
		Edits: []Edit{
			{FieldID: "removed.field", Value: 1},
			{FieldID: "cache.useRedis", Value: true},
		},
	}

	next, skipped := p.Apply(r, state.NewSnapshot())

	if len(skipped) != 1 || skipped[0] != "removed.field" {
		t.Errorf("skipped = %v, want [removed.field]", skipped)
	}
	if got := r.CurrentValue(next, "cache.useRedis"); got != true {
		t.Error("known edit was not applied")
	}
}

func TestBuiltins(t *testing.T) {
	r := testReconciler()
	store := NewStoreWithBuiltins()

	for _, name := range store.Names() {
		t.Run(name, func(t *testing.T) {
			next, skipped, err := store.Apply(name, r, state.NewSnapshot())
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			// Built-in presets must reference only catalogued fields.
			if len(skipped) != 0 {
				t.Errorf("preset references unknown fields: %v", skipped)
			}
			p, _ := store.Get(name)
			for _, e := range p.Edits {
				if got := r.Classify(next, e.FieldID); got == state.StatusNotSet {
					t.Errorf("%s still not-set after preset", e.FieldID)
				}
			}
		})
	}
}

func TestAgentsOnlyPreset(t *testing.T) {
	r := testReconciler()
	store := NewStoreWithBuiltins()

	next, _, err := store.Apply("agents-only", r, state.NewSnapshot())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	endpoints := r.CurrentValue(next, "endpoints.enabled")
	list, ok := endpoints.([]string)
	if !ok || len(list) != 1 || list[0] != "agents" {
		t.Errorf("endpoints.enabled = %v, want [agents]", endpoints)
	}
	if got := r.CurrentValue(next, "interface.modelSelect"); got != false {
		t.Errorf("interface.modelSelect = %v, want false", got)
	}
}

func TestStoreApplyUnknown(t *testing.T) {
	store := NewStoreWithBuiltins()
	snap := state.NewSnapshot()

	got, _, err := store.Apply("nope", testReconciler(), snap)
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if !got.Equal(snap) {
		t.Error("failed Apply changed the snapshot")
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
name = "locked-down"
description = "Disable self-service registration"

[[edit]]
field = "registration.allowRegistration"
value = false

[[edit]]
field = "registration.allowSocialLogin"
value = false
`)

	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Name != "locked-down" {
		t.Errorf("Name = %q, want locked-down", p.Name)
	}
	if len(p.Edits) != 2 {
		t.Fatalf("Edits = %d, want 2", len(p.Edits))
	}
	if p.Edits[0].FieldID != "registration.allowRegistration" || p.Edits[0].Value != false {
		t.Errorf("first edit = %+v", p.Edits[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", `[[edit]]` + "\n" + `field = "a"` + "\n" + `value = 1`},
		{"missing field", "name = \"x\"\n[[edit]]\nvalue = 1"},
		{"invalid toml", `name = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("b.toml", "name = \"beta\"\n[[edit]]\nfield = \"cache.useRedis\"\nvalue = true\n")
	write("a.toml", "name = \"alpha\"\n[[edit]]\nfield = \"app.title\"\nvalue = \"Mine\"\n")
	write("ignored.txt", "not a preset")

	presets, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("loaded %d presets, want 2", len(presets))
	}
	// Sorted by file name.
	if presets[0].Name != "alpha" || presets[1].Name != "beta" {
		t.Errorf("order = [%s %s], want [alpha beta]", presets[0].Name, presets[1].Name)
	}
}

func TestLoadDirMissing(t *testing.T) {
	presets, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if presets != nil {
		t.Errorf("presets = %v, want nil", presets)
	}
}
