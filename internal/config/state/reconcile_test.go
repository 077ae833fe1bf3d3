package state

import (
	"testing"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r := registry.New()
	r.MustRegister(registry.Field{
		ID:       "interface.webSearch",
		Type:     registry.TypeBool,
		Default:  true,
		Tab:      "interface",
		YAMLPath: "interface.webSearch",
	})
	r.MustRegister(registry.Field{
		ID:      "app.title",
		Type:    registry.TypeString,
		Default: "LibreChat",
		Tab:     "app",
		EnvKey:  "APP_TITLE",
	})
	r.MustRegister(registry.Field{
		ID:       "agents.disableBuilder",
		Type:     registry.TypeBool,
		Default:  false,
		Tab:      "agents",
		YAMLPath: "endpoints.agents.disableBuilder",
	})
	r.MustRegister(registry.Field{
		ID:      "endpoints.enabled",
		Type:    registry.TypeArray,
		Default: []string{"openAI", "agents"},
		Tab:     "endpoints",
		EnvKey:  "ENDPOINTS",
	})
	return r
}

func TestCurrentValueInheritsDefault(t *testing.T) {
	r := New(testRegistry(t))
	snap := NewSnapshot()

	if got := r.CurrentValue(snap, "interface.webSearch"); got != true {
		t.Errorf("CurrentValue = %v, want default true", got)
	}
	if got := r.CurrentValue(snap, "app.title"); got != "LibreChat" {
		t.Errorf("CurrentValue = %v, want LibreChat", got)
	}
	if got := r.CurrentValue(snap, "unknown.field"); got != nil {
		t.Errorf("CurrentValue for unknown field = %v, want nil", got)
	}
}

// Mirrors the dashboard's main scenario: a fresh config classifies as
// not-set, an explicit edit as explicit-modified, and a reset restores
// both value and state.
func TestEditScenario(t *testing.T) {
	r := New(testRegistry(t))
	c := NewSnapshot()

	if got := r.Classify(c, "interface.webSearch"); got != StatusNotSet {
		t.Fatalf("fresh config classify = %v, want not-set", got)
	}

	c2 := r.SetExplicitValue(c, "interface.webSearch", false)
	if got := r.Classify(c2, "interface.webSearch"); got != StatusExplicitModified {
		t.Errorf("after set classify = %v, want explicit-modified", got)
	}
	if got, _ := dotpath.Get(c2.Values, "interface.webSearch"); got != false {
		t.Errorf("stored value = %v, want false", got)
	}

	c3 := r.ResetToDefault(c2, "interface.webSearch")
	if got := r.Classify(c3, "interface.webSearch"); got != StatusNotSet {
		t.Errorf("after reset classify = %v, want not-set", got)
	}
	if got := r.CurrentValue(c3, "interface.webSearch"); got != true {
		t.Errorf("after reset value = %v, want true", got)
	}
}

func TestClassifyExplicitDefault(t *testing.T) {
	r := New(testRegistry(t))

	// Explicitly setting the default value yields explicit-default.
	snap := r.SetExplicitValue(NewSnapshot(), "app.title", "LibreChat")
	if got := r.Classify(snap, "app.title"); got != StatusExplicitDefault {
		t.Errorf("classify = %v, want explicit-default", got)
	}

	// Array defaults compare structurally, including loader-shaped []any.
	snap = r.SetExplicitValue(NewSnapshot(), "endpoints.enabled", []any{"openAI", "agents"})
	if got := r.Classify(snap, "endpoints.enabled"); got != StatusExplicitDefault {
		t.Errorf("classify = %v, want explicit-default", got)
	}

	snap = r.SetExplicitValue(NewSnapshot(), "endpoints.enabled", []any{"agents"})
	if got := r.Classify(snap, "endpoints.enabled"); got != StatusExplicitModified {
		t.Errorf("classify = %v, want explicit-modified", got)
	}
}

// Registries supplied by callers may carry typed numeric slice defaults,
// which field validation accepts. Classification must compare them without
// panicking.
func TestClassifyTypedSliceDefault(t *testing.T) {
	reg := registry.New()
	reg.MustRegister(registry.Field{
		ID:      "rateLimit.windows",
		Type:    registry.TypeArray,
		Default: []int{5, 15, 60},
		Tab:     "rateLimit",
	})
	r := New(reg)

	snap := r.SetExplicitValue(NewSnapshot(), "rateLimit.windows", []int{5, 15, 60})
	if got := r.Classify(snap, "rateLimit.windows"); got != StatusExplicitDefault {
		t.Errorf("classify = %v, want explicit-default", got)
	}

	snap = r.SetExplicitValue(snap, "rateLimit.windows", []int{5, 15})
	if got := r.Classify(snap, "rateLimit.windows"); got != StatusExplicitModified {
		t.Errorf("classify = %v, want explicit-modified", got)
	}
}

func TestClassifyTotality(t *testing.T) {
	reg := testRegistry(t)
	r := New(reg)

	snapshots := []Snapshot{
		NewSnapshot(),
		r.SetExplicitValue(NewSnapshot(), "app.title", "Other"),
		r.ToggleOverride(NewSnapshot(), "interface.webSearch", true),
		r.ResetAll(NewSnapshot()),
	}

	for _, snap := range snapshots {
		for _, f := range reg.All() {
			switch r.Classify(snap, f.ID) {
			case StatusNotSet, StatusExplicitDefault, StatusExplicitModified:
			default:
				t.Errorf("classify(%s) returned an undefined status", f.ID)
			}
		}
	}
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	r := New(testRegistry(t))

	base := r.SetExplicitValue(NewSnapshot(), "app.title", "Mine")
	before := base.Clone()

	r.SetExplicitValue(base, "interface.webSearch", false)
	r.ToggleOverride(base, "app.title", false)
	r.ResetToDefault(base, "app.title")
	r.ResetAll(base)

	if !base.Equal(before) {
		t.Error("an operation mutated its input snapshot")
	}
}

func TestToggleOverride(t *testing.T) {
	r := New(testRegistry(t))
	snap := NewSnapshot()

	// Marking explicit without changing the value: value still equals the
	// default, so the field classifies as explicit-default.
	on := r.ToggleOverride(snap, "interface.webSearch", true)
	if got := r.Classify(on, "interface.webSearch"); got != StatusExplicitDefault {
		t.Errorf("classify = %v, want explicit-default", got)
	}
	if got := r.CurrentValue(on, "interface.webSearch"); got != true {
		t.Errorf("toggle changed the value: %v", got)
	}

	off := r.ToggleOverride(on, "interface.webSearch", false)
	if got := r.Classify(off, "interface.webSearch"); got != StatusNotSet {
		t.Errorf("classify = %v, want not-set", got)
	}
}

func TestResetAllIdempotent(t *testing.T) {
	r := New(testRegistry(t))

	c := NewSnapshot()
	c = r.SetExplicitValue(c, "app.title", "Custom")
	c = r.SetExplicitValue(c, "interface.webSearch", false)
	c = r.ToggleOverride(c, "agents.disableBuilder", true)

	once := r.ResetAll(c)
	twice := r.ResetAll(once)

	if !once.Equal(twice) {
		t.Error("ResetAll is not idempotent")
	}
	if len(once.Overrides) != 0 {
		t.Errorf("ResetAll left override flags: %v", once.Overrides)
	}
	for _, f := range r.Registry().All() {
		if got := r.Classify(once, f.ID); got != StatusNotSet {
			t.Errorf("after ResetAll, %s classifies as %v", f.ID, got)
		}
	}
}

func TestOverrideResetInverse(t *testing.T) {
	r := New(testRegistry(t))

	values := []any{false, true, "anything"}
	for _, v := range values {
		c := r.SetExplicitValue(NewSnapshot(), "interface.webSearch", v)
		c = r.ResetToDefault(c, "interface.webSearch")
		if got := r.Classify(c, "interface.webSearch"); got != StatusNotSet {
			t.Errorf("reset after set(%v): classify = %v, want not-set", v, got)
		}
	}
}

func TestUnknownFieldSafety(t *testing.T) {
	r := New(testRegistry(t))
	c := r.SetExplicitValue(NewSnapshot(), "app.title", "Mine")

	ops := map[string]Snapshot{
		"SetExplicitValue": r.SetExplicitValue(c, "nonexistent.field", 1),
		"ToggleOverride":   r.ToggleOverride(c, "nonexistent.field", true),
		"ResetToDefault":   r.ResetToDefault(c, "nonexistent.field"),
	}

	for name, got := range ops {
		if !got.Equal(c) {
			t.Errorf("%s with unknown ID changed the snapshot", name)
		}
	}

	if got := r.Classify(c, "nonexistent.field"); got != StatusNotSet {
		t.Errorf("Classify for unknown ID = %v, want not-set", got)
	}
}

func TestStatesReport(t *testing.T) {
	reg := testRegistry(t)
	r := New(reg)

	c := r.SetExplicitValue(NewSnapshot(), "interface.webSearch", false)
	states := r.States(c)

	if len(states) != reg.Len() {
		t.Fatalf("States returned %d rows, want %d", len(states), reg.Len())
	}

	// Rows follow registry order.
	for i, f := range reg.All() {
		if states[i].Field.ID != f.ID {
			t.Errorf("row %d = %s, want %s", i, states[i].Field.ID, f.ID)
		}
	}

	if states[0].Status != StatusExplicitModified || states[0].Value != false {
		t.Errorf("webSearch row = %v/%v, want explicit-modified/false", states[0].Status, states[0].Value)
	}
	if states[1].Status != StatusNotSet || states[1].Value != "LibreChat" {
		t.Errorf("app.title row = %v/%v, want not-set/LibreChat", states[1].Status, states[1].Value)
	}
}

func TestOverridden(t *testing.T) {
	r := New(testRegistry(t))

	c := NewSnapshot()
	c = r.SetExplicitValue(c, "agents.disableBuilder", true)
	c = r.SetExplicitValue(c, "interface.webSearch", false)

	got := r.Overridden(c)
	want := []string{"interface.webSearch", "agents.disableBuilder"} // registry order
	if len(got) != len(want) {
		t.Fatalf("Overridden = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Overridden[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNotSet, "not-set"},
		{StatusExplicitDefault, "explicit-default"},
		{StatusExplicitModified, "explicit-modified"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
