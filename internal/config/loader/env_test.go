package loader

import (
	"testing"
	"testing/fstest"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

func noEnv(string) (string, bool) { return "", false }

func TestParseDotenv(t *testing.T) {
	data := []byte(`
# Server
APP_TITLE="My Chat"
PORT=3090
export USE_REDIS=true
EMAIL_FROM_NAME='Support Team'
ENDPOINTS=openAI, agents
HOST=localhost # inline comment
EMPTY=
`)

	vars, err := ParseDotenv(data)
	if err != nil {
		t.Fatalf("ParseDotenv failed: %v", err)
	}

	tests := map[string]string{
		"APP_TITLE":       "My Chat",
		"PORT":            "3090",
		"USE_REDIS":       "true",
		"EMAIL_FROM_NAME": "Support Team",
		"ENDPOINTS":       "openAI, agents",
		"HOST":            "localhost",
		"EMPTY":           "",
	}

	for key, want := range tests {
		if got, ok := vars[key]; !ok || got != want {
			t.Errorf("vars[%s] = %q (present=%v), want %q", key, got, ok, want)
		}
	}
}

func TestParseDotenvErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing equals", "JUST_A_KEY"},
		{"empty key", "=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDotenv([]byte(tt.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestEnvLoaderLoad(t *testing.T) {
	reg := registry.NewWithDefaults()

	fs := fstest.MapFS{
		".env": &fstest.MapFile{Data: []byte(
			"APP_TITLE=My Chat\nPORT=3090\nUSE_REDIS=true\nENDPOINTS=openAI,agents\nUNRELATED_KEY=ignored\n",
		)},
	}

	l := NewEnvLoaderWithLookup(reg, fs, ".env", noEnv)
	result, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, _ := dotpath.Get(result.Values, "app.title"); got != "My Chat" {
		t.Errorf("app.title = %v, want My Chat", got)
	}
	if got, _ := dotpath.Get(result.Values, "server.port"); got != 3090 {
		t.Errorf("server.port = %v, want 3090 (coerced int)", got)
	}
	if got, _ := dotpath.Get(result.Values, "cache.useRedis"); got != true {
		t.Errorf("cache.useRedis = %v, want true (coerced bool)", got)
	}

	endpoints, _ := dotpath.Get(result.Values, "endpoints.enabled")
	if !dotpath.Equal(endpoints, []string{"openAI", "agents"}) {
		t.Errorf("endpoints.enabled = %v, want [openAI agents]", endpoints)
	}

	want := map[string]bool{
		"app.title":         true,
		"server.port":       true,
		"cache.useRedis":    true,
		"endpoints.enabled": true,
	}
	if len(result.Explicit) != len(want) {
		t.Errorf("Explicit = %v, want %d entries", result.Explicit, len(want))
	}
	for _, id := range result.Explicit {
		if !want[id] {
			t.Errorf("unexpected explicit field %s", id)
		}
	}
}

func TestEnvLoaderProcessEnvOverridesFile(t *testing.T) {
	reg := registry.NewWithDefaults()

	fs := fstest.MapFS{
		".env": &fstest.MapFile{Data: []byte("PORT=3090\n")},
	}
	lookup := func(key string) (string, bool) {
		if key == "PORT" {
			return "8080", true
		}
		return "", false
	}

	l := NewEnvLoaderWithLookup(reg, fs, ".env", lookup)
	result, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, _ := dotpath.Get(result.Values, "server.port"); got != 8080 {
		t.Errorf("server.port = %v, want 8080 (process env wins)", got)
	}
}

func TestEnvLoaderMissingFile(t *testing.T) {
	reg := registry.NewWithDefaults()

	l := NewEnvLoaderWithLookup(reg, fstest.MapFS{}, "absent.env", noEnv)
	result, err := l.Load()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(result.Explicit) != 0 {
		t.Errorf("Explicit = %v, want empty", result.Explicit)
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name  string
		field registry.Field
		input string
		want  any
	}{
		{"bool true", registry.Field{Type: registry.TypeBool}, "true", true},
		{"bool on", registry.Field{Type: registry.TypeBool}, "on", true},
		{"bool false", registry.Field{Type: registry.TypeBool}, "FALSE", false},
		{"bool garbage stays string", registry.Field{Type: registry.TypeBool}, "maybe", "maybe"},
		{"int", registry.Field{Type: registry.TypeInt}, "42", 42},
		{"int garbage stays string", registry.Field{Type: registry.TypeInt}, "many", "many"},
		{"float", registry.Field{Type: registry.TypeFloat}, "1.5", 1.5},
		{"string", registry.Field{Type: registry.TypeString}, "plain", "plain"},
		{"array", registry.Field{Type: registry.TypeArray}, "a, b,c", []string{"a", "b", "c"}},
		{"empty array", registry.Field{Type: registry.TypeArray}, "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceValue(&tt.field, tt.input)
			if !dotpath.Equal(got, tt.want) {
				t.Errorf("CoerceValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.want, tt.want)
			}
		})
	}
}
