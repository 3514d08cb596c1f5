package keys

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreWithDir(t.TempDir())
}

func TestStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("AIza-test-key-1234"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "AIza-test-key-1234" {
		t.Errorf("Get() = %q, want 'AIza-test-key-1234'", got)
	}
}

func TestStore_Get_NoFile(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() = %q, want empty when no file exists", got)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(); err == nil {
		t.Error("Delete() error = nil, want error when nothing stored")
	}

	if err := store.Set("key"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() after Delete() = %q, want empty", got)
	}
}

func TestStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	if err := store.Set("secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("keys.json permissions = %o, want 0600", perm)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreWithDir(dir)
	if err := os.WriteFile(filepath.Join(dir, "keys.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := store.Get(); err == nil {
		t.Error("Get() error = nil, want parse error for corrupt file")
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "*****"},
		{"12345678", "********"},
		{"AIzaSyTestKey12345", "AIza**********2345"},
	}

	for _, tt := range tests {
		if got := MaskKey(tt.key); got != tt.want {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolve_ExplicitKey(t *testing.T) {
	key, source, err := Resolve("explicit", func(string) string { return "from-env" })
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if key != "explicit" {
		t.Errorf("Resolve() key = %q, want 'explicit'", key)
	}
	if !strings.Contains(source, "flag") {
		t.Errorf("Resolve() source = %q, want flag source", source)
	}
}

func TestResolve_EnvFallback(t *testing.T) {
	t.Setenv("NANOBANANA_CONFIG_DIR", t.TempDir())

	key, source, err := Resolve("", func(name string) string {
		if name == EnvVar {
			return "env-key"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if key != "env-key" {
		t.Errorf("Resolve() key = %q, want 'env-key'", key)
	}
	if !strings.Contains(source, EnvVar) {
		t.Errorf("Resolve() source = %q, want env var source", source)
	}
}

func TestResolve_StoredKeyBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NANOBANANA_CONFIG_DIR", dir)

	if err := NewStoreWithDir(dir).Set("stored-key"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	key, _, err := Resolve("", func(string) string { return "env-key" })
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if key != "stored-key" {
		t.Errorf("Resolve() key = %q, want stored key to win over env", key)
	}
}

func TestResolve_Missing(t *testing.T) {
	t.Setenv("NANOBANANA_CONFIG_DIR", t.TempDir())

	_, _, err := Resolve("", func(string) string { return "" })
	if err == nil {
		t.Fatal("Resolve() error = nil, want configuration error")
	}
	if !strings.Contains(err.Error(), EnvVar) {
		t.Errorf("Resolve() error = %v, want mention of %s", err, EnvVar)
	}
}
