package fsops

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRealFS_ValidateIdentifier(t *testing.T) {
	fs := &RealFS{}

	tests := []struct {
		name      string
		id        string
		wantError bool
	}{
		{"uuid", "3b241101-e2bb-4255-8caf-4136c566a962", false},
		{"plain word", "session", false},
		{"empty", "", true},
		{"current directory", ".", true},
		{"parent directory", "..", true},
		{"dot-dot prefix", "..plan", true},
		{"forward slash", "plans/abc", true},
		{"backslash", "plans\\abc", true},
		{"absolute path", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantError %v", tt.id, err, tt.wantError)
			}
		})
	}
}

func TestRealFS_Exists(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	present := filepath.Join(tmpDir, "plan.json")
	if err := os.WriteFile(present, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing file", present, true},
		{"missing file", filepath.Join(tmpDir, "missing.json"), false},
		{"existing directory", tmpDir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.Exists(tt.path)
			if err != nil {
				t.Fatalf("Exists returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		target := filepath.Join(tmpDir, "plans", "nested", "a.json")
		if err := fs.AtomicWrite(target, []byte(`{"name":"a"}`), 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}
		got, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(got) != `{"name":"a"}` {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("replaces existing contents", func(t *testing.T) {
		target := filepath.Join(tmpDir, "session.json")
		if err := os.WriteFile(target, []byte("old"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}
		if err := fs.AtomicWrite(target, []byte("new"), 0600); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}
		got, _ := os.ReadFile(target)
		if string(got) != "new" {
			t.Errorf("content = %q, want new", got)
		}
		info, err := os.Stat(target)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("perm = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".uqplanner-tmp-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}

func TestRealFS_ListFiles(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	for _, name := range []string{"b.json", "a.json", "notes.txt", ".uqplanner-tmp-123.json"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmpDir, "dir.json"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	got, err := fs.ListFiles(tmpDir, ".json")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if want := []string{"a.json", "b.json"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListFiles = %v, want %v", got, want)
	}

	missing, err := fs.ListFiles(filepath.Join(tmpDir, "nope"), ".json")
	if err != nil {
		t.Fatalf("ListFiles on missing dir failed: %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("expected no files, got %v", missing)
	}
}

func TestRealFS_ReadAndRemove(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "plan.json")

	if err := fs.MkdirAll(filepath.Join(tmpDir, "x", "y"), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := fs.MkdirAll(filepath.Join(tmpDir, "x", "y"), 0755); err != nil {
		t.Errorf("second MkdirAll should not fail: %v", err)
	}

	if _, err := fs.ReadFile(target); err == nil {
		t.Error("ReadFile should fail for a missing file")
	}
	if err := os.WriteFile(target, []byte("data"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	got, err := fs.ReadFile(target)
	if err != nil || string(got) != "data" {
		t.Fatalf("ReadFile = %q, %v", got, err)
	}
	if err := fs.Remove(target); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("file should have been removed")
	}
}
