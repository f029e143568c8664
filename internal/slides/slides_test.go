package slides

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// stage builds <dir>/slides with the given subdirectories; names in
// withIndex also receive an index.html.
func stage(t *testing.T, dirs []string, withIndex []string) string {
	t.Helper()
	staged := t.TempDir()
	root := filepath.Join(staged, Dir)

	indexed := make(map[string]bool, len(withIndex))
	for _, name := range withIndex {
		indexed[name] = true
	}

	for _, name := range dirs {
		sub := filepath.Join(root, name)
		if err := os.MkdirAll(sub, 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", sub, err)
		}
		if indexed[name] {
			if err := os.WriteFile(filepath.Join(sub, IndexFile), []byte("<html></html>"), 0o644); err != nil {
				t.Fatalf("writing index: %v", err)
			}
		}
	}
	return staged
}

func TestEnumerate(t *testing.T) {
	tests := []struct {
		name      string
		dirs      []string
		withIndex []string
		want      []string
	}{
		{
			name: "numeric folders sort by value not lexicographically",
			dirs: []string{"10", "2", "0", "1"},
			want: []string{"0", "1", "2", "10"},
		},
		{
			name: "numeric convention ignores non-numeric siblings",
			dirs: []string{"0", "1", "assets"},
			want: []string{"0", "1"},
		},
		{
			name:      "fallback lists indexed directories lexicographically",
			dirs:      []string{"intro", "closing", "demo"},
			withIndex: []string{"intro", "closing", "demo"},
			want:      []string{"closing", "demo", "intro"},
		},
		{
			name:      "fallback skips directories without index.html",
			dirs:      []string{"intro", "assets"},
			withIndex: []string{"intro"},
			want:      []string{"intro"},
		},
		{
			name:      "numeric wins over fallback when both exist",
			dirs:      []string{"0", "intro"},
			withIndex: []string{"intro"},
			want:      []string{"0"},
		},
		{
			name: "no slides at all",
			dirs: []string{"assets"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staged := stage(t, tt.dirs, tt.withIndex)
			got := Enumerate(staged)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Enumerate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnumerate_MissingSlidesDir(t *testing.T) {
	if got := Enumerate(t.TempDir()); got != nil {
		t.Errorf("Enumerate() = %v, want nil for missing slides directory", got)
	}
}

func TestEnumerate_Deterministic(t *testing.T) {
	staged := stage(t, []string{"3", "1", "2"}, nil)
	first := Enumerate(staged)
	for i := 0; i < 5; i++ {
		if got := Enumerate(staged); !reflect.DeepEqual(got, first) {
			t.Fatalf("Enumerate() not deterministic: %v vs %v", got, first)
		}
	}
}
