package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	framesDir := filepath.Join(tmpDir, "frames")
	otherDir := filepath.Join(tmpDir, "other")
	for _, d := range []string{framesDir, otherDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	outside := filepath.Join(otherDir, "frame.png")
	if err := os.WriteFile(outside, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	inside := filepath.Join(framesDir, "frame_000.png")
	if err := os.WriteFile(inside, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(framesDir, "link.png")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(otherDir, filepath.Join(framesDir, "linkdir")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(inside, filepath.Join(framesDir, "alias.png")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	tests := []struct {
		name      string
		filePath  string
		wantError bool
	}{
		{"file in dir", inside, false},
		{"missing file in dir", filepath.Join(framesDir, "frame_999.png"), false},
		{"missing nested file", filepath.Join(framesDir, "a", "b.png"), false},
		{"symlink inside dir", filepath.Join(framesDir, "alias.png"), false},
		{"dot dot", filepath.Join(framesDir, "..", "other", "frame.png"), true},
		{"sibling", outside, true},
		{"symlink escaping", filepath.Join(framesDir, "link.png"), true},
		{"file under escaping dir link", filepath.Join(framesDir, "linkdir", "new.png"), true},
		{"root", "/", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinDirectory(tt.filePath, framesDir)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidatePathWithinDirectory(%q) error = %v, wantError %v", tt.filePath, err, tt.wantError)
			}
		})
	}
}

func TestValidatePathWithinDirectory_MissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if err := ValidatePathWithinDirectory(filepath.Join(missing, "f.png"), missing); err == nil {
		t.Error("expected error for a directory that does not exist")
	}
}
