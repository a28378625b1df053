package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseInputFile(t *testing.T) {
	t.Run("parses file with comments, blank lines, URLs and handles", func(t *testing.T) {
		content := `# This is a comment
https://twitter.com/alice
https://x.com/bob_

# Another comment
@carol

dave
not a handle!
`
		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "accounts.txt")
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		handles, err := ParseInputFile(filePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"alice", "bob_", "carol", "dave"}
		if len(handles) != len(expected) {
			t.Fatalf("expected %d handles, got %d: %v", len(expected), len(handles), handles)
		}

		for i, h := range handles {
			if h != expected[i] {
				t.Errorf("expected handle[%d] = %q, got %q", i, expected[i], h)
			}
		}
	})

	t.Run("returns error for nonexistent file", func(t *testing.T) {
		_, err := ParseInputFile("/nonexistent/path/file.txt")
		if err == nil {
			t.Error("expected error for nonexistent file, got nil")
		}
	})
}

func TestCollectInputs(t *testing.T) {
	t.Run("combines args and file with deduplication", func(t *testing.T) {
		content := `Alice
https://twitter.com/bob
carol
`
		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "accounts.txt")
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		// alice is also in the file with different case (should be deduplicated)
		args := []string{"alice", "https://x.com/erin"}

		handles, err := CollectInputs(args, filePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"alice", "erin", "bob", "carol"}
		if len(handles) != len(expected) {
			t.Fatalf("expected %d handles, got %d: %v", len(expected), len(handles), handles)
		}

		for i, h := range handles {
			if h != expected[i] {
				t.Errorf("expected handle[%d] = %q, got %q", i, expected[i], h)
			}
		}
	})

	t.Run("works with args only when filePath is empty", func(t *testing.T) {
		args := []string{"@alice", "https://twitter.com/bob/"}

		handles, err := CollectInputs(args, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"alice", "bob"}
		if len(handles) != len(expected) {
			t.Fatalf("expected %d handles, got %d: %v", len(expected), len(handles), handles)
		}

		for i, h := range handles {
			if h != expected[i] {
				t.Errorf("expected handle[%d] = %q, got %q", i, expected[i], h)
			}
		}
	})
}
