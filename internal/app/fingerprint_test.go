package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFileFingerprint_Deterministic(t *testing.T) {
	first := writeTempFile(t, "a.json", `[{"index": 0, "company": "NETBOOK"}]`)
	second := writeTempFile(t, "b.json", `[{"index": 0, "company": "NETBOOK"}]`)

	hashA, err := FileFingerprint(first)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	hashB, err := FileFingerprint(second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if hashA != hashB {
		t.Errorf("expected identical content to fingerprint identically, got %s and %s", hashA, hashB)
	}
	if len(hashA) != 16 {
		t.Errorf("expected 16 hex characters, got %d (%s)", len(hashA), hashA)
	}
	for _, c := range hashA {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("expected lowercase hex, got %q in %s", c, hashA)
		}
	}
}

func TestFileFingerprint_DiffersOnContent(t *testing.T) {
	first := writeTempFile(t, "a.json", `[{"index": 0, "company": "NETBOOK"}]`)
	second := writeTempFile(t, "b.json", `[{"index": 0, "company": "PERMADYNE"}]`)

	hashA, err := FileFingerprint(first)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	hashB, err := FileFingerprint(second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if hashA == hashB {
		t.Errorf("expected different content to fingerprint differently, both %s", hashA)
	}
}

func TestFileFingerprint_MissingFile(t *testing.T) {
	_, err := FileFingerprint(filepath.Join(t.TempDir(), "absent.json"))

	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
