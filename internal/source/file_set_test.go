package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asmod")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFstart:\r\n    STP\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if f.Text() != "start:\n    STP\n" {
		t.Fatalf("unexpected content %q", f.Text())
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %b", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "prog.asmod" {
		t.Fatalf("relative path = %q", got)
	}
}

func TestDenormalizeRestoresBOMAndCRLF(t *testing.T) {
	f := File{Flags: FileHadBOM | FileNormalizedCRLF}
	if got := string(f.Denormalize("a:\n    STP\n")); got != "\xEF\xBB\xBFa:\r\n    STP\r\n" {
		t.Fatalf("Denormalize = %q", got)
	}
	plain := File{}
	if got := string(plain.Denormalize("STP\n")); got != "STP\n" {
		t.Fatalf("Denormalize without flags = %q", got)
	}
}

func TestHashTracksContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("a", []byte("STP"))
	b := fs.AddVirtual("b", []byte("STP"))
	c := fs.AddVirtual("c", []byte("PWR"))
	if fs.Get(a).Hash != fs.Get(b).Hash {
		t.Fatalf("identical content must hash equally")
	}
	if fs.Get(a).Hash == fs.Get(c).Hash {
		t.Fatalf("different content must hash differently")
	}
	if fs.Len() != 3 {
		t.Fatalf("Len = %d", fs.Len())
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.asmod")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := cleanPath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
