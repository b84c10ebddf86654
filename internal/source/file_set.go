package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSet owns the documents of one batch run. IDs are dense indexes in
// insertion order.
type FileSet struct {
	files []File
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// Add stores content under the cleaned, slash-separated path.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	fs.files = append(fs.files, File{
		ID:      FileID(n),
		Path:    cleanPath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// Load reads path, strips a UTF-8 BOM and turns CRLF line ends into LF.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	if bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// Denormalize undoes the normalization Load applied, so text can be
// written back with the file's original BOM and line endings.
func (f *File) Denormalize(text string) []byte {
	out := []byte(text)
	if f.Flags&FileNormalizedCRLF != 0 {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	if f.Flags&FileHadBOM != 0 {
		out = append(append([]byte{}, utf8BOM...), out...)
	}
	return out
}

// AddVirtual adds in-memory content that has no file behind it.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

func (fs *FileSet) Len() int { return len(fs.files) }

// FormatPath renders the path for display. mode is one of "absolute",
// "relative" (to baseDir, or the working directory when empty), "basename"
// or "auto"; auto shortens long absolute paths to their base name.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return cleanPath(abs)
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
