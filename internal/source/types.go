package source

// FileID indexes a File in its FileSet.
type FileID uint32

// FileFlags records how a file was obtained and normalized.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded document. Content is already normalized; Hash is the
// SHA-256 of Content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}

// Text returns the normalized file content.
func (f *File) Text() string { return string(f.Content) }

// Position is a zero-based (line, character) pair. Characters are counted in
// code points of the line.
type Position struct {
	Line int
	Char int
}
