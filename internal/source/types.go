package source

type (
	// FileID uniquely identifies a tree file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a tree file.
	FileFlags uint8
)

// NoFileID is used for in-memory trees that were never loaded from disk.
const NoFileID FileID = 0

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
)

// File captures metadata and content for a single serialized syntax tree.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}
