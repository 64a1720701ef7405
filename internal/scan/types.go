package scan

// Kind classifies a file's content.
type Kind int

const (
	// KindUnknown means the file has not been sniffed yet.
	KindUnknown Kind = iota
	// KindText means no null byte was found in the inspected prefix.
	KindText
	// KindBinary means a null byte was found in the inspected prefix.
	KindBinary
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// SourceFile is one discovered file. It is immutable after discovery
// except for Kind, which the sniffer fills in later.
type SourceFile struct {
	// Path is the absolute path on disk.
	Path string

	// Rel is the path relative to the workspace root, with forward
	// slashes. Used in section headers and the tree map.
	Rel string

	// Size is the byte size at discovery time.
	Size int64

	// Ext is the lowercased extension including the dot, or "".
	Ext string

	// Kind is the sniffed content classification.
	Kind Kind
}

// Workspace is the result of walking a root directory.
type Workspace struct {
	// Root is the cleaned absolute workspace root.
	Root string

	// Files are the discovered files in traversal order.
	Files []SourceFile

	// Tree is the rendered tree map of every visited entry, including
	// files whose content will later be skipped.
	Tree string

	// Ignored counts files excluded by name sets or ignore patterns.
	Ignored int

	// Unreadable counts directories whose contents could not be
	// listed and were skipped.
	Unreadable int
}
