package extract

// Registry dispatches files to extractors by extension. Formats without
// a dedicated extractor fall back to plain text.
type Registry struct {
	extractors []Extractor
	plain      *PlainText
}

// NewRegistry creates a registry with all built-in extractors.
func NewRegistry() *Registry {
	plain := NewPlainText()
	return &Registry{
		extractors: []Extractor{
			NewNotebook(plain),
			NewCSV(plain),
			NewExcel(plain),
			NewSQLDump(plain),
		},
		plain: plain,
	}
}

// ForExt returns the extractor responsible for the given lowercased
// extension. The plain-text extractor is the universal fallback.
func (r *Registry) ForExt(ext string) Extractor {
	for _, e := range r.extractors {
		if e.Supports(ext) {
			return e
		}
	}
	return r.plain
}

// Structured reports whether ext has a dedicated extractor. Structured
// formats bypass the binary sniff: spreadsheets are zip containers and
// would otherwise be misclassified as opaque binary.
func (r *Registry) Structured(ext string) bool {
	for _, e := range r.extractors {
		if e.Supports(ext) {
			return true
		}
	}
	return false
}
