package scan

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Sniffer classifies files as text or binary by inspecting a bounded
// prefix for null bytes. Only the prefix is read, so classification cost
// is constant even for huge files.
type Sniffer struct {
	// PrefixBytes is how much of the file head is inspected.
	PrefixBytes int
}

// NewSniffer creates a sniffer with the given inspection window.
func NewSniffer(prefixBytes int) *Sniffer {
	if prefixBytes <= 0 {
		prefixBytes = 1024
	}
	return &Sniffer{PrefixBytes: prefixBytes}
}

// Classify reports whether the file at path is text or binary.
// Returns an error wrapping ErrUnreadable if the file cannot be opened
// or read; callers treat that as skip-with-warning.
func (s *Sniffer) Classify(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	buf := make([]byte, s.PrefixBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return KindUnknown, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	if bytes.IndexByte(buf[:n], 0) >= 0 {
		return KindBinary, nil
	}
	return KindText, nil
}
