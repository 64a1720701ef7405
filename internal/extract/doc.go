// Package extract turns individual workspace files into bounded textual
// representations for the assembled document.
//
// Each supported format has an extractor implementing the common
// Supports/Extract contract:
//   - PlainText: head of the file up to a byte limit, truncation marker
//     noting withheld bytes
//   - Notebook: ordered cell walk with embedded binary payloads and HTML
//     dumps replaced by size-noting placeholders
//   - CSV, Excel, SQLDump: header plus a stratified row sample spread
//     across the full row range
//
// Extractors never fail on malformed input. A corrupt notebook or
// unparseable spreadsheet degrades to a best-effort plain-text result
// with an explanatory note; only an unreadable file returns an error.
//
// Sampling is positionally deterministic (evenly spaced indices, no
// randomness), so repeated runs over unchanged input produce identical
// text.
package extract
