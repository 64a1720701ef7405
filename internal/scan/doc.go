// Package scan discovers the files of a workspace and prepares them for
// extraction.
//
// The main components are:
//   - Walker: deterministic file-tree traversal producing an ordered file
//     list and a rendered tree map
//   - Ruleset: directory/file/extension exclusion plus gitignore-style
//     pattern matching loaded from the workspace root
//   - Sniffer: text-vs-binary classification from a bounded content prefix
//
// Traversal order is directory-then-name lexical order. Downstream budget
// decisions depend on files arriving in a fixed order, so this ordering is
// a contract: two walks of an unchanged workspace yield identical lists.
package scan
