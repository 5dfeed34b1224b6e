// Package rd defines the syntax tree for parsed Rd (R documentation)
// markup: a document of tagged sections whose content is a tree of Node
// variants, plus lookup helpers and the plain-text serializer used for
// usage blocks, titles, and alias names.
//
// Invariants:
//   - every subtree is finite and strictly parent-owned;
//   - Text and verbatim variants carry already-decoded content (no escape
//     markers remain).
package rd
