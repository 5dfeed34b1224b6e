// Package token defines lexical token kinds for the Rd markup lexer.
// Invariants:
//   - Token.Span matches Text byte-for-byte except for escape sequences:
//     the lexer emits `\{`, `\}`, `\%`, and `\\` as one-character Text
//     tokens whose Span still covers both source bytes.
//   - Comments (`%` through the next newline) never appear in the stream.
//   - Line and Col locate the token start; Col counts Unicode scalar
//     values, not bytes.
package token
