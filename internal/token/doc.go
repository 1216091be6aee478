// Package token defines lexical token kinds and trivia for the Strata front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Built-in type names (int, float, bool, string) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
//   - Comments never appear in the main token stream; they ride along as
//     leading Trivia of the next token.
package token
