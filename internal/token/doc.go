// Package token defines lexical token kinds and trivia for cQASM v3 sources.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - NEW_LINE is a significant token (statement separator), not trivia.
//   - Gate and instruction names (H, CNOT, measure aside) are identifiers.
//     They are recognised by the instruction catalog, not the lexer.
//   - The numeric order of Kind values is the order in which expected-token
//     sets are printed in syntax diagnostics.
package token
