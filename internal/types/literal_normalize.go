package types

import "golang.org/x/text/unicode/norm"

// NormalizeLiteralString applies Unicode NFC normalization to a literal
// pattern's string/bytes payload before comparison, per §9
// "String/bytes literal canonicalization": "café" (NFC) and "café" (NFD)
// must denote the same literal type.
//
// Grounded on the teacher's lexer boundary normalization
// (internal/lexer/normalize.go's Normalize), applied here at the literal
// comparison boundary instead of the lexer boundary.
func NormalizeLiteralString(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
