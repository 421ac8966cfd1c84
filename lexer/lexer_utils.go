package lexer

import (
	"fmt"
	"strconv"
)

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

// parseFloat converts a scanned numeric lexeme to its float64 value. The
// lexeme is guaranteed well-formed by scanNumber, so a parse failure here
// would be an internal invariant violation, not user input.
func parseFloat(lexeme string) float64 {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		panic(fmt.Sprintf("lexer: malformed number literal %q: %v", lexeme, err))
	}
	return v
}
