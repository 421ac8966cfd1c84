package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanTokensOperators(t *testing.T) {
	toks, errs := New("!= == <= >= < > = ! + - * /").ScanTokens()
	require.Empty(t, errs)

	want := []TokenType{
		BANG_EQUAL, EQUAL_EQUAL, LESS_EQUAL, GREATER_EQUAL,
		LESS, GREATER, EQUAL, BANG, PLUS, MINUS, STAR, SLASH, EOF,
	}
	require.Len(t, toks, len(want))
	for i, ty := range want {
		require.Equal(t, ty, toks[i].Type, "token %d", i)
	}
}

func TestScanTokensNumberTrailingDot(t *testing.T) {
	toks, errs := New("123.").ScanTokens()
	require.Empty(t, errs)
	require.Equal(t, NUMBER, toks[0].Type)
	require.Equal(t, 123.0, toks[0].Literal)
	require.Equal(t, DOT, toks[1].Type)
}

func TestScanTokensString(t *testing.T) {
	toks, errs := New(`"hello\nworld"`).ScanTokens()
	require.Empty(t, errs)
	require.Equal(t, STRING, toks[0].Type)
	require.Equal(t, `hello\nworld`, toks[0].Literal)
}

func TestScanTokensUnterminatedString(t *testing.T) {
	_, errs := New(`"oops`).ScanTokens()
	require.Len(t, errs, 1)
	require.Equal(t, 1, errs[0].Line)
}

func TestScanTokensKeywordsVsIdentifiers(t *testing.T) {
	toks, errs := New("class fun superb").ScanTokens()
	require.Empty(t, errs)
	require.Equal(t, CLASS, toks[0].Type)
	require.Equal(t, FUN, toks[1].Type)
	require.Equal(t, IDENTIFIER, toks[2].Type)
}

func TestScanTokensUnexpectedCharacterKeepsScanning(t *testing.T) {
	toks, errs := New("var a = 1 @ 2;").ScanTokens()
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "[line 1]")

	var numbers int
	for _, tok := range toks {
		if tok.Type == NUMBER {
			numbers++
		}
	}
	require.Equal(t, 2, numbers)
}

func TestScanTokensMultilineStringCountsLines(t *testing.T) {
	toks, errs := New("\"a\nb\"\nvar").ScanTokens()
	require.Empty(t, errs)
	require.Equal(t, STRING, toks[0].Type)
	require.Equal(t, "a\nb", toks[0].Literal)
	require.Equal(t, 3, toks[1].Line)
}

func TestScanTokensLineCounting(t *testing.T) {
	toks, errs := New("var a = 1;\n// a comment\nvar b = 2;").ScanTokens()
	require.Empty(t, errs)
	var lastVarLine int
	for _, tok := range toks {
		if tok.Type == VAR {
			lastVarLine = tok.Line
		}
	}
	require.Equal(t, 3, lastVarLine)
}
