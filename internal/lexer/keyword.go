package lexer

// keywords maps guash's reserved words to their token Kind (spec.md §4.3).
// TRUE/FALSE/NULL are deliberately absent here — they're recognized inline
// by identifierToken since they don't map to a Kind of their own (TRUE/FALSE
// become Integer literals, NULL becomes KwNull).
var keywords = map[string]Kind{
	"if":       KwIf,
	"elseif":   KwElseif,
	"else":     KwElse,
	"while":    KwWhile,
	"do":       KwDo,
	"for":      KwFor,
	"foreach":  KwForeach,
	"function": KwFunction,
	"try":      KwTry,
	"catch":    KwCatch,
	"test":     KwTest,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"exit":     KwExit,
}
