package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Скобки
	LintBracketInfo     Code = 1000
	LintUnmatchedCloser Code = 1001
	LintUnmatchedOpener Code = 1002

	// Вызовы функций
	LintCallInfo        Code = 2000
	LintUnknownFunction Code = 2001
	LintArityTooFew     Code = 2002

	// Команды
	LintCommandInfo    Code = 3000
	LintUnknownCommand Code = 3001

	// Подстановки
	LintSubstInfo         Code = 4000
	LintUndefinedRegister Code = 4001

	IOLoadFileError Code = 9001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LintBracketInfo:       "Bracket information",
		LintUnmatchedCloser:   "Unmatched closing bracket",
		LintUnmatchedOpener:   "Unmatched opening bracket",
		LintCallInfo:          "Function call information",
		LintUnknownFunction:   "Unknown function",
		LintArityTooFew:       "Too few arguments",
		LintCommandInfo:       "Command information",
		LintUnknownCommand:    "Unknown command",
		LintSubstInfo:         "Substitution information",
		LintUndefinedRegister: "Undefined named register",
		IOLoadFileError:       "I/O load file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 9000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
