package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Синтаксические
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynMissingToken    Code = 2002
	SynExtraneousToken Code = 2003
	SynIntOutOfRange   Code = 2004
	SynFloatOutOfRange Code = 2005
	SynTooManyErrors   Code = 2006

	// Семантические
	SemaInfo                Code = 3000
	SemaError               Code = 3001
	SemaUnsupportedVersion  Code = 3002
	SemaInvalidVersion      Code = 3003
	SemaDuplicateDecl       Code = 3004
	SemaUnknownIdentifier   Code = 3005
	SemaNoMatchingOverload  Code = 3006
	SemaUnknownFunction     Code = 3007
	SemaIndexOutOfRange     Code = 3008
	SemaInvalidIndexRange   Code = 3009
	SemaExpectedInteger     Code = 3010
	SemaNonConstant         Code = 3011
	SemaNotIndexable        Code = 3012
	SemaBadArraySize        Code = 3013
	SemaMeasureSizeMismatch Code = 3014
	SemaBadParameter        Code = 3015
	SemaConstEvalFailed     Code = 3016
	SemaModifiedMultiQubit  Code = 3017

	// Ввод-вывод и внутренние сбои
	IOLoadFileError Code = 4001
	InternalError   Code = 4002

	// Проект
	ProjInfo               Code = 5000
	ProjManifestInvalid    Code = 5001
	ProjVersionUnsatisfied Code = 5002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Mismatched input",
		SynMissingToken:             "Missing token",
		SynExtraneousToken:          "Extraneous input",
		SynIntOutOfRange:            "Integer literal out of range",
		SynFloatOutOfRange:          "Float literal out of range",
		SynTooManyErrors:            "Too many syntax errors",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaUnsupportedVersion:      "Unsupported cQASM version",
		SemaInvalidVersion:          "Invalid version component",
		SemaDuplicateDecl:           "Duplicate declaration",
		SemaUnknownIdentifier:       "Unknown identifier",
		SemaNoMatchingOverload:      "No matching instruction overload",
		SemaUnknownFunction:         "Unknown function",
		SemaIndexOutOfRange:         "Index out of range",
		SemaInvalidIndexRange:       "Invalid index range",
		SemaExpectedInteger:         "Expected an integer",
		SemaNonConstant:             "Value must be constant",
		SemaNotIndexable:            "Value is not indexable",
		SemaBadArraySize:            "Invalid array size",
		SemaMeasureSizeMismatch:     "Qubit and bit sizes differ",
		SemaBadParameter:            "Invalid instruction parameter",
		SemaConstEvalFailed:         "Constant evaluation failed",
		SemaModifiedMultiQubit:      "Gate modifier on a multi-qubit gate",
		IOLoadFileError:             "Failed to load file",
		InternalError:               "Internal error",
		ProjInfo:                    "Project information",
		ProjManifestInvalid:         "Invalid project manifest",
		ProjVersionUnsatisfied:      "Tool version does not satisfy manifest",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsSyntax reports whether the code belongs to the lexer or parser ranges.
func (c Code) IsSyntax() bool {
	return c >= LexInfo && c < SemaInfo
}
