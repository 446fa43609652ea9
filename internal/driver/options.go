package driver

import (
	"fortio.org/safecast"

	"cqasm/internal/observ"
	"cqasm/internal/parser"
	"cqasm/internal/symbols"
)

// Options tune a single Parse/Analyze call. The zero value matches the
// public API: first syntax error only, built-in instruction set.
type Options struct {
	// MaxSyntaxErrors: 0 — по умолчанию (одна ошибка), < 0 — без ограничения.
	MaxSyntaxErrors int
	Timer           *observ.Timer
	Catalog         *symbols.Catalog
	Functions       *symbols.Functions
}

func (o Options) maxSyntaxErrors() uint {
	switch {
	case o.MaxSyntaxErrors == 0:
		return parser.DefaultMaxErrors
	case o.MaxSyntaxErrors < 0:
		return 0
	}
	n, err := safecast.Conv[uint](o.MaxSyntaxErrors)
	if err != nil {
		return parser.DefaultMaxErrors
	}
	return n
}
