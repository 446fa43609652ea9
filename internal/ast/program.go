package ast

import (
	"strconv"
	"strings"

	"cqasm/internal/source"
)

// Ident is a name together with the span of the token that spelled it.
type Ident struct {
	Name string
	Span source.Span
}

// Version is the 'version' header: the raw VERSION_NUMBER text split into components.
type Version struct {
	Items []int64
	Span  source.Span
}

// String joins the components with dots ("3", "3.0").
func (v Version) String() string {
	parts := make([]string, 0, len(v.Items))
	for _, it := range v.Items {
		parts = append(parts, strconv.FormatInt(it, 10))
	}
	return strings.Join(parts, ".")
}

// Program is the root of the CST. Block holds the statements of the global block in source order.
type Program struct {
	Version Version
	Block   []StmtID
	Span    source.Span
}
