package semantic

import (
	"fmt"
	"io"
	"strconv"
)

// Printer is used to dump a resolved program to text format.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter creates a new program printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the program to the writer.
func Dump(w io.Writer, prog *Program) error {
	return NewPrinter(w).PrintProgram(prog)
}

// PrintProgram prints the version line, the variables and the statements.
//
//	version 3 (api 3.0)
//	var q: qubit array[5]
//	H(qubit array) H q[0, 1, 2, 3, 4]
func (p *Printer) PrintProgram(prog *Program) error {
	p.printf("version %s (api %s)\n", joinVersion(prog.Version.Items), prog.APIVersion)
	for _, v := range prog.Variables {
		if v.Type.IsArray() {
			p.printf("var %s: %s[%d]", v.Name, v.Type, v.Type.Size)
		} else {
			p.printf("var %s: %s", v.Name, v.Type)
		}
		for _, a := range v.Annotations {
			p.printf(" @%s", a)
		}
		p.printf("\n")
	}
	if len(prog.Variables) > 0 && len(prog.Block.Statements) > 0 {
		p.printf("\n")
	}
	for _, ins := range prog.Block.Statements {
		p.PrintInstruction(ins)
	}
	return p.err
}

// PrintInstruction prints one statement on its own line.
func (p *Printer) PrintInstruction(ins *Instruction) {
	switch {
	case ins.Gate != nil:
		p.printf("%s %s", ins.Ref, ins.Gate)
	case ins.Parameter != nil:
		p.printf("%s %s(%s)", ins.Ref, ins.Name, ins.Parameter)
	default:
		p.printf("%s %s", ins.Ref, ins.Name)
	}
	for i, op := range ins.Operands {
		if i == 0 {
			p.printf(" ")
		} else {
			p.printf(", ")
		}
		p.printf("%s", op)
	}
	for _, a := range ins.Annotations {
		p.printf(" @%s", a)
	}
	p.printf("\n")
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func joinVersion(items []int64) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += "."
		}
		out += strconv.FormatInt(it, 10)
	}
	return out
}
