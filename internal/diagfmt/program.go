package diagfmt

import (
	"cqasm/internal/semantic"
	"cqasm/internal/types"
)

type programJSON struct {
	APIVersion string `json:"api_version"`
	Version    any    `json:"version"`
	Block      any    `json:"block"`
	Variables  any    `json:"variables"`
}

type versionJSON struct {
	Items string `json:"items"`
}

type instructionJSON struct {
	InstructionRef string `json:"instruction_ref"`
	Name           string `json:"name"`
	Gate           any    `json:"gate,omitempty"`
	Parameter      any    `json:"parameter,omitempty"`
	Operands       any    `json:"operands"`
	Annotations    any    `json:"annotations"`
}

type semanticGateJSON struct {
	Name      string `json:"name"`
	Gate      any    `json:"gate,omitempty"`
	Parameter any    `json:"parameter,omitempty"`
}

type annotationJSON struct {
	Interface string `json:"interface"`
	Operation string `json:"operation"`
	Operands  any    `json:"operands"`
}

type variableJSON struct {
	Name        string `json:"name"`
	Typ         any    `json:"typ"`
	Annotations any    `json:"annotations"`
}

type sizeJSON struct {
	Size string `json:"size"`
}

type valueJSON struct {
	Value string `json:"value"`
}

type variableRefJSON struct {
	Variable any `json:"variable"`
}

type indexRefJSON struct {
	Variable any `json:"variable"`
	Indices  any `json:"indices"`
}

// ProgramJSON renders an analyzed program in its tagged JSON form.
func ProgramJSON(prog *semantic.Program) (string, error) {
	return marshalCompact(BuildProgram(prog))
}

// BuildProgram builds the tagged document without serializing it.
func BuildProgram(prog *semantic.Program) any {
	stmts := make([]any, 0, len(prog.Block.Statements))
	for _, instr := range prog.Block.Statements {
		stmts = append(stmts, instruction(instr))
	}
	vars := make([]any, 0, len(prog.Variables))
	for _, v := range prog.Variables {
		vars = append(vars, variable(v))
	}
	return tag("Program", programJSON{
		APIVersion: prog.APIVersion,
		Version:    tag("Version", versionJSON{Items: versionItems(prog.Version)}),
		Block:      tag("Block", statementsJSON{Statements: list(stmts)}),
		Variables:  list(vars),
	})
}

func versionItems(v semantic.Version) string {
	out := ""
	for i, item := range v.Items {
		if i > 0 {
			out += "."
		}
		out += semantic.ConstInt{Value: item}.String()
	}
	return out
}

func instruction(instr *semantic.Instruction) any {
	out := instructionJSON{
		InstructionRef: instr.Ref,
		Name:           instr.Name,
		Operands:       values(instr.Operands),
		Annotations:    annotations(instr.Annotations),
	}
	if instr.Gate != nil {
		out.Gate = gateChain(instr.Gate)
	}
	if instr.Parameter != nil {
		out.Parameter = value(instr.Parameter)
	}
	return tag(instr.Kind.String(), out)
}

func gateChain(g *semantic.Gate) any {
	out := semanticGateJSON{Name: g.Name}
	if g.Gate != nil {
		out.Gate = gateChain(g.Gate)
	}
	if g.Parameter != nil {
		out.Parameter = value(g.Parameter)
	}
	return tag("Gate", out)
}

func values(in []semantic.Value) any {
	out := make([]any, 0, len(in))
	for _, v := range in {
		out = append(out, value(v))
	}
	return list(out)
}

func variable(v *semantic.Variable) any {
	return tag("Variable", variableJSON{
		Name:        v.Name,
		Typ:         typeNode(v.Type),
		Annotations: annotations(v.Annotations),
	})
}

func annotations(in []semantic.AnnotationData) any {
	out := make([]any, 0, len(in))
	for _, a := range in {
		out = append(out, tag("AnnotationData", annotationJSON{
			Interface: a.Interface,
			Operation: a.Operation,
			Operands:  values(a.Operands),
		}))
	}
	return list(out)
}

func typeNode(t types.Type) any {
	if t.IsArray() {
		return tag(t.Kind.NodeName(), sizeJSON{Size: semantic.ConstInt{Value: t.Size}.String()})
	}
	return tag(t.Kind.NodeName(), struct{}{})
}

func value(v semantic.Value) any {
	switch v := v.(type) {
	case semantic.ConstBool:
		return tag("ConstBool", valueJSON{Value: v.String()})
	case semantic.ConstInt:
		return tag("ConstInt", valueJSON{Value: v.String()})
	case semantic.ConstFloat:
		return tag("ConstFloat", valueJSON{Value: v.String()})
	case semantic.VariableRef:
		return tag("VariableRef", variableRefJSON{Variable: variable(v.Variable)})
	case semantic.IndexRef:
		indices := make([]any, 0, len(v.Indices))
		for _, idx := range v.Indices {
			indices = append(indices, value(idx))
		}
		return tag("IndexRef", indexRefJSON{Variable: variable(v.Variable), Indices: list(indices)})
	}
	return emptyMaybe
}
