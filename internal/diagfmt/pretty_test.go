package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cqasm/internal/ast"
	"cqasm/internal/diag"
	"cqasm/internal/lexer"
	"cqasm/internal/parser"
	"cqasm/internal/sema"
	"cqasm/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("version 3;qubit[5] q;H q[0:4;\n")
	fileID := fs.Add("/home/user/project/src/test.cq", content, 0)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynMissingToken, source.Span{File: fileID, Start: 28, End: 28}, "missing ']' at '<EOF>'"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.cq:1:29"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.cq:1:29"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.cq:1:29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("", []byte("version 3;qubit[3] q;X q[3]"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaIndexOutOfRange, source.Span{File: fileID, Start: 23, End: 24}, "index 3 out of range (size 3)"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowCodes: true})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "<unknown>:1:24: ERROR "+diag.SemaIndexOutOfRange.ID()+": index 3 out of range (size 3)" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[2] != "      | "+strings.Repeat(" ", 23)+"^" {
		t.Fatalf("underline = %q", lines[2])
	}
}

func TestUnderlineWidth(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		start, end source.LineCol
		want       string
	}{
		{"point", "abc", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 1, Col: 2}, " ^"},
		{"word", "foo bar", source.LineCol{Line: 1, Col: 5}, source.LineCol{Line: 1, Col: 8}, "    ^~~"},
		{"tab kept", "\tx", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 1, Col: 3}, "\t^"},
		{"wide runes", "日本 x", source.LineCol{Line: 1, Col: 1}, source.LineCol{Line: 1, Col: 3}, "^~~~"},
		{"multiline", "abc", source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 2, Col: 1}, " ^~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := underline(tt.line, tt.start, tt.end); got != tt.want {
				t.Fatalf("underline = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileURI(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "file:///%3Cunknown%3E"},
		{"<unknown>", "file:///%3Cunknown%3E"},
		{"q_gym.cq", "file:///q_gym.cq"},
		{"dir/a b.cq", "file:///dir%2Fa%20b.cq"},
	}
	for _, tt := range tests {
		if got := FileURI(tt.in); got != tt.want {
			t.Errorf("FileURI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestErrorsJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("", []byte("version 3;qubit[5] q;H q[0:4;"))
	d := diag.NewError(diag.SynMissingToken, source.Span{File: fileID, Start: 28, End: 28}, "missing ']' at '<EOF>'")

	got, err := ErrorsJSON([]diag.Diagnostic{d}, fs, "")
	if err != nil {
		t.Fatalf("ErrorsJSON: %v", err)
	}
	want := `{"errors":[{"range":{"start":{"line":1,"character":29},"end":{"line":1,"character":29}},` +
		`"message":"missing ']' at '<EOF>'","severity":1,"relatedInformation":[{"location":` +
		`{"uri":"file:///%3Cunknown%3E","range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}}},` +
		`"message":"<unknown error message>"}]}]}`
	if got != want {
		t.Fatalf("ErrorsJSON mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestErrorsJSONFilename(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("q_gym.cq", []byte("version 3;qubit[3] q;X q[3]"))
	d := diag.NewError(diag.SemaIndexOutOfRange, source.Span{File: fileID, Start: 23, End: 24}, "index 3 out of range (size 3)")

	out := BuildErrorsOutput([]diag.Diagnostic{d}, fs, "q_gym.cq")
	if len(out.Errors) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(out.Errors))
	}
	e := out.Errors[0]
	if e.Range.Start != (PositionJSON{Line: 1, Character: 24}) || e.Range.End != (PositionJSON{Line: 1, Character: 25}) {
		t.Fatalf("range = %+v", e.Range)
	}
	if e.RelatedInformation[0].Location.URI != "file:///q_gym.cq" {
		t.Fatalf("uri = %q", e.RelatedInformation[0].Location.URI)
	}
}

func parse(t *testing.T, input string) (*ast.Tree, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("", []byte(input)))
	bag := diag.NewBag(10)
	res := parser.ParseFile(file, ast.NewBuilder(ast.Hints{}), parser.DefaultOptions(diag.BagReporter{Bag: bag}))
	if res.Tree == nil {
		t.Fatalf("parse %q: %v", input, bag.Items())
	}
	return res.Tree, fs
}

func TestCSTJSON(t *testing.T) {
	tree, fs := parse(t, "version 3;qubit[5] q;Rx(pi/2) q[0, 2:3]")
	got, err := CSTJSON(tree, fs)
	if err != nil {
		t.Fatalf("CSTJSON: %v", err)
	}
	for _, want := range []string{
		`{"Program":{"version":{"Version":{"items":"3","source_location":"<unknown>:1:9..10"}}`,
		`{"GlobalBlock":{"statements":[`,
		`{"Variable":{"name":{"Identifier":{"name":"q"}},"typ":{"Type":{"name":{"Keyword":{"name":"qubit"}},"size":{"IntegerLiteral":{"value":"5"}}`,
		`"name":{"Identifier":{"name":"Rx"}},"parameter":{"DivisionExpression":`,
		`{"IndexItem":{"index":{"IntegerLiteral":{"value":"0","source_location":"<unknown>:1:33..34"}}}}`,
		`{"IndexRange":{"first":`,
		`"annotations":"[]"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("CST JSON missing %s\n%s", want, got)
		}
	}
}

func TestCSTJSONEmpties(t *testing.T) {
	tree, fs := parse(t, "version 3")
	got, err := CSTJSON(tree, fs)
	if err != nil {
		t.Fatalf("CSTJSON: %v", err)
	}
	if !strings.Contains(got, `{"GlobalBlock":{"statements":"[]"}}`) {
		t.Fatalf("empty block must serialize as \"[]\": %s", got)
	}
}

func TestCSTJSONGolden(t *testing.T) {
	tree, fs := parse(t, "version 3;qubit[5] q;bit[5] b;H q[0:4];b = measure q")
	got, err := CSTJSON(tree, fs)
	if err != nil {
		t.Fatalf("CSTJSON: %v", err)
	}
	want := `{"Program":{"version":{"Version":{"items":"3","source_location":"<unknown>:1:9..10"}},"block":{"GlobalBlock":{"statements":[` +
		`{"Variable":{"name":{"Identifier":{"name":"q"}},"typ":{"Type":{"name":{"Keyword":{"name":"qubit"}},"size":{"IntegerLiteral":{"value":"5"}},"source_location":"<unknown>:1:11..19"}},"annotations":"[]","source_location":"<unknown>:1:20..21"}},` +
		`{"Variable":{"name":{"Identifier":{"name":"b"}},"typ":{"Type":{"name":{"Keyword":{"name":"bit"}},"size":{"IntegerLiteral":{"value":"5"}},"source_location":"<unknown>:1:22..28"}},"annotations":"[]","source_location":"<unknown>:1:29..30"}},` +
		`{"Gate":{"name":{"Identifier":{"name":"H"}},"operands":{"ExpressionList":{"items":[{"Index":{"expr":{"Identifier":{"name":"q"}},"indices":{"IndexList":{"items":[{"IndexRange":{"first":{"IntegerLiteral":{"value":"0","source_location":"<unknown>:1:35..36"}},"last":{"IntegerLiteral":{"value":"4","source_location":"<unknown>:1:37..38"}}}}]}},"source_location":"<unknown>:1:33..34"}}]}},"annotations":"[]","source_location":"<unknown>:1:31..32"}},` +
		`{"MeasureInstruction":{"name":{"Identifier":{"name":"measure"}},"lhs":{"Identifier":{"name":"b","source_location":"<unknown>:1:40..41"}},"rhs":{"Identifier":{"name":"q","source_location":"<unknown>:1:52..53"}},"annotations":"[]","source_location":"<unknown>:1:44..51"}}]}}}}`
	if got != want {
		t.Fatalf("CST JSON mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestCSTJSONModifiersAndAnnotations(t *testing.T) {
	tree, fs := parse(t, "version 3;qubit[2] q @ hw.pin;pow(2).inv.X q[0] @ sched.at(1, q)")
	got, err := CSTJSON(tree, fs)
	if err != nil {
		t.Fatalf("CSTJSON: %v", err)
	}
	for _, want := range []string{
		`"annotations":[{"AnnotationData":{"interface":{"Identifier":{"name":"hw"}},"operation":{"Identifier":{"name":"pin"}},"operands":"-","source_location":"<unknown>:1:22..30"}}]`,
		`{"Gate":{"name":{"Identifier":{"name":"pow"}},"gate":{"Gate":{"name":{"Identifier":{"name":"inv"}},"gate":{"Gate":{"name":{"Identifier":{"name":"X"}},"source_location":"<unknown>:1:42..43"}},"source_location":"<unknown>:1:38..41"}},` +
			`"parameter":{"IntegerLiteral":{"value":"2","source_location":"<unknown>:1:35..36"}},"operands":{"ExpressionList":`,
		`"annotations":[{"AnnotationData":{"interface":{"Identifier":{"name":"sched"}},"operation":{"Identifier":{"name":"at"}},"operands":{"ExpressionList":{"items":[{"IntegerLiteral":{"value":"1"`,
		`"source_location":"<unknown>:1:31..34"}}]}}}}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("CST JSON missing %s\n%s", want, got)
		}
	}
}

func TestProgramJSONModifiersAndAnnotations(t *testing.T) {
	tree, _ := parse(t, "version 3;float[2] f;qubit q @ hw.pin(7);pow(2).X q @ sched.late")
	res := sema.Check(tree, sema.Options{Reporter: diag.NopReporter{}})
	if res.Program == nil {
		t.Fatalf("unexpected %d semantic errors", res.Errors)
	}
	got, err := ProgramJSON(res.Program)
	if err != nil {
		t.Fatalf("ProgramJSON: %v", err)
	}
	for _, want := range []string{
		`{"GateInstruction":{"instruction_ref":"1q_X(qubit)","name":"pow","gate":{"Gate":{"name":"pow","gate":{"Gate":{"name":"X"}},"parameter":{"ConstFloat":{"value":"2.0"}}}},"operands":[`,
		`"annotations":[{"AnnotationData":{"interface":"sched","operation":"late","operands":"[]"}}]`,
		`{"Variable":{"name":"f","typ":{"FloatArray":{"size":"2"}},"annotations":"[]"}}`,
		`{"Variable":{"name":"q","typ":{"Qubit":{}},"annotations":[{"AnnotationData":{"interface":"hw","operation":"pin","operands":[{"ConstInt":{"value":"7"}}]}}]}}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("program JSON missing %s\n%s", want, got)
		}
	}
	if strings.Contains(got, `"parameter":"-"`) {
		t.Fatalf("absent parameters must be omitted: %s", got)
	}
}

func TestErrorsJSONEscapesMessage(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.cq", []byte("version 3\n\nqubit[17]\nH q"))
	// перевод строки после qubit[17]: смещение 20
	d := diag.NewError(diag.SynMissingToken, source.Span{File: fileID, Start: 20, End: 21}, `missing IDENTIFIER at '\n'`)
	bad := diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 22, End: 23}, "mismatched input '\xff' expecting \"x\"\t")

	got, err := ErrorsJSON([]diag.Diagnostic{d, bad}, fs, "")
	if err != nil {
		t.Fatalf("ErrorsJSON: %v", err)
	}
	for _, want := range []string{
		`"range":{"start":{"line":3,"character":10},"end":{"line":3,"character":11}},"message":"missing IDENTIFIER at '\u005Cn'"`,
		`"message":"mismatched input '\u00FF' expecting \u0022x\u0022\u0009"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("errors JSON missing %s\n%s", want, got)
		}
	}
}

func TestEscapedTextKeepsUnicode(t *testing.T) {
	b, err := EscapedText("π ok").MarshalJSON()
	if err != nil || string(b) != `"π ok"` {
		t.Fatalf("got %s, %v", b, err)
	}
}

func TestProgramJSON(t *testing.T) {
	tree, _ := parse(t, "version 3;qubit[5] q;bit[5] b;H q[0:4];b = measure q")
	res := sema.Check(tree, sema.Options{Reporter: diag.NopReporter{}})
	if res.Program == nil {
		t.Fatalf("unexpected %d semantic errors", res.Errors)
	}
	got, err := ProgramJSON(res.Program)
	if err != nil {
		t.Fatalf("ProgramJSON: %v", err)
	}
	for _, want := range []string{
		`{"Program":{"api_version":"3.0","version":{"Version":{"items":"3"}}`,
		`{"GateInstruction":{"instruction_ref":"H(qubit array)","name":"H","operands":[{"IndexRef"`,
		`"indices":[{"ConstInt":{"value":"0"}},{"ConstInt":{"value":"1"}},{"ConstInt":{"value":"2"}},{"ConstInt":{"value":"3"}},{"ConstInt":{"value":"4"}}]`,
		`{"NonGateInstruction":{"instruction_ref":"measure(bit array, qubit array)","name":"measure"`,
		`"variables":[{"Variable":{"name":"q","typ":{"QubitArray":{"size":"5"}},"annotations":"[]"}}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("program JSON missing %s\n%s", want, got)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("", []byte("version 3 // c\n")))
	toks := lexer.All(file, lexer.Options{})

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(pretty.String(), `"version" at 1:1-1:8`) {
		t.Fatalf("pretty dump:\n%s", pretty.String())
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks, fs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"kind": "EOF"`) {
		t.Fatalf("json dump must end with EOF:\n%s", js.String())
	}
}
