package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xcpp/internal/diag"
	"xcpp/internal/transpiler"
)

const ledDump = `TranslationUnitDecl 0x1 <<invalid sloc>> <invalid sloc>
|-CXXRecordDecl 0x2 <led.cpp:1:1, line:12:1> line:1:7 class LED definition
| |-FieldDecl 0x3 <line:3:5, col:9> col:9 pin 'int'
| |-FieldDecl 0x4 <line:4:5, col:10> col:10 state 'bool'
| |-CXXConstructorDecl 0x5 <line:6:5, line:6:12> col:5 LED 'void ()'
| |-CXXMethodDecl 0x6 <line:8:5, line:10:5> col:10 isOn 'bool () const'
| ` + "`" + `-CXXDestructorDecl 0x7 <line:11:5, col:12> col:5 ~LED 'void ()'
` + "`" + `-FunctionDecl 0x8 <line:14:1, line:16:1> line:14:5 main 'int ()'
`

func extract(t *testing.T, dump, source string) ([]transpiler.Declaration, *diag.Collector) {
	t.Helper()
	diags := diag.NewCollector()
	e := NewASTDumpExtractor(diags)
	decls, err := e.Extract(dump, source)
	require.NoError(t, err)
	return decls, diags
}

func TestExtractClass(t *testing.T) {
	decls, diags := extract(t, ledDump, "")
	require.Len(t, decls, 2)
	assert.Equal(t, 0, diags.Len())

	class, ok := decls[0].(transpiler.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, "LED", class.Name)
	assert.Empty(t, class.Base)

	require.Len(t, class.Fields, 2)
	assert.Equal(t, transpiler.FieldDecl{Name: "pin", Type: "int"}, class.Fields[0])
	assert.Equal(t, transpiler.FieldDecl{Name: "state", Type: "bool"}, class.Fields[1])

	require.Len(t, class.Ctors, 1)
	assert.Empty(t, class.Ctors[0].Params)
	require.NotNil(t, class.Dtor)

	require.Len(t, class.Methods, 1)
	m := class.Methods[0]
	assert.Equal(t, "isOn", m.Name)
	assert.Equal(t, "bool", m.ReturnType)
	assert.True(t, m.IsConst)
	assert.False(t, m.IsStatic)
	assert.Empty(t, m.Params)

	fn, ok := decls[1].(transpiler.FreeFunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, "int", fn.ReturnType)
}

func TestExtractInheritance(t *testing.T) {
	dump := `TranslationUnitDecl 0x1 <<invalid sloc>> <invalid sloc>
|-CXXRecordDecl 0x2 <dev.cpp:1:1, line:5:1> line:1:7 class Device definition
| |-FieldDecl 0x3 <line:2:5, col:9> col:9 id 'int'
| |-FieldDecl 0x4 <line:3:5, col:10> col:10 enabled 'bool'
` + "`" + `-CXXRecordDecl 0x5 <line:7:1, line:10:1> line:7:7 class Sensor definition
  |-public 'Device'
  ` + "`" + `-FieldDecl 0x6 <line:8:5, col:11> col:11 value 'float'
`
	decls, diags := extract(t, dump, "")
	require.Len(t, decls, 2)
	assert.Equal(t, 0, diags.Len())

	sensor := decls[1].(transpiler.ClassDecl)
	assert.Equal(t, "Sensor", sensor.Name)
	assert.Equal(t, "Device", sensor.Base)
	assert.Empty(t, sensor.ExtraBases)
	require.Len(t, sensor.Fields, 1)
	assert.Equal(t, "value", sensor.Fields[0].Name)
}

func TestExtractMultipleBases(t *testing.T) {
	dump := `|-CXXRecordDecl 0x1 <t.cpp:1:1, line:3:1> line:1:7 class Both definition
| |-public 'A'
| |-public 'B'
`
	decls, _ := extract(t, dump, "")
	require.Len(t, decls, 1)

	class := decls[0].(transpiler.ClassDecl)
	assert.Equal(t, "A", class.Base)
	assert.Equal(t, []string{"B"}, class.ExtraBases)
}

func TestExtractStaticMembers(t *testing.T) {
	dump := `|-CXXRecordDecl 0x1 <t.cpp:1:1, line:5:1> line:1:7 class Counter definition
| |-VarDecl 0x2 <line:2:5, col:16> col:16 total 'int' static
| |-CXXMethodDecl 0x3 <line:3:5, col:20> col:16 bump 'void (int)' static
`
	decls, _ := extract(t, dump, "")
	class := decls[0].(transpiler.ClassDecl)

	require.Len(t, class.Fields, 1)
	assert.True(t, class.Fields[0].IsStatic)
	assert.Equal(t, "total", class.Fields[0].Name)

	require.Len(t, class.Methods, 1)
	assert.True(t, class.Methods[0].IsStatic)
	require.Len(t, class.Methods[0].Params, 1)
	assert.Equal(t, "a", class.Methods[0].Params[0].Name)
	assert.Equal(t, "int", class.Methods[0].Params[0].Type)
}

func TestExtractOperator(t *testing.T) {
	dump := `|-CXXRecordDecl 0x1 <t.cpp:1:1, line:4:1> line:1:7 class Vec definition
| |-FieldDecl 0x2 <line:2:5, col:9> col:9 x 'int'
| |-CXXMethodDecl 0x3 <line:3:5, col:30> col:9 operator+ 'Vec (const Vec &)'
`
	decls, _ := extract(t, dump, "")
	class := decls[0].(transpiler.ClassDecl)

	require.Len(t, class.Methods, 1)
	m := class.Methods[0]
	assert.True(t, m.IsOperator)
	assert.Equal(t, "+", m.Operator)
	assert.Equal(t, "Vec", m.ReturnType)
	require.Len(t, m.Params, 1)
	assert.Equal(t, "const Vec &", m.Params[0].Type)
}

func TestExtractSkipsTemplateSubtree(t *testing.T) {
	dump := `|-ClassTemplateDecl 0x1 <t.cpp:1:1, line:5:1> line:2:7 Box
| |-TemplateTypeParmDecl 0x2 <line:1:10, col:19> col:19 T
| ` + "`" + `-CXXRecordDecl 0x3 <line:2:1, line:5:1> line:2:7 class Box definition
|   ` + "`" + `-FieldDecl 0x4 <line:3:5, col:7> col:7 item 'T'
` + "`" + `-CXXRecordDecl 0x5 <line:7:1, line:9:1> line:7:7 class Plain definition
  ` + "`" + `-FieldDecl 0x6 <line:8:5, col:9> col:9 n 'int'
`
	decls, diags := extract(t, dump, "")

	// The templated class is dropped; its sibling survives.
	require.Len(t, decls, 1)
	class := decls[0].(transpiler.ClassDecl)
	assert.Equal(t, "Plain", class.Name)

	items := diags.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.CodeUnsupportedConstruct, items[0].Code)
	assert.Contains(t, items[0].Message, "ClassTemplateDecl")
}

func TestExtractSkipsImplicitMembers(t *testing.T) {
	dump := `|-CXXRecordDecl 0x1 <t.cpp:1:1, line:4:1> line:1:7 class Pod definition
| |-CXXConstructorDecl 0x2 <line:1:7> col:7 implicit Pod 'void ()' noexcept-unevaluated
| ` + "`" + `-FieldDecl 0x3 <line:2:5, col:9> col:9 n 'int'
`
	decls, _ := extract(t, dump, "")
	class := decls[0].(transpiler.ClassDecl)
	assert.Empty(t, class.Ctors)
	assert.Len(t, class.Fields, 1)
}

func TestExtractMalformedInput(t *testing.T) {
	dump := `|-FieldDecl 0x1 <t.cpp:1:1, col:9> col:9 orphan 'int'
`
	e := NewASTDumpExtractor(diag.NewCollector())
	_, err := e.Extract(dump, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside a class definition")
}

func TestExtractAttachesBodies(t *testing.T) {
	source := `class LED {
public:
    int pin;
    bool state;
    LED() {
        pin = 5;
    }
    bool isOn() const {
        return state;
    }
    ~LED() {
    }
};

int main() {
    LED led;
    return 0;
}
`
	decls, _ := extract(t, ledDump, source)
	class := decls[0].(transpiler.ClassDecl)

	require.True(t, class.Ctors[0].HasBody)
	assert.Equal(t, "pin = 5;", class.Ctors[0].Body)

	require.True(t, class.Methods[0].HasBody)
	assert.Equal(t, "return state;", class.Methods[0].Body)

	fn := decls[1].(transpiler.FreeFunctionDecl)
	require.True(t, fn.HasBody)
	assert.Contains(t, fn.Body, "LED led;")
	assert.Contains(t, fn.Body, "return 0;")
}

func TestExtractOverloadBodiesByOccurrence(t *testing.T) {
	dump := `|-FunctionDecl 0x1 <t.cpp:1:1, line:3:1> line:1:5 add 'int (int, int)'
` + "`" + `-FunctionDecl 0x2 <line:5:1, line:7:1> line:5:7 add 'float (float, float)'
`
	source := `int add(int a, int b) {
    return a + b;
}
float add(float a, float b) {
    return a - b;
}
`
	decls, _ := extract(t, dump, source)
	require.Len(t, decls, 2)

	first := decls[0].(transpiler.FreeFunctionDecl)
	second := decls[1].(transpiler.FreeFunctionDecl)
	assert.Equal(t, "return a + b;", first.Body)
	assert.Equal(t, "return a - b;", second.Body)
}

func TestSplitNode(t *testing.T) {
	tests := []struct {
		line    string
		depth   int
		content string
	}{
		{"TranslationUnitDecl 0x1", 0, "TranslationUnitDecl 0x1"},
		{"|-CXXRecordDecl 0x2 foo", 1, "CXXRecordDecl 0x2 foo"},
		{"| |-FieldDecl 0x3", 2, "FieldDecl 0x3"},
		{"| `-CXXDestructorDecl 0x4", 2, "CXXDestructorDecl 0x4"},
		{"", 0, ""},
	}
	for _, tt := range tests {
		depth, content := splitNode(tt.line)
		assert.Equal(t, tt.depth, depth, tt.line)
		assert.Equal(t, tt.content, content, tt.line)
	}
}

func TestParseSignature(t *testing.T) {
	params, ret, isConst := parseSignature("bool () const")
	assert.Empty(t, params)
	assert.Equal(t, "bool", ret)
	assert.True(t, isConst)

	params, ret, isConst = parseSignature("int (int, float)")
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, "int", params[0].Type)
	assert.Equal(t, "b", params[1].Name)
	assert.Equal(t, "float", params[1].Type)
	assert.Equal(t, "int", ret)
	assert.False(t, isConst)

	params, ret, _ = parseSignature("void (void)")
	assert.Empty(t, params)
	assert.Equal(t, "void", ret)
}
