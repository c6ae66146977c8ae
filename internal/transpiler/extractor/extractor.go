// Package extractor ingests the external front-end's textual AST dump and
// produces the flat declaration list consumed by the model builder.
//
// The dump format is the clang -ast-dump tree: one node per line, nesting
// encoded by the "| "/"|-"/"`-" prefix, each node carrying a kind tag, a
// declared name, and a quoted type string. The extractor does not invoke the
// front-end; it only consumes its output. Source text, when provided, is
// used to attach raw member bodies by brace matching.
package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"xcpp/internal/diag"
	"xcpp/internal/transpiler"
)

var (
	recordRe = regexp.MustCompile(`CXXRecordDecl\b.*\b(?:class|struct) (\w+) definition`)
	fieldRe  = regexp.MustCompile(`FieldDecl\b.* (\w+) '([^']+)'`)
	staticRe = regexp.MustCompile(`VarDecl\b.* (\w+) '([^']+)'.*\bstatic\b`)
	methodRe = regexp.MustCompile(`CXXMethodDecl\b.* (operator\S+|\w+) '([^']+)'`)
	ctorRe   = regexp.MustCompile(`CXXConstructorDecl\b.* (\w+) '([^']+)'`)
	dtorRe   = regexp.MustCompile(`CXXDestructorDecl\b.* ~(\w+) '([^']+)'`)
	funcRe   = regexp.MustCompile(`FunctionDecl\b.* (\w+) '([^']+)'`)
	baseRe   = regexp.MustCompile(`^(?:public|private|protected)(?: virtual)? '(\w+)'$`)
)

// unsupportedKinds are node kinds outside the translatable subset. Their
// whole subtree is dropped with an UnsupportedConstruct diagnostic.
var unsupportedKinds = []string{
	"ClassTemplateDecl",
	"FunctionTemplateDecl",
	"ClassTemplateSpecializationDecl",
	"LambdaExpr",
	"NamespaceDecl",
	"UsingDirectiveDecl",
}

type astDumpExtractor struct {
	diags *diag.Collector
}

// NewASTDumpExtractor creates a transpiler.DeclarationExtractor that reads
// clang AST dump text.
func NewASTDumpExtractor(diags *diag.Collector) transpiler.DeclarationExtractor {
	return &astDumpExtractor{diags: diags}
}

// Extract walks the dump line by line and emits declarations in source
// order. A structurally invalid dump (a member node with no enclosing class)
// aborts the whole unit with an error; unsupported constructs only drop
// their own subtree.
func (e *astDumpExtractor) Extract(dump string, source string) ([]transpiler.Declaration, error) {
	var decls []transpiler.Declaration
	var current *transpiler.ClassDecl
	currentDepth := -1
	skipDepth := -1

	closeCurrent := func() {
		if current != nil {
			decls = append(decls, *current)
			current = nil
			currentDepth = -1
		}
	}

	for _, raw := range strings.Split(dump, "\n") {
		depth, content := splitNode(raw)
		if content == "" {
			continue
		}

		// Drop the remainder of an unsupported subtree.
		if skipDepth >= 0 {
			if depth > skipDepth {
				continue
			}
			skipDepth = -1
		}

		if current != nil && depth <= currentDepth {
			closeCurrent()
		}

		// Implicit members are compiler-synthesized; the emitter makes its
		// own lifecycle functions.
		if strings.Contains(content, " implicit ") {
			continue
		}

		if kind, ok := unsupportedKind(content); ok {
			e.diags.Warnf(diag.CodeUnsupportedConstruct, className(current), "",
				"%s %q is outside the supported subset, skipping", kind, nodeName(content))
			skipDepth = depth
			continue
		}

		switch {
		case strings.Contains(content, "CXXRecordDecl"):
			m := recordRe.FindStringSubmatch(content)
			if m == nil {
				// Forward declaration or anonymous record; nothing to model.
				continue
			}
			if current != nil {
				e.diags.Warnf(diag.CodeUnsupportedConstruct, current.Name, m[1],
					"nested class %q is outside the supported subset, skipping", m[1])
				skipDepth = depth
				continue
			}
			current = &transpiler.ClassDecl{Name: m[1]}
			currentDepth = depth

		case baseRe.MatchString(content):
			if current == nil {
				return nil, fmt.Errorf("base specifier %q outside a class definition", content)
			}
			m := baseRe.FindStringSubmatch(content)
			if current.Base == "" {
				current.Base = m[1]
			} else {
				current.ExtraBases = append(current.ExtraBases, m[1])
			}

		case strings.Contains(content, "FieldDecl"):
			if current == nil {
				return nil, fmt.Errorf("field declaration outside a class definition: %s", content)
			}
			if m := fieldRe.FindStringSubmatch(content); m != nil {
				current.Fields = append(current.Fields, transpiler.FieldDecl{Name: m[1], Type: m[2]})
			}

		case strings.Contains(content, "VarDecl") && current != nil:
			if m := staticRe.FindStringSubmatch(content); m != nil {
				current.Fields = append(current.Fields, transpiler.FieldDecl{Name: m[1], Type: m[2], IsStatic: true})
			}

		case strings.Contains(content, "CXXConstructorDecl"):
			if current == nil {
				return nil, fmt.Errorf("constructor declaration outside a class definition: %s", content)
			}
			if m := ctorRe.FindStringSubmatch(content); m != nil {
				params, _, _ := parseSignature(m[2])
				current.Ctors = append(current.Ctors, transpiler.CtorDecl{Params: params})
			}

		case strings.Contains(content, "CXXDestructorDecl"):
			if current == nil {
				return nil, fmt.Errorf("destructor declaration outside a class definition: %s", content)
			}
			if dtorRe.MatchString(content) {
				current.Dtor = &transpiler.DtorDecl{}
			}

		case strings.Contains(content, "CXXMethodDecl"):
			if current == nil {
				return nil, fmt.Errorf("method declaration outside a class definition: %s", content)
			}
			m := methodRe.FindStringSubmatch(content)
			if m == nil {
				continue
			}
			params, ret, isConst := parseSignature(m[2])
			method := transpiler.MethodDecl{
				Name:       m[1],
				Params:     params,
				ReturnType: ret,
				IsConst:    isConst,
				IsStatic:   hasTrailingKeyword(content, "static"),
			}
			if op, ok := strings.CutPrefix(m[1], "operator"); ok && op != "" {
				method.IsOperator = true
				method.Operator = op
			}
			current.Methods = append(current.Methods, method)

		case strings.Contains(content, "FunctionDecl"):
			closeCurrent()
			m := funcRe.FindStringSubmatch(content)
			if m == nil {
				continue
			}
			params, ret, _ := parseSignature(m[2])
			decls = append(decls, transpiler.FreeFunctionDecl{
				Name:       m[1],
				Params:     params,
				ReturnType: ret,
			})
		}
	}
	closeCurrent()

	if source != "" {
		attachBodies(decls, source)
	}
	return decls, nil
}

// splitNode separates a dump line into its nesting depth and node content.
// The prefix alphabet is '|', '`', '-', and spaces; depth is half the prefix
// width, matching clang's two-column indentation.
func splitNode(line string) (int, string) {
	i := 0
	for i < len(line) {
		switch line[i] {
		case '|', '`', '-', ' ':
			i++
		default:
			return i / 2, strings.TrimSpace(line[i:])
		}
	}
	return 0, ""
}

func unsupportedKind(content string) (string, bool) {
	for _, kind := range unsupportedKinds {
		if strings.HasPrefix(content, kind+" ") || content == kind {
			return kind, true
		}
	}
	return "", false
}

// nodeName pulls the declared name out of a node line for diagnostics.
// Uses the last bare word before the quoted type, falling back to the last
// word of the line.
func nodeName(content string) string {
	if idx := strings.Index(content, " '"); idx > 0 {
		content = content[:idx]
	}
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func className(c *transpiler.ClassDecl) string {
	if c == nil {
		return ""
	}
	return c.Name
}

// hasTrailingKeyword checks for a bare keyword after the quoted type string,
// where clang puts storage-class markers.
func hasTrailingKeyword(content, keyword string) bool {
	idx := strings.LastIndex(content, "'")
	if idx < 0 {
		return false
	}
	for _, f := range strings.Fields(content[idx+1:]) {
		if f == keyword {
			return true
		}
	}
	return false
}

// parseSignature splits a dump type string like "bool (int, float) const"
// into parameter list, return type, and constness. Parameter names are not
// present in the type string, so positional names a, b, c, ... are
// synthesized.
func parseSignature(sig string) ([]transpiler.Param, string, bool) {
	open := strings.Index(sig, "(")
	if open < 0 {
		return nil, strings.TrimSpace(sig), false
	}
	close := strings.LastIndex(sig, ")")
	if close < open {
		return nil, strings.TrimSpace(sig[:open]), false
	}

	ret := strings.TrimSpace(sig[:open])
	if ret == "" {
		ret = "void"
	}
	isConst := strings.Contains(sig[close+1:], "const")

	inner := strings.TrimSpace(sig[open+1 : close])
	if inner == "" || inner == "void" {
		return nil, ret, isConst
	}

	var params []transpiler.Param
	for i, t := range strings.Split(inner, ",") {
		params = append(params, transpiler.Param{
			Name: paramName(i),
			Type: strings.TrimSpace(t),
		})
	}
	return params, ret, isConst
}

// paramName yields a, b, ..., z, p26, p27, ... for positional parameters.
func paramName(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return fmt.Sprintf("p%d", i)
}
