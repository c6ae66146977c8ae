package emitter

import (
	"fmt"
	"regexp"
	"strings"

	"xcpp/internal/transpiler"
)

var (
	assignRe    = regexp.MustCompile(`^(\w+)\s*([+\-*/%]?=)([^=].*)$`)
	returnRe    = regexp.MustCompile(`^return\s+(\w+);$`)
	negateRe    = regexp.MustCompile(`!\s*(\w+)`)
	localDeclRe = regexp.MustCompile(`^(\w+)\s+(\w+)\s*;$`)
	localCtorRe = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\(([^()]*)\)\s*;$`)
	callRe      = regexp.MustCompile(`(\w+)\.(\w+)\s*\(([^()]*)\)`)
	freeCallRe  = regexp.MustCompile(`\b(\w+)\s*\(([^()]*)\)`)
	wordRe      = regexp.MustCompile(`\b(\w+)\b`)
)

// bodyTranslator rewrites raw C++ statement lines into their C equivalents:
// member access becomes self-> access, class-typed locals gain lifecycle
// init calls, method calls become mangled free-function calls with an
// explicit instance argument, and overloaded free-function calls are bound
// to their mangled overload by arity.
//
// The rewriting is line-oriented and intentionally shallow; statements it
// does not recognize pass through unchanged.
type bodyTranslator struct {
	unit   *transpiler.Unit
	class  *transpiler.ClassModel
	fields map[string]string // member name -> self-> access path
	static map[string]string // static member name -> emitted name
	locals map[string]*transpiler.ClassModel

	overloaded map[string]bool // free function names with >1 overload
}

func newBodyTranslator(unit *transpiler.Unit, class *transpiler.ClassModel) *bodyTranslator {
	t := &bodyTranslator{
		unit:       unit,
		class:      class,
		fields:     make(map[string]string),
		static:     make(map[string]string),
		locals:     make(map[string]*transpiler.ClassModel),
		overloaded: make(map[string]bool),
	}

	// Field access paths walk the embedded-base chain: a base member x on a
	// derived instance is self->base.x.
	path := ""
	for c := class; c != nil; c = c.Base {
		for _, f := range c.LayoutFields {
			if f.IsBase {
				continue
			}
			if _, shadowed := t.fields[f.Name]; !shadowed {
				t.fields[f.Name] = path + f.Name
			}
		}
		for _, s := range c.Statics {
			if _, shadowed := t.static[s.Name]; !shadowed {
				t.static[s.Name] = s.EmittedName
			}
		}
		path += "base."
	}

	counts := make(map[string]int)
	for _, fn := range unit.Functions {
		counts[fn.Decl.Name]++
	}
	for name, n := range counts {
		if n > 1 {
			t.overloaded[name] = true
		}
	}
	return t
}

func (t *bodyTranslator) translate(body string) []string {
	var out []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			out = append(out, line)
			continue
		}
		out = append(out, t.statement(line)...)
	}
	return out
}

func (t *bodyTranslator) statement(line string) []string {
	// Class-typed local with constructor arguments:
	// Point p(1, 2); -> Point p; Point_init_int_int(&p, 1, 2);
	if m := localCtorRe.FindStringSubmatch(line); m != nil {
		if class := t.unit.ClassByName(m[1]); class != nil {
			t.locals[m[2]] = class
			args := strings.TrimSpace(m[3])
			init := t.ctorByArity(class, argCount(args))
			call := fmt.Sprintf("%s(&%s)", init, m[2])
			if args != "" {
				call = fmt.Sprintf("%s(&%s, %s)", init, m[2], args)
			}
			return []string{fmt.Sprintf("%s %s;", m[1], m[2]), call + ";"}
		}
	}

	// Plain class-typed local: LED led; -> LED led; LED_init(&led);
	if m := localDeclRe.FindStringSubmatch(line); m != nil {
		if class := t.unit.ClassByName(m[1]); class != nil {
			t.locals[m[2]] = class
			return []string{line, fmt.Sprintf("%s_init(&%s);", m[1], m[2])}
		}
	}

	line = t.rewriteMethodCalls(line)
	line = t.rewriteFreeCalls(line)
	if t.class != nil {
		line = t.rewriteMemberAccess(line)
	}
	return []string{line}
}

// rewriteMethodCalls turns var.method(args) into Cls_method(&var, args) for
// locals whose class is known.
func (t *bodyTranslator) rewriteMethodCalls(line string) string {
	return callRe.ReplaceAllStringFunc(line, func(call string) string {
		m := callRe.FindStringSubmatch(call)
		class, ok := t.locals[m[1]]
		if !ok {
			return call
		}
		name, recv := t.methodByArity(class, m[2], argCount(m[3]))
		if name == "" {
			return call
		}
		args := strings.TrimSpace(m[3])
		instance := "&" + m[1] + recv
		if args == "" {
			return fmt.Sprintf("%s(%s)", name, instance)
		}
		return fmt.Sprintf("%s(%s, %s)", name, instance, args)
	})
}

// rewriteFreeCalls binds calls to overloaded free functions to the mangled
// overload matching the argument count.
func (t *bodyTranslator) rewriteFreeCalls(line string) string {
	return freeCallRe.ReplaceAllStringFunc(line, func(call string) string {
		m := freeCallRe.FindStringSubmatch(call)
		if !t.overloaded[m[1]] {
			return call
		}
		argc := argCount(m[2])
		for _, fn := range t.unit.Functions {
			if fn.Decl.Name == m[1] && len(fn.Params) == argc {
				return fmt.Sprintf("%s(%s)", fn.EmittedName, m[2])
			}
		}
		return call
	})
}

// rewriteMemberAccess applies the self-> rewriting for assignments, returns,
// and negations of known members, in the shape the field paths dictate.
func (t *bodyTranslator) rewriteMemberAccess(line string) string {
	if m := assignRe.FindStringSubmatch(line); m != nil {
		if path, ok := t.fields[m[1]]; ok {
			line = fmt.Sprintf("self->%s %s%s", path, m[2], t.rewriteExprMembers(m[3]))
		} else if emitted, ok := t.static[m[1]]; ok {
			line = fmt.Sprintf("%s %s%s", emitted, m[2], t.rewriteExprMembers(m[3]))
		}
	}
	if m := returnRe.FindStringSubmatch(line); m != nil {
		if path, ok := t.fields[m[1]]; ok {
			line = fmt.Sprintf("return self->%s;", path)
		} else if emitted, ok := t.static[m[1]]; ok {
			line = fmt.Sprintf("return %s;", emitted)
		}
	}
	line = negateRe.ReplaceAllStringFunc(line, func(s string) string {
		name := strings.TrimSpace(strings.TrimPrefix(s, "!"))
		if path, ok := t.fields[name]; ok {
			return "!self->" + path
		}
		if emitted, ok := t.static[name]; ok {
			return "!" + emitted
		}
		return s
	})
	return line
}

// rewriteExprMembers qualifies bare member names on the right-hand side of
// an assignment.
func (t *bodyTranslator) rewriteExprMembers(expr string) string {
	return wordRe.ReplaceAllStringFunc(expr, func(word string) string {
		if path, ok := t.fields[word]; ok {
			return "self->" + path
		}
		if emitted, ok := t.static[word]; ok {
			return emitted
		}
		return word
	})
}

// methodByArity finds the emitted name for a method call, walking the base
// chain. The second return value is the embedded-base accessor appended to
// the instance argument (".base" per inherited level).
func (t *bodyTranslator) methodByArity(class *transpiler.ClassModel, name string, argc int) (string, string) {
	recv := ""
	for c := class; c != nil; c = c.Base {
		var fallback string
		for _, m := range c.Methods {
			if m.Decl.Name != name {
				continue
			}
			if len(m.Params) == argc {
				return m.EmittedName, recv
			}
			if fallback == "" {
				fallback = m.EmittedName
			}
		}
		if fallback != "" {
			return fallback, recv
		}
		recv += ".base"
	}
	return "", ""
}

func (t *bodyTranslator) ctorByArity(class *transpiler.ClassModel, argc int) string {
	for _, c := range class.Ctors {
		if len(c.Params) == argc {
			return c.EmittedName
		}
	}
	return class.Name + "_init"
}

func argCount(args string) int {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0
	}
	return strings.Count(args, ",") + 1
}
