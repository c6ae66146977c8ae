package extractor

import (
	"regexp"
	"strings"

	"xcpp/internal/transpiler"
)

// attachBodies pairs the declarations with raw bodies scraped from the
// source text. The dump itself carries no statement text, so bodies are
// located by brace matching, the same technique the front-end's own dump
// consumers use. Overloads are paired by occurrence order, which matches
// declaration order within one class or file scope.
func attachBodies(decls []transpiler.Declaration, source string) {
	freeSeen := map[string]int{}

	for i, d := range decls {
		switch decl := d.(type) {
		case transpiler.ClassDecl:
			attachClassBodies(&decl, source)
			decls[i] = decl
		case transpiler.FreeFunctionDecl:
			n := freeSeen[decl.Name]
			freeSeen[decl.Name]++
			if body, ok := findBody(source, memberPattern(decl.Name), n); ok {
				decl.Body = body
				decl.HasBody = true
			}
			decls[i] = decl
		}
	}
}

func attachClassBodies(decl *transpiler.ClassDecl, source string) {
	classRe := regexp.MustCompile(`class\s+` + decl.Name + `\b[^{;]*\{`)
	loc := classRe.FindStringIndex(source)
	if loc == nil {
		return
	}
	content, ok := braceBlock(source, loc[1]-1)
	if !ok {
		return
	}

	methodSeen := map[string]int{}
	for i := range decl.Methods {
		m := &decl.Methods[i]
		n := methodSeen[m.Name]
		methodSeen[m.Name]++
		if body, ok := findBody(content, memberPattern(m.Name), n); ok {
			m.Body = body
			m.HasBody = true
		}
	}

	ctorPat := regexp.MustCompile(`\b` + decl.Name + `\s*\([^)]*\)\s*(?::[^{};]*)?\{`)
	for i := range decl.Ctors {
		if body, ok := findBodyRe(content, ctorPat, i); ok {
			decl.Ctors[i].Body = body
			decl.Ctors[i].HasBody = true
		}
	}

	if decl.Dtor != nil {
		dtorPat := regexp.MustCompile(`~` + decl.Name + `\s*\(\s*\)\s*\{`)
		if body, ok := findBodyRe(content, dtorPat, 0); ok {
			decl.Dtor.Body = body
			decl.Dtor.HasBody = true
		}
	}
}

func memberPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\([^)]*\)\s*(?:const\s*)?\{`)
}

// findBody locates the n-th definition matching pat and returns its
// brace-matched body text.
func findBody(text string, pat *regexp.Regexp, n int) (string, bool) {
	return findBodyRe(text, pat, n)
}

func findBodyRe(text string, pat *regexp.Regexp, n int) (string, bool) {
	locs := pat.FindAllStringIndex(text, -1)
	if n >= len(locs) {
		return "", false
	}
	return braceBlock(text, locs[n][1]-1)
}

// braceBlock returns the trimmed content between the brace at openIdx and
// its matching closing brace.
func braceBlock(text string, openIdx int) (string, bool) {
	if openIdx < 0 || openIdx >= len(text) || text[openIdx] != '{' {
		return "", false
	}
	depth := 0
	for i := openIdx; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[openIdx+1 : i]), true
			}
		}
	}
	return "", false
}
