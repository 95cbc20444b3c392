// If you are AI: This file implements the per-file style checks.

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

const maxLines = 300

// checkFile returns the violations found in one file.
func checkFile(path string, data []byte) []string {
	var failures []string
	content := string(data)

	if lines := strings.Count(content, "\n"); lines > maxLines {
		failures = append(failures, fmt.Sprintf("%s: %d lines (max %d)", path, lines, maxLines))
	}
	if !strings.Contains(content, "If you are AI:") {
		failures = append(failures, fmt.Sprintf("%s: missing 'If you are AI:' header", path))
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		return append(failures, fmt.Sprintf("%s: %v", path, err))
	}
	return append(failures, missingComments(fset, path, f)...)
}

// missingComments lists functions without a doc comment.
func missingComments(fset *token.FileSet, path string, f *ast.File) []string {
	var failures []string
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fn.Doc == nil || len(fn.Doc.List) == 0 {
			pos := fset.Position(fn.Pos())
			failures = append(failures, fmt.Sprintf("%s:%d: function %s missing comment", path, pos.Line, fn.Name.Name))
		}
	}
	return failures
}
