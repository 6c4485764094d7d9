package filter

import (
	"path/filepath"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"

	"github.com/fsdedup/hardlinker/pkg/paths"
)

// File is the expression environment for one candidate file.
type File struct {
	Name string
	Path string
	Ext  string
	Size int64
}

// CompiledExpression pairs an expression with its source text for reporting.
type CompiledExpression struct {
	Text    string
	Program *vm.Program
}

// Compile compiles the given filter expressions against the File environment.
// Every expression must evaluate to a boolean.
func Compile(expressions []string) ([]CompiledExpression, error) {
	compiled := make([]CompiledExpression, 0, len(expressions))

	for _, text := range expressions {
		program, err := expr.Compile(text, expr.Env(&File{}), expr.AsBool())
		if err != nil {
			return nil, errors.Wrapf(err, "compile expression %q", text)
		}
		compiled = append(compiled, CompiledExpression{Text: text, Program: program})
	}

	return compiled, nil
}

// MatchAll reports whether every expression matches the record. A file is
// only registered for deduplication when all filters agree.
func MatchAll(r *paths.Record, expressions []CompiledExpression) (bool, error) {
	if len(expressions) == 0 {
		return true, nil
	}

	env := &File{
		Name: filepath.Base(r.Path),
		Path: r.Path,
		Ext:  filepath.Ext(r.Path),
		Size: r.Size(),
	}

	for _, expression := range expressions {
		result, err := expr.Run(expression.Program, env)
		if err != nil {
			return false, errors.Wrapf(err, "run expression %q", expression.Text)
		}

		match, ok := result.(bool)
		if !ok {
			return false, errors.Errorf("expression %q did not evaluate to a boolean", expression.Text)
		}

		if !match {
			return false, nil
		}
	}

	return true, nil
}
