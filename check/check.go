// Package check runs flow-sensitive narrowing over whole files.
package check

import (
	"errors"
	"github.com/cottand/narrow/frontend/ast"
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/flow"
	"github.com/cottand/narrow/frontend/hierarchy"
	"github.com/cottand/narrow/frontend/types"
	"github.com/cottand/narrow/internal/log"
)

var logger = log.DefaultLogger.With("section", "check")

type Options struct {
	// Hierarchy declares classes in addition to the ones in each file.
	// Classes declared in a file win over these. May be nil.
	Hierarchy *hierarchy.Static

	// Context holds the types of paths before the first statement of each file
	Context map[string]types.Union
}

// Result is the outcome of checking one file
type Result struct {
	File    string
	Context *flow.Context
	// Err is the CheckError that ended the file, if any
	Err checkerr.CheckError
}

// TypeOf returns the type path has at the end of the file
func (r *Result) TypeOf(path string) (types.Union, bool) {
	if r.Context == nil {
		return types.Union{}, false
	}
	return r.Context.Get(path)
}

// CheckFile narrows through every statement of file. A contradiction ends the
// file and is returned as a checkerr.CheckError.
func CheckFile(file *ast.File, opts Options) (*Result, error) {
	declared, err := hierarchy.FromFile(file)
	if err != nil {
		return nil, err
	}
	h := opts.Hierarchy.Merge(declared)
	h.Reset()

	checker := flow.NewChecker(h)
	initial := flow.NewContext(opts.Context)
	logger.Debug("checking file", "file", file.Name, "classes", len(h.Names()), "context", initial.String())

	after, err := checker.CheckBlock(initial, file.Stmts)
	if err != nil {
		logger.Debug("file failed", "file", file.Name, "error", err)
		return nil, err
	}
	return &Result{File: file.Name, Context: after}, nil
}

// CheckFiles checks every file independently. A file that fails does not stop
// the others: its Result carries the error, which is also collected.
func CheckFiles(files []*ast.File, opts Options) ([]*Result, *checkerr.Errors) {
	var errs *checkerr.Errors
	results := make([]*Result, 0, len(files))
	for _, file := range files {
		result, err := CheckFile(file, opts)
		if err != nil {
			checkErr := asCheckError(err, file)
			errs = errs.With(checkErr)
			result = &Result{File: file.Name, Err: checkErr}
		}
		results = append(results, result)
	}
	if errs.HasError() {
		logger.Info("files with errors", "errors", errs)
	}
	return results, errs
}

func asCheckError(err error, file *ast.File) checkerr.CheckError {
	var checkErr checkerr.CheckError
	if errors.As(err, &checkErr) {
		return checkErr
	}
	return checkerr.New(checkerr.Unclassified{From: err, Range: file.Range})
}
