package checkerr

import (
	"errors"
	"fmt"
	"github.com/cottand/narrow/frontend/ast"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that raised them when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	MalformedType
	TypeDoesNotContainType
	FailedTypeResolution
)

func (c ErrCode) String() string {
	switch c {
	case MalformedType:
		return "MalformedType"
	case TypeDoesNotContainType:
		return "TypeDoesNotContainType"
	case FailedTypeResolution:
		return "FailedTypeResolution"
	default:
		return "Unclassified"
	}
}

// CheckError is a defect found in the checked source (or in type text handed to the checker).
// It is terminal for the file being checked.
type CheckError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) CheckError
	getStack() []byte
}

func FormatWithCode(e CheckError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s: %s", stack, e.Code(), e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s: %s", e.Code(), e.Code(), e.Error())
}

func New[E CheckError](err E) CheckError {
	return err.withStack(debug.Stack())
}

// CodeOf returns the ErrCode of the first CheckError in err's chain, and None if there is none
func CodeOf(err error) ErrCode {
	var asCheck CheckError
	if errors.As(err, &asCheck) {
		return asCheck.Code()
	}
	return None
}

type Unclassified struct {
	From error
	ast.Range
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewMalformedType is raised when type text does not match the canonical grammar
type NewMalformedType struct {
	ast.Range
	Text   string
	Offset int
	Reason string
	stack  []byte
}

func (e NewMalformedType) Error() string {
	return fmt.Sprintf("malformed type '%s' at offset %d: %s", e.Text, e.Offset, e.Reason)
}
func (e NewMalformedType) Code() ErrCode    { return MalformedType }
func (e NewMalformedType) getStack() []byte { return e.stack }
func (e NewMalformedType) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewTypeDoesNotContainType is raised when a branch condition excludes every
// remaining possibility for a path, making the check impossible
type NewTypeDoesNotContainType struct {
	ast.Range
	Path      string
	Assertion string
	Existing  string
	stack     []byte
}

func (e NewTypeDoesNotContainType) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("type '%s' cannot satisfy '%s'", e.Existing, e.Assertion)
	}
	return fmt.Sprintf("cannot resolve types for %s: type '%s' does not contain '%s'", e.Path, e.Existing, e.Assertion)
}
func (e NewTypeDoesNotContainType) Code() ErrCode    { return TypeDoesNotContainType }
func (e NewTypeDoesNotContainType) getStack() []byte { return e.stack }
func (e NewTypeDoesNotContainType) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewFailedTypeResolution is raised when narrowing leaves a path without any type
// although the check itself is not self-evidently impossible
type NewFailedTypeResolution struct {
	ast.Range
	Path      string
	Assertion string
	Existing  string
	stack     []byte
}

func (e NewFailedTypeResolution) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("no type of '%s' survives '%s'", e.Existing, e.Assertion)
	}
	return fmt.Sprintf("cannot resolve types for %s with type '%s' and assertion '%s'", e.Path, e.Existing, e.Assertion)
}
func (e NewFailedTypeResolution) Code() ErrCode    { return FailedTypeResolution }
func (e NewFailedTypeResolution) getStack() []byte { return e.stack }
func (e NewFailedTypeResolution) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// At returns err positioned at r, keeping its code and details.
// Errors that are not one of the kinds above are returned as is.
func At(err CheckError, r ast.Range) CheckError {
	switch e := err.(type) {
	case NewMalformedType:
		e.Range = r
		return e
	case NewTypeDoesNotContainType:
		e.Range = r
		return e
	case NewFailedTypeResolution:
		e.Range = r
		return e
	case Unclassified:
		e.Range = r
		return e
	default:
		return err
	}
}

// ForPath returns err annotated with the path being narrowed
func ForPath(err CheckError, path string) CheckError {
	switch e := err.(type) {
	case NewTypeDoesNotContainType:
		e.Path = path
		return e
	case NewFailedTypeResolution:
		e.Path = path
		return e
	default:
		return err
	}
}
