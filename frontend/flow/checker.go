// Package flow walks statements carrying a Context of path types, narrowing it
// on every branch of an if/elseif/else chain and joining the branches again
// where control flow meets.
package flow

import (
	"errors"
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/cottand/narrow/frontend/ast"
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/clause"
	"github.com/cottand/narrow/frontend/types"
	"github.com/cottand/narrow/internal/log"
	"github.com/cottand/narrow/util"
	"log/slog"
)

// Checker narrows Contexts through statements.
//
// A Checker is not safe for concurrent use; Reset it between files.
type Checker struct {
	Hierarchy types.Hierarchy

	logger   *slog.Logger
	formulas map[formulaKey]extracted
	// resolving holds the property paths whose declared type is being looked up
	resolving util.MSet[string]
}

func NewChecker(h types.Hierarchy) *Checker {
	if h == nil {
		h = types.NoHierarchy{}
	}
	return &Checker{
		Hierarchy: h,
		logger:    ast.NodeLogger(log.DefaultLogger.With("section", "flow")),
		formulas:  make(map[formulaKey]extracted),
		resolving: util.NewEmptySet[string](),
	}
}

// Reset forgets everything cached from previous runs
func (c *Checker) Reset() {
	c.formulas = make(map[formulaKey]extracted)
	c.resolving = util.NewEmptySet[string]()
}

// CheckBlock walks stmts starting from ctx, which is left untouched, and
// returns the Context at the end of the block. A contradiction found in a
// branch condition is returned as a checkerr.CheckError and ends the walk.
func (c *Checker) CheckBlock(ctx *Context, stmts []ast.Stmt) (*Context, error) {
	after, _, err := c.checkStmts(ctx.Clone(), stmts)
	return after, err
}

// checkStmts returns the Context after stmts and whether control leaves
// the block before its end
func (c *Checker) checkStmts(ctx *Context, stmts []ast.Stmt) (*Context, bool, error) {
	for _, stmt := range stmts {
		var exits bool
		var err error
		ctx, exits, err = c.checkStmt(ctx, stmt)
		if err != nil {
			return nil, false, err
		}
		if exits {
			return ctx, true, nil
		}
	}
	return ctx, false, nil
}

func (c *Checker) checkStmt(ctx *Context, stmt ast.Stmt) (*Context, bool, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		if s == nil {
			return ctx, false, nil
		}
		return c.checkStmts(ctx, s.Stmts)

	case *ast.Assign:
		path, ok := ast.PathOf(s.Target)
		if !ok {
			c.logger.Debug("assignment to untracked target", "stmt", s)
			return ctx, false, nil
		}
		u := c.TypeOf(ctx, s.Value)
		ctx.Assign(path, u)
		c.logger.Debug("assign", "path", path, "type", u.String())
		return ctx, false, nil

	case *ast.If:
		return c.checkIf(ctx, s)

	default:
		return ctx, ast.Exits(s), nil
	}
}

type ifArm struct {
	cond ast.Expr // nil for the else arm
	body *ast.Block
	at   ast.Range
}

func armsOf(s *ast.If) []ifArm {
	arms := []ifArm{{cond: s.Cond, body: s.Then, at: ast.RangeOf(s.Cond)}}
	for _, elseIf := range s.ElseIfs {
		arms = append(arms, ifArm{cond: elseIf.Cond, body: elseIf.Body, at: ast.RangeOf(elseIf.Cond)})
	}
	if s.Else != nil {
		return append(arms, ifArm{body: s.Else, at: s.Else.Range})
	}
	// the implicit else still narrows, so impossible negations are reported
	return append(arms, ifArm{at: s.Range})
}

func (c *Checker) checkIf(ctx *Context, s *ast.If) (*Context, bool, error) {
	c.logger.Debug("if", "stmt", s, "context", ctx.String())

	var notPrevious clause.Formula
	var survivors []*Context
	for _, arm := range armsOf(s) {
		f := notPrevious
		if arm.cond != nil {
			f = notPrevious.And(c.formulaOf(arm.cond).formula)
		}

		simplified := clause.Simplify(f)
		if arm.cond != nil {
			notPrevious = notPrevious.And(c.negatedFormulaOf(arm.cond).formula)
		}
		if simplified.IsUnsatisfiable() {
			c.logger.Debug("unreachable branch", "stmt", s, "at", arm.at, "formula", f.String())
			continue
		}

		branch := ctx.Clone()
		if err := c.assume(branch, simplified, arm.at); err != nil {
			return nil, false, err
		}

		var after *Context
		var exits bool
		if arm.body != nil {
			var err error
			after, exits, err = c.checkStmts(branch, arm.body.Stmts)
			if err != nil {
				return nil, false, err
			}
		} else {
			after = branch
		}
		if !exits {
			survivors = append(survivors, after)
		}
	}

	if len(survivors) == 0 {
		c.logger.Debug("every branch exits", "stmt", s)
		return ctx, true, nil
	}
	merged := Merge(survivors...)
	c.logger.Debug("merged", "stmt", s, "context", merged.String())
	return merged, false, nil
}

// assume narrows ctx to where f holds
func (c *Checker) assume(ctx *Context, f clause.Formula, at ast.Range) error {
	for _, truth := range clause.Truths(f) {
		existing, known := c.resolve(ctx, truth.Path)
		if !known {
			existing = types.MixedType()
		}

		narrowed := existing
		for _, group := range truth.Groups {
			var err error
			if len(group) == 1 {
				if group[0] == assertion.Null && !narrowed.IsMixed() && !narrowed.Has("null") {
					return checkerr.At(checkerr.New(checkerr.NewTypeDoesNotContainType{
						Path:      truth.Path,
						Assertion: group[0].String(),
						Existing:  narrowed.String(),
					}), at)
				}
				narrowed, err = assertion.Reconcile(group[0], narrowed, c.Hierarchy)
			} else {
				narrowed, err = assertion.ReconcileAny(group, narrowed, c.Hierarchy)
			}
			if err != nil {
				return c.contradiction(err, truth.Path, at)
			}
		}

		if !known && narrowed.IsMixed() {
			continue
		}
		ctx.Set(truth.Path, narrowed)
	}
	return nil
}

func (c *Checker) contradiction(err error, path string, at ast.Range) error {
	var checkErr checkerr.CheckError
	if !errors.As(err, &checkErr) {
		checkErr = checkerr.New(checkerr.Unclassified{From: err})
	}
	checkErr = checkerr.At(checkerr.ForPath(checkErr, path), at)
	c.logger.Debug("contradiction", "path", path, "error", checkErr.Error())
	return checkErr
}

// resolve returns the type of path: its narrowed type if ctx tracks it, or
// else the declared type of the property when the object is a single class
func (c *Checker) resolve(ctx *Context, path string) (types.Union, bool) {
	if u, ok := ctx.Get(path); ok {
		return u, true
	}
	object, prop, ok := ast.SplitPath(path)
	if !ok {
		return types.Union{}, false
	}
	props, ok := c.Hierarchy.(types.PropertyTypes)
	if !ok || c.resolving.Contains(path) {
		return types.Union{}, false
	}
	c.resolving.Add(path)
	defer c.resolving.Remove(path)

	objectType, ok := c.resolve(ctx, object)
	if !ok || objectType.Len() != 1 {
		return types.Union{}, false
	}
	class, ok := objectType.Atomics()[0].(types.NamedClass)
	if !ok {
		return types.Union{}, false
	}
	return props.PropertyType(class.ClassName, prop)
}

// TypeOf is the type of expr evaluated in ctx
func (c *Checker) TypeOf(ctx *Context, expr ast.Expr) types.Union {
	if path, ok := ast.PathOf(expr); ok {
		if u, known := c.resolve(ctx, path); known {
			return u
		}
		return types.MixedType()
	}

	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e.Kind)
	case *ast.New:
		return types.NewUnion(types.NamedClass{ClassName: e.Class})
	case *ast.Ternary:
		combined, _ := types.Combine(c.TypeOf(ctx, e.Then), c.TypeOf(ctx, e.Else))
		return combined
	case *ast.InstanceOf, *ast.Not:
		return types.NewUnion(types.Scalar{Kind: types.Bool})
	case *ast.BinaryExpr:
		return types.NewUnion(types.Scalar{Kind: types.Bool})
	case *ast.Call:
		if _, ok := typeCheckFunctions[e.Func]; ok {
			return types.NewUnion(types.Scalar{Kind: types.Bool})
		}
	}
	return types.MixedType()
}

func literalType(kind ast.LitKind) types.Union {
	switch kind {
	case ast.LitNull:
		return types.NullType()
	case ast.LitTrue:
		return types.NewUnion(types.True{})
	case ast.LitFalse:
		return types.NewUnion(types.False{})
	case ast.LitInt:
		return types.NewUnion(types.Scalar{Kind: types.Int})
	case ast.LitFloat:
		return types.NewUnion(types.Scalar{Kind: types.Float})
	case ast.LitString:
		return types.NewUnion(types.Scalar{Kind: types.String})
	case ast.LitArray:
		return types.NewUnion(types.ArrayLike{Value: types.MixedType()})
	default:
		return types.MixedType()
	}
}
