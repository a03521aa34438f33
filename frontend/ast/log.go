package ast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Slog wraps a Node as a slog.LogValuer so that the node is only
// rendered when the record is actually emitted
func Slog(node Node) slog.LogValuer {
	return nodeLogValuer{node}
}

type nodeLogValuer struct{ Node }

func (l nodeLogValuer) LogValue() slog.Value {
	switch n := l.Node.(type) {
	case Expr:
		return slog.StringValue(ExprString(n))
	case *If:
		return slog.StringValue("if " + ExprString(n.Cond) + " @" + n.Range.String())
	default:
		name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
		return slog.StringValue(name + " @" + RangeOf(n).String())
	}
}

// NodeLogger returns a logger which lazily renders any Node attribute
func NodeLogger(underlying *slog.Logger) *slog.Logger {
	return slog.New(&nodeLogHandler{underlying: underlying.Handler()})
}

type nodeLogHandler struct {
	underlying slog.Handler
}

func (l *nodeLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *nodeLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapNodeAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *nodeLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapNodeAttr(attr)
	}
	return &nodeLogHandler{underlying: l.underlying.WithAttrs(wrapped)}
}

func (l *nodeLogHandler) WithGroup(name string) slog.Handler {
	return &nodeLogHandler{underlying: l.underlying.WithGroup(name)}
}

func wrapNodeAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	if node, isNode := attr.Value.Any().(Node); isNode {
		return slog.Any(attr.Key, Slog(node))
	}
	return attr
}
