package log

import "context"

type nop struct{}

// NewNop returns a Logger that drops every entry and reports every level
// as disabled.
//
//nolint:ireturn
func NewNop() Logger { return nop{} }

func (nop) Log(context.Context, Level, string, ...Field) {}

//nolint:ireturn
func (n nop) With(...Field) Logger { return n }

//nolint:ireturn
func (n nop) WithGroup(string) Logger { return n }

func (nop) Enabled(Level) bool { return false }

func (nop) Sync(context.Context) error { return nil }
