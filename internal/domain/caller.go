package domain

import "context"

// Caller identifies who issued a request. The zero value is an anonymous
// public caller.
type Caller struct {
	Subject    string
	Privileged bool
}

var Anonymous = Caller{}

type callerKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}
	return Anonymous
}
