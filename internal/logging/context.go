package logging

import "context"

type fieldsKey struct{}

// ContextWith returns a copy of ctx carrying extra key–value pairs that every
// backend adds to entries logged with that context, after any pairs already
// stored.
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := fieldsFrom(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

func fieldsFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).([]any)
	return fields
}

func withContextFields(ctx context.Context, args []any) []any {
	fields := fieldsFrom(ctx)
	if len(fields) == 0 {
		return args
	}
	out := make([]any, 0, len(fields)+len(args))
	out = append(out, fields...)
	return append(out, args...)
}
