package tx

import "context"

// Runner ejecuta fn como una unidad atómica. La transacción viaja en el ctx
// que recibe fn; los repos la toman de ahí. Si el ctx ya trae una transacción,
// fn se une a ella en vez de abrir otra.
type Runner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RunnerFunc adapta una función a Runner.
type RunnerFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func (f RunnerFunc) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// Passthrough no da atomicidad; útil en tests de servicios con repos falsos.
var Passthrough Runner = RunnerFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
