package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// journal guarda cómo deshacer cada escritura hecha dentro de la transacción.
type journal struct {
	undo []func()
}

// TxRunner serializa las transacciones en memoria con un único mutex y
// deshace las escrituras (en orden inverso) si fn devuelve error o hace panic.
// Las lecturas fuera de una transacción pueden ver escrituras aún no confirmadas.
type TxRunner struct {
	mu sync.Mutex
}

func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

func (t *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*journal); ok {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
		if err != nil {
			j.rollback()
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, j))
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// onRollback registra undo si ctx trae una transacción. Sin transacción la
// escritura es definitiva.
func onRollback(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(txKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}
