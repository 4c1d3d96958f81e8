package worker

import (
	"context"
)

// Pool : ограниченный пул для блокирующих вызовов (извлечение текста,
// рендер, обращения к удалённому хранилищу). Каждый вызов занимает один
// слот; медленный рендер не блокирует обработку остальных запросов.
type Pool struct {
	slots chan struct{}
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 4
	}
	return &Pool{
		slots: make(chan struct{}, size),
	}
}

type result[T any] struct {
	value T
	err   error
}

// RunTask : выполняет fn в отдельной горутине и ждёт результат либо
// истечения контекста. При таймауте воркер не прерывается (best-effort):
// он освободит слот, когда fn вернётся, а результат будет отброшен.
func RunTask[T any](ctx context.Context, pool *Pool, fn func() (T, error)) (T, error) {
	var zero T

	select {
	case pool.slots <- struct{}{}:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	out := make(chan result[T], 1)
	go func() {
		defer func() { <-pool.slots }()
		value, err := fn()
		out <- result[T]{value: value, err: err}
	}()

	select {
	case res := <-out:
		return res.value, res.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
