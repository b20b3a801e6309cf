package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool ограничивает число задач, выполняемых одновременно.
// Размер 1 означает строго последовательное выполнение.
type Pool struct {
	size int
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

func (p *Pool) Size() int {
	return p.size
}

type slot[T any] struct {
	val T
	ok  bool
}

// Map вызывает fn для каждого элемента in и возвращает результаты в порядке
// входных элементов. Элементы, для которых fn вернула ok=false, отбрасываются.
// После отмены ctx новые задачи не запускаются.
func Map[In, Out any](ctx context.Context, p *Pool, in []In, fn func(context.Context, In) (Out, bool)) []Out {
	slots := make([]slot[Out], len(in))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i, item := range in {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			val, ok := fn(gctx, item)
			slots[i] = slot[Out]{val: val, ok: ok}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Out, 0, len(in))
	for _, s := range slots {
		if s.ok {
			out = append(out, s.val)
		}
	}
	return out
}
