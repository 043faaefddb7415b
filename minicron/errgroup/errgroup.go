package errgroup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LerianStudio/lib-minicron/minicron/log"
	"github.com/LerianStudio/lib-minicron/minicron/runtime"
)

// ErrPanicRecovered wraps the value of a panicking goroutine.
var ErrPanicRecovered = errors.New("errgroup: panic recovered")

// Group runs goroutines until the first error. The zero value has no
// context and no limit.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger log.Logger
	slots  chan struct{}

	wg   sync.WaitGroup
	once sync.Once
	err  error
}

// WithContext returns a Group whose context is canceled by the first error
// or by Wait.
func WithContext(ctx context.Context) (*Group, context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	return &Group{ctx: ctx, cancel: cancel}, ctx
}

// SetLogger routes recovered panics to logger.
func (g *Group) SetLogger(logger log.Logger) {
	if g != nil {
		g.logger = logger
	}
}

// SetLimit caps concurrent goroutines at n; n < 1 means unbounded. Call it
// before the first Go.
func (g *Group) SetLimit(n int) {
	if g == nil {
		return
	}

	g.slots = nil
	if n >= 1 {
		g.slots = make(chan struct{}, n)
	}
}

// Go runs fn in a new goroutine, blocking first while the limit is reached.
// A panic in fn is reported and becomes the group error.
func (g *Group) Go(fn func() error) {
	if g.slots != nil {
		g.slots <- struct{}{}
	}

	g.wg.Add(1)

	go func() {
		defer g.release()
		defer g.recoverPanic()

		if err := fn(); err != nil {
			g.fail(err)
		}
	}()
}

// Wait blocks until every goroutine returns and reports the first error.
func (g *Group) Wait() error {
	g.wg.Wait()

	if g.cancel != nil {
		g.cancel()
	}

	return g.err
}

func (g *Group) recoverPanic() {
	recovered := recover()
	if recovered == nil {
		return
	}

	ctx := g.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	runtime.HandlePanicValue(ctx, g.logger, recovered, "errgroup", "group.Go")
	g.fail(fmt.Errorf("%w: %v", ErrPanicRecovered, recovered))
}

func (g *Group) release() {
	if g.slots != nil {
		<-g.slots
	}

	g.wg.Done()
}

func (g *Group) fail(err error) {
	g.once.Do(func() {
		g.err = err
		if g.cancel != nil {
			g.cancel()
		}
	})
}
