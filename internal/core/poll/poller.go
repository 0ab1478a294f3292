package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Poller 定时执行一个任务：上一轮还在途时跳过本轮（防重入），
// Stop 取消并等待在途一轮收尾。
type Poller struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	log      *zap.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(name string, interval time.Duration, log *zap.Logger, fn func(ctx context.Context) error) *Poller {
	return &Poller{name: name, interval: interval, fn: fn, log: log}
}

func (p *Poller) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		t := time.NewTicker(p.interval)
		defer t.Stop()

		p.spawn(ctx) // 启动即跑一轮
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				p.spawn(ctx)
			}
		}
	}()
}

func (p *Poller) spawn(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.log.Debug("poll skipped, previous run still in flight", zap.String("poller", p.name))
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)
		if err := p.fn(ctx); err != nil && ctx.Err() == nil {
			p.log.Warn("poll run failed", zap.String("poller", p.name), zap.Error(err))
		}
	}()
}

// Stop 幂等；未 Start 过直接返回
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.wg.Wait()
	p.cancel = nil
}
