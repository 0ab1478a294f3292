package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPollerRunsPeriodically(t *testing.T) {
	var runs atomic.Int32
	p := New("test", 10*time.Millisecond, zap.NewNop(), func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	p.Start()
	time.Sleep(60 * time.Millisecond)
	p.Stop()

	got := runs.Load()
	require.GreaterOrEqual(t, got, int32(2), "应至少跑过启动轮和一个周期轮")

	// Stop 后不再触发
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, got, runs.Load())
}

func TestPollerSkipsWhileInFlight(t *testing.T) {
	var runs atomic.Int32
	release := make(chan struct{})
	p := New("slow", 5*time.Millisecond, zap.NewNop(), func(ctx context.Context) error {
		runs.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})
	p.Start()
	time.Sleep(40 * time.Millisecond) // 期间多次 tick，但首轮一直在途
	assert.Equal(t, int32(1), runs.Load())

	close(release)
	p.Stop()
}

func TestPollerStopWaitsForInFlightRun(t *testing.T) {
	finished := make(chan struct{})
	p := New("ctx", 5*time.Millisecond, zap.NewNop(), func(ctx context.Context) error {
		<-ctx.Done()
		close(finished)
		return ctx.Err()
	})
	p.Start()
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	select {
	case <-finished:
	default:
		t.Fatal("Stop 返回时在途一轮应已收尾")
	}
}

func TestPollerStopIdempotent(t *testing.T) {
	p := New("idem", time.Millisecond, zap.NewNop(), func(ctx context.Context) error {
		return errors.New("boom") // 错误只记日志，不中断轮询
	})
	p.Stop() // 未 Start 直接 Stop
	p.Start()
	time.Sleep(5 * time.Millisecond)
	p.Stop()
	p.Stop()
}
