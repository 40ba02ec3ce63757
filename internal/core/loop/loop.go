// Package loop 提供单线程任务循环
//
// 应用状态不加锁，所有读写都在循环协程内完成。用户输入通过 Post 投递，
// 网络请求通过 Await 在独立协程执行，完成回调再投递回循环。
//
//	l := loop.New(256)
//	go l.Run(ctx)
//
//	loop.Await(l, func() ([]types.ProductInfo, error) {
//	    return api.GetProductList(ctx)
//	}, func(items []types.ProductInfo, err error) {
//	    // 在循环协程内执行
//	})
//
//	l.Flush() // 等待队列清空且没有进行中的请求
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BMIWB/go-larek/pkg/lib/log"
)

var logger = log.Logger("core/loop")

// ErrStopped 循环已停止
var ErrStopped = errors.New("loop stopped")

// DefaultQueueSize 默认队列容量
const DefaultQueueSize = 256

// Loop 单线程任务循环
type Loop struct {
	tasks chan func()

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	stopped bool

	stopCh chan struct{}
	exited chan struct{}
	once   sync.Once
}

// New 创建任务循环
//
// 队列满时 Post 阻塞，不要在循环协程内 Post 大量任务。
func New(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	l := &Loop{
		tasks:  make(chan func(), queueSize),
		stopCh: make(chan struct{}),
		exited: make(chan struct{}),
	}
	l.idle = sync.NewCond(&l.mu)
	return l
}

// Post 投递任务
func (l *Loop) Post(task func()) error {
	if task == nil {
		return nil
	}
	select {
	case <-l.stopCh:
		return ErrStopped
	default:
	}

	l.add(1)
	select {
	case l.tasks <- task:
		return nil
	case <-l.stopCh:
		l.add(-1)
		return ErrStopped
	}
}

// Call 投递任务并等待执行完成
//
// 不能在循环协程内调用。
func (l *Loop) Call(task func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		task()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-l.exited:
		return ErrStopped
	}
}

// Run 在当前协程执行任务直到 ctx 取消
func (l *Loop) Run(ctx context.Context) {
	defer l.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case task := <-l.tasks:
			l.exec(task)
			l.add(-1)
		}
	}
}

// Flush 阻塞直到队列为空且没有进行中的 Await
//
// 循环已停止时立即返回。
func (l *Loop) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.pending > 0 && !l.stopped {
		l.idle.Wait()
	}
}

// Done 返回循环退出后关闭的通道
func (l *Loop) Done() <-chan struct{} {
	return l.exited
}

// Await 在独立协程执行 fetch，完成后把 done 投递回循环
func Await[T any](l *Loop, fetch func() (T, error), done func(T, error)) {
	l.add(1)
	go func() {
		defer l.add(-1)

		v, err := fetch()
		if perr := l.Post(func() { done(v, err) }); perr != nil {
			logger.Warn("循环已停止，丢弃请求结果", "err", perr)
		}
	}()
}

// ============================================================================
// 内部方法
// ============================================================================

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("任务 panic", "panic", fmt.Sprint(r))
		}
	}()
	task()
}

func (l *Loop) add(n int) {
	l.mu.Lock()
	l.pending += n
	if l.pending <= 0 {
		l.idle.Broadcast()
	}
	l.mu.Unlock()
}

func (l *Loop) shutdown() {
	l.once.Do(func() {
		close(l.stopCh)

		l.mu.Lock()
		l.stopped = true
		l.idle.Broadcast()
		l.mu.Unlock()

		// 丢弃未执行的任务
		for {
			select {
			case <-l.tasks:
				l.add(-1)
			default:
				close(l.exited)
				return
			}
		}
	})
}
