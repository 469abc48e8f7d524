// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package elog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/TimeWtr/elog/core"
	"github.com/TimeWtr/elog/errorx"
)

// lockFileName 跨进程写入同一个文件夹时使用的文件锁，不会被轮转扫描匹配到
const lockFileName = ".logs.lock"

type diskTaskKind uint8

const (
	writeTask diskTaskKind = iota + 1
	sweepTask
	barrierTask
)

// diskTask 磁盘写入goroutine处理的任务
type diskTask struct {
	kind     diskTaskKind
	priority Priority
	message  string
	// barrierTask处理完成的通知
	done chan struct{}
}

type DiskOptions func(*DiskLogStrategy)

// WithDiskMaxFileSizeKB 单个文件的大小上限，单位KB，小于1KB时使用默认值500KB
func WithDiskMaxFileSizeKB(kb int) DiskOptions {
	return func(d *DiskLogStrategy) {
		d.maxFileSize = int64(kb) * BytesKB
	}
}

// WithDiskMaxFileCount 最多保留的文件数量，小于等于0时使用默认值10
func WithDiskMaxFileCount(count int) DiskOptions {
	return func(d *DiskLogStrategy) {
		d.maxFileCount = count
	}
}

// WithDiskEvictPolicy 文件数量超过上限时的处理策略，默认EvictOldest
func WithDiskEvictPolicy(policy EvictPolicy) DiskOptions {
	return func(d *DiskLogStrategy) {
		d.policy = policy
	}
}

// WithDiskSweepSpec 定时清理超出数量上限的文件，spec为cron表达式，比如"@hourly"、"0 3 * * *"，
// 清理任务和写入任务在同一个队列中按顺序执行
func WithDiskSweepSpec(spec string) DiskOptions {
	return func(d *DiskLogStrategy) {
		d.sweepSpec = spec
	}
}

// WithDiskErrorHandler 观察写入失败的错误，写入失败本身仍然会被静默丢弃
func WithDiskErrorHandler(fn func(error)) DiskOptions {
	return func(d *DiskLogStrategy) {
		d.errHandler = fn
	}
}

// DiskLogStrategy 异步的磁盘输出策略。
// Log只负责把日志放入队列，不会在调用方的goroutine中执行任何I/O。
// 后台只有一个goroutine按入队顺序逐条写入，写入顺序即为全局顺序，文件句柄不需要额外加锁。
// 每条日志都会打开、追加、关闭文件，不持有长期句柄，轮转判断始终与磁盘保持一致。
type DiskLogStrategy struct {
	// 日志文件夹
	folder string
	// 单个文件大小上限，单位bytes
	maxFileSize int64
	// 最多保留的文件数量
	maxFileCount int
	// 超出数量上限时的处理策略
	policy EvictPolicy
	// 定时清理的cron表达式
	sweepSpec string
	// 写入失败的观察者
	errHandler func(error)
	// 轮转策略
	rs *RotateStrategy
	// 跨进程的文件锁
	fileLock *flock.Flock
	// 任务队列
	queue *core.Queue[diskTask]
	// 定时清理任务
	cr *cron.Cron
	// goroutine管理
	eg *errgroup.Group
	// 上下文管理
	ctx context.Context
	// 级联取消
	cancel context.CancelFunc
	// 单例
	once sync.Once
}

func NewDiskLogStrategy(folder string, opts ...DiskOptions) *DiskLogStrategy {
	if folder == "" {
		panic(errors.WithStack(errorx.ErrEmptyFolder))
	}

	d := &DiskLogStrategy{
		folder:       filepath.Clean(folder),
		maxFileSize:  DefaultFileSizeKB * BytesKB,
		maxFileCount: DefaultFileCountMax,
		policy:       EvictOldest,
		queue:        core.NewQueue[diskTask](),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.maxFileSize < BytesKB {
		d.maxFileSize = DefaultFileSizeKB * BytesKB
	}
	if d.maxFileCount <= 0 {
		d.maxFileCount = DefaultFileCountMax
	}
	if d.policy != EvictOldest && d.policy != EvictNone {
		d.policy = EvictOldest
	}

	d.rs = NewRotateStrategy(d.folder, d.maxFileSize, d.maxFileCount, d.policy)
	d.fileLock = flock.New(filepath.Join(d.folder, lockFileName))

	ctx, cancel := context.WithCancel(context.Background())
	d.eg, d.ctx = errgroup.WithContext(ctx)
	d.cancel = cancel
	d.eg.Go(d.worker)

	d.startSweep()

	return d
}

// Log 只入队，不阻塞调用方，策略关闭后的日志直接丢弃
func (d *DiskLogStrategy) Log(priority Priority, _ string, message string) {
	_ = d.queue.Push(diskTask{
		kind:     writeTask,
		priority: priority,
		message:  message,
	})
}

// Folder 日志文件夹
func (d *DiskLogStrategy) Folder() string {
	return d.folder
}

// Pending 排队中尚未写入的任务数量
func (d *DiskLogStrategy) Pending() int {
	return d.queue.Len()
}

// Flush 阻塞直到在此之前入队的日志全部处理完成
func (d *DiskLogStrategy) Flush(ctx context.Context) error {
	done := make(chan struct{})
	if err := d.queue.Push(diskTask{kind: barrierTask, done: done}); err != nil {
		return errorx.ErrDiskClosed
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 停止定时清理，写完队列中剩余的日志后退出后台goroutine
func (d *DiskLogStrategy) Close() error {
	var err error
	d.once.Do(func() {
		if d.cr != nil {
			<-d.cr.Stop().Done()
		}
		d.queue.Close()
		err = d.eg.Wait()
		d.cancel()
	})

	return err
}

func (d *DiskLogStrategy) startSweep() {
	if d.sweepSpec == "" {
		return
	}

	cr := cron.New()
	_, err := cr.AddFunc(d.sweepSpec, func() {
		_ = d.queue.Push(diskTask{kind: sweepTask})
	})
	if err != nil {
		_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to add disk sweep cron job, spec: %s, err: %v\n", d.sweepSpec, err))
		return
	}

	d.cr = cr
	cr.Start()
}

// worker 唯一的消费者，队列关闭且取空后退出
func (d *DiskLogStrategy) worker() error {
	for {
		task, ok := d.queue.Pop(d.ctx)
		if !ok {
			return nil
		}
		d.handle(task)
	}
}

func (d *DiskLogStrategy) handle(task diskTask) {
	defer func() {
		// 单条任务的异常不能影响后续任务
		if r := recover(); r != nil {
			d.fail(errors.Errorf("disk task panic: %v", r))
		}
	}()

	switch task.kind {
	case writeTask:
		d.write(task.message)
	case sweepTask:
		d.sweep()
	case barrierTask:
		close(task.done)
	default:
	}
}

// write 选文件、追加、关闭，失败时静默丢弃
func (d *DiskLogStrategy) write(message string) {
	if err := d.rs.EnsureFolder(); err != nil {
		d.fail(err)
		return
	}

	if err := d.fileLock.Lock(); err != nil {
		// 拿不到锁时仍然尽力写入
		d.fail(errors.Wrap(err, "acquire file lock"))
	} else {
		defer func() {
			_ = d.fileLock.Unlock()
		}()
	}

	path, created, err := d.rs.Select()
	if err != nil {
		d.fail(err)
		return
	}

	if err = appendFile(path, message); err != nil {
		d.fail(err)
		return
	}

	if created {
		if err = d.rs.Evict(); err != nil {
			d.fail(err)
		}
	}
}

func (d *DiskLogStrategy) sweep() {
	if err := d.rs.EnsureFolder(); err != nil {
		d.fail(err)
		return
	}

	if err := d.fileLock.Lock(); err != nil {
		d.fail(errors.Wrap(err, "acquire file lock"))
		return
	}
	defer func() {
		_ = d.fileLock.Unlock()
	}()

	if err := d.rs.Evict(); err != nil {
		d.fail(err)
	}
}

func (d *DiskLogStrategy) fail(err error) {
	if d.errHandler != nil {
		d.errHandler(err)
	}
}

// appendFile 追加写入后立即关闭文件，写入失败时也会尽力关闭
func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}

	_, err = f.WriteString(content)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}

	return errors.Wrapf(err, "write %s", path)
}
