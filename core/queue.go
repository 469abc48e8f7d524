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


package core

import (
	"context"
	"sync"

	"github.com/TimeWtr/elog/errorx"
)

// Queue 无界的FIFO任务队列，支持多生产者、单消费者。
// 写入方永远不会阻塞，消费方按照入队顺序逐个取出，关闭后消费方会先取完剩余的数据再退出。
type Queue[T any] struct {
	// 待处理的数据
	items []T
	// 有新数据的通知，容量为1，多次通知会合并
	notify chan struct{}
	// 关闭队列的信号
	sig chan struct{}
	// 是否已关闭
	closed bool
	// 加锁保护
	lock sync.Mutex
	// 单例
	once sync.Once
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		notify: make(chan struct{}, 1),
		sig:    make(chan struct{}),
	}
}

// Push 入队，队列关闭后返回ErrQueueClosed
func (q *Queue[T]) Push(v T) error {
	q.lock.Lock()
	if q.closed {
		q.lock.Unlock()
		return errorx.ErrQueueClosed
	}
	q.items = append(q.items, v)
	q.lock.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}

	return nil
}

// Pop 出队，队列为空时阻塞等待。队列关闭且已取空，或者ctx取消时返回false
func (q *Queue[T]) Pop(ctx context.Context) (T, bool) {
	var zero T
	for {
		q.lock.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			q.items[0] = zero
			q.items = q.items[1:]
			q.lock.Unlock()
			return v, true
		}
		if q.closed {
			q.lock.Unlock()
			return zero, false
		}
		q.lock.Unlock()

		select {
		case <-q.notify:
		case <-q.sig:
		case <-ctx.Done():
			return zero, false
		}
	}
}

// Len 当前排队的数量
func (q *Queue[T]) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.items)
}

// Close 关闭队列，拒绝新的数据，已入队的数据仍可被取出
func (q *Queue[T]) Close() {
	q.once.Do(func() {
		q.lock.Lock()
		q.closed = true
		q.lock.Unlock()
		close(q.sig)
	})
}
