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
	"bytes"
	"sync"
	"sync/atomic"
)

type Stats struct {
	allocations atomic.Int64 // 总共分配的对象数量
	totalGets   atomic.Int64 // 总共获取的对象数量
	discards    atomic.Int64 // 因为超过容量上限丢弃的对象数量
}

// BufferPool 渲染日志时复用的缓冲区对象池，容量超过maxCap的缓冲区不放回池中，
// 防止偶发的超长日志长期占用内存
type BufferPool struct {
	p       sync.Pool // 内置池
	initCap int       // 新建缓冲区的初始容量
	maxCap  int       // 允许放回池中的最大容量
	stats   Stats     // 统计计数信息
}

func NewBufferPool(initCap, maxCap int) *BufferPool {
	if maxCap < initCap {
		maxCap = initCap
	}

	bp := &BufferPool{
		initCap: initCap,
		maxCap:  maxCap,
	}
	bp.p.New = func() interface{} {
		bp.stats.allocations.Add(1)
		return bytes.NewBuffer(make([]byte, 0, bp.initCap))
	}

	return bp
}

func (bp *BufferPool) Get() *bytes.Buffer {
	bp.stats.totalGets.Add(1)
	buf, _ := bp.p.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil {
		return
	}

	if buf.Cap() > bp.maxCap {
		bp.stats.discards.Add(1)
		return
	}

	bp.p.Put(buf)
}

// Stats 返回分配次数、复用次数和丢弃次数
func (bp *BufferPool) Stats() (allocations, reuses, discards int64) {
	t := bp.stats.totalGets.Load()
	a := bp.stats.allocations.Load()
	d := bp.stats.discards.Load()
	return a, t - a, d
}
