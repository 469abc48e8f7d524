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
	"sync"
	"sync/atomic"
)

// printerHolder atomic.Pointer只能保存具体类型
type printerHolder struct {
	p Printer
}

var (
	current     atomic.Pointer[printerHolder]
	defaultOnce sync.Once
)

// Default 进程级的Printer，第一次使用时按默认配置创建：只有一个终端适配器
func Default() Printer {
	defaultOnce.Do(func() {
		if current.Load() == nil {
			current.CompareAndSwap(nil, &printerHolder{p: NewConfig().Build()})
		}
	})
	return current.Load().p
}

// Init 使用配置整体替换进程级的Printer，cfg为nil时使用默认配置。
// 被替换的Printer不会被关闭，需要调用方在替换前自行Flush/Close
func Init(cfg *Config) Printer {
	if cfg == nil {
		cfg = NewConfig()
	}

	p := cfg.Build()
	SetPrinter(p)
	return p
}

// SetPrinter 替换进程级的Printer，p为nil时忽略
func SetPrinter(p Printer) {
	if p == nil {
		return
	}
	defaultOnce.Do(func() {})
	current.Store(&printerHolder{p: p})
}

func T(tag string) Printer { return Default().T(tag) }

func V(message string, args ...any) { Default().V(message, args...) }

func D(message string, args ...any) { Default().D(message, args...) }

func I(message string, args ...any) { Default().I(message, args...) }

func W(message string, args ...any) { Default().W(message, args...) }

func E(message string, args ...any) { Default().E(message, args...) }

func Ex(cause error, message string, args ...any) { Default().Ex(cause, message, args...) }

func WTF(message string, args ...any) { Default().WTF(message, args...) }

func DObj(obj any) { Default().DObj(obj) }

func JSON(text string) { Default().JSON(text) }

func XML(text string) { Default().XML(text) }

func Hex(b byte) { Default().Hex(b) }

func HexMsg(message string, b *byte) { Default().HexMsg(message, b) }

func HexBytes(bs []byte) { Default().HexBytes(bs) }

func HexBytesMsg(message string, bs []byte) { Default().HexBytesMsg(message, bs) }

func Log(priority Priority, tag, message string, cause error) {
	Default().Log(priority, tag, message, cause)
}

func AddAdapter(adapter LogAdapter) { Default().AddAdapter(adapter) }

// ClearLogAdapters 清空后立即补回一个默认的终端适配器，进程级的Printer不会静默
func ClearLogAdapters() {
	p := Default()
	p.ClearLogAdapters()
	p.AddAdapter(DefaultConsoleLogAdapter())
}

// Flush 等待进程级Printer中异步投递的日志落地
func Flush(ctx context.Context) error {
	return flushTarget(ctx, Default())
}

// Close 关闭进程级Printer持有的后台资源，之后写入磁盘的日志会被丢弃
func Close() error {
	return closeTarget(Default())
}
