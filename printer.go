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
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/TimeWtr/elog/core"
	"github.com/TimeWtr/elog/errorx"
)

// 替代日志，输入为空或者非法时输出这些固定内容
const (
	EmptyMessage     = "Empty/NULL log message"
	EmptyJSON        = "Empty/Null json content"
	InvalidJSON      = "Invalid Json"
	EmptyXML         = "Empty/Null xml content"
	InvalidXML       = "Invalid xml"
	NullByte         = "Null byte"
	NullByteContent  = "Null byte content"
	NullByteArray    = "Null ByteArray"
	HexByteSeparator = " "
)

// Printer 日志门面，所有方法都不会panic到调用方，非法输入退化为替代日志
type Printer interface {
	// T 设置只生效一次的临时tag，返回的Printer的下一次日志调用会消费该tag
	T(tag string) Printer
	V(message string, args ...any)
	D(message string, args ...any)
	I(message string, args ...any)
	W(message string, args ...any)
	E(message string, args ...any)
	// Ex 错误级别，附带cause的堆栈
	Ex(cause error, message string, args ...any)
	// WTF 断言级别
	WTF(message string, args ...any)
	// DObj 调试级别输出任意对象，数组和切片逐个元素转换
	DObj(obj any)
	JSON(text string)
	XML(text string)
	Hex(b byte)
	// HexMsg b为nil时输出替代内容
	HexMsg(message string, b *byte)
	// HexBytes bs为nil时输出替代内容，空切片输出[]
	HexBytes(bs []byte)
	HexBytesMsg(message string, bs []byte)
	// Log 直接投递，tag为空时使用临时tag
	Log(priority Priority, tag, message string, cause error)

	AddAdapter(adapter LogAdapter)
	AddAdapters(adapters ...LogAdapter)
	ClearLogAdapters()
	AdaptersSize() int
}

// emitter 各个便捷方法的公共实现，take负责取出(并清空)临时tag
type emitter struct {
	p    *LoggerPrinter
	take func() string
}

func noOnceTag() string { return "" }

func (e emitter) V(message string, args ...any) {
	e.p.logf(VerbosePriority, e.take(), nil, message, args...)
}

func (e emitter) D(message string, args ...any) {
	e.p.logf(DebugPriority, e.take(), nil, message, args...)
}

func (e emitter) I(message string, args ...any) {
	e.p.logf(InfoPriority, e.take(), nil, message, args...)
}

func (e emitter) W(message string, args ...any) {
	e.p.logf(WarnPriority, e.take(), nil, message, args...)
}

func (e emitter) E(message string, args ...any) {
	e.p.logf(ErrorPriority, e.take(), nil, message, args...)
}

func (e emitter) Ex(cause error, message string, args ...any) {
	e.p.logf(ErrorPriority, e.take(), cause, message, args...)
}

func (e emitter) WTF(message string, args ...any) {
	e.p.logf(AssertPriority, e.take(), nil, message, args...)
}

func (e emitter) DObj(obj any) {
	e.p.dispatch(DebugPriority, e.take(), core.ToString(obj), nil)
}

func (e emitter) JSON(text string) {
	tag := e.take()
	if text == "" {
		e.p.dispatch(DebugPriority, tag, EmptyJSON, nil)
		return
	}

	pretty, err := prettyJSON(text)
	if err != nil {
		e.p.dispatch(ErrorPriority, tag, InvalidJSON, nil)
		return
	}
	e.p.dispatch(DebugPriority, tag, pretty, nil)
}

func (e emitter) XML(text string) {
	tag := e.take()
	if text == "" {
		e.p.dispatch(DebugPriority, tag, EmptyXML, nil)
		return
	}

	pretty, err := prettyXML(text)
	if err != nil {
		e.p.dispatch(ErrorPriority, tag, InvalidXML, nil)
		return
	}
	e.p.dispatch(DebugPriority, tag, pretty, nil)
}

func (e emitter) Hex(b byte) {
	e.p.dispatch(DebugPriority, e.take(), core.ByteToHex(b), nil)
}

func (e emitter) HexMsg(message string, b *byte) {
	var content string
	switch {
	case b == nil && message == "":
		content = NullByte
	case b == nil:
		content = message + " " + NullByteContent
	case message == "":
		content = core.ByteToHex(*b)
	default:
		content = message + " " + core.ByteToHex(*b)
	}
	e.p.dispatch(DebugPriority, e.take(), content, nil)
}

func (e emitter) HexBytes(bs []byte) {
	e.HexBytesMsg("", bs)
}

func (e emitter) HexBytesMsg(message string, bs []byte) {
	content := NullByteArray
	if bs != nil {
		content = core.BytesToHex(bs, HexByteSeparator)
	}
	if message != "" {
		content = message + " " + content
	}
	e.p.dispatch(DebugPriority, e.take(), content, nil)
}

func (e emitter) Log(priority Priority, tag, message string, cause error) {
	once := e.take()
	if tag == "" {
		tag = once
	}
	e.p.dispatch(priority, tag, message, cause)
}

// LoggerPrinter Printer的实现，持有有序的适配器列表，每次调用扇出到所有接受该优先级的适配器。
// 分发过程持有互斥锁，同一时刻只有一条日志在渲染，多行的边框块不会交错
type LoggerPrinter struct {
	emitter
	adapters []LogAdapter
	lock     sync.Mutex
}

// NewPrinter 创建Printer，adapters中不能包含nil
func NewPrinter(adapters ...LogAdapter) *LoggerPrinter {
	p := &LoggerPrinter{}
	p.emitter = emitter{p: p, take: noOnceTag}
	p.AddAdapters(adapters...)
	return p
}

// T 返回一个携带临时tag的句柄，句柄的下一次日志调用使用该tag，之后恢复为配置的tag。
// 每次调用都返回新的句柄，并发的goroutine之间互不可见
func (p *LoggerPrinter) T(tag string) Printer {
	if tag == "" {
		return p
	}

	h := &onceTagPrinter{}
	h.emitter = emitter{p: p, take: h.takeTag}
	h.tag.Store(&tag)
	return h
}

func (p *LoggerPrinter) AddAdapter(adapter LogAdapter) {
	if adapter == nil {
		panic(errors.WithStack(errorx.ErrNilAdapter))
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	p.adapters = append(p.adapters, adapter)
}

func (p *LoggerPrinter) AddAdapters(adapters ...LogAdapter) {
	for _, adapter := range adapters {
		if adapter == nil {
			panic(errors.WithStack(errorx.ErrNilAdapter))
		}
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	p.adapters = append(p.adapters, adapters...)
}

// ClearLogAdapters 清空适配器列表，之后的日志不会输出到任何地方，
// 进程级门面在清空后会立即补回默认的终端适配器
func (p *LoggerPrinter) ClearLogAdapters() {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.adapters = nil
}

func (p *LoggerPrinter) AdaptersSize() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.adapters)
}

// Flush 等待所有适配器中异步投递的日志落地
func (p *LoggerPrinter) Flush(ctx context.Context) error {
	var err error
	for _, adapter := range p.snapshot() {
		err = multierr.Append(err, flushTarget(ctx, adapter))
	}
	return err
}

// Close 关闭所有持有后台资源的适配器，不会清空适配器列表
func (p *LoggerPrinter) Close() error {
	var err error
	for _, adapter := range p.snapshot() {
		err = multierr.Append(err, closeTarget(adapter))
	}
	return err
}

func (p *LoggerPrinter) snapshot() []LogAdapter {
	p.lock.Lock()
	defer p.lock.Unlock()
	adapters := make([]LogAdapter, len(p.adapters))
	copy(adapters, p.adapters)
	return adapters
}

// logf 只有存在参数时才做格式化，不带参数的消息中的%原样保留
func (p *LoggerPrinter) logf(priority Priority, tag string, cause error, message string, args ...any) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	p.dispatch(priority, tag, message, cause)
}

func (p *LoggerPrinter) dispatch(priority Priority, tag, message string, cause error) {
	if cause != nil {
		trace := core.StackTraceString(cause)
		switch {
		case message == "":
			message = trace
		case trace != "":
			message += " : " + trace
		}
	}
	if message == "" {
		message = EmptyMessage
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	for _, adapter := range p.adapters {
		p.deliver(adapter, priority, tag, message)
	}
}

// deliver 单个适配器的panic不会影响其它适配器，也不会传播到调用方
func (p *LoggerPrinter) deliver(adapter LogAdapter, priority Priority, tag, message string) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = os.Stderr.WriteString(fmt.Sprintf("adapter %T panic: %v\n", adapter, r))
		}
	}()

	if adapter.IsLoggable(priority, tag) {
		adapter.Log(priority, tag, message)
	}
}

// onceTagPrinter T返回的句柄，临时tag只会被下一次日志调用取走一次
type onceTagPrinter struct {
	emitter
	tag atomic.Pointer[string]
}

func (o *onceTagPrinter) takeTag() string {
	if tag := o.tag.Swap(nil); tag != nil {
		return *tag
	}
	return ""
}

// T 替换句柄上尚未被消费的临时tag
func (o *onceTagPrinter) T(tag string) Printer {
	if tag == "" {
		o.tag.Store(nil)
		return o
	}
	o.tag.Store(&tag)
	return o
}

func (o *onceTagPrinter) AddAdapter(adapter LogAdapter)      { o.p.AddAdapter(adapter) }
func (o *onceTagPrinter) AddAdapters(adapters ...LogAdapter) { o.p.AddAdapters(adapters...) }
func (o *onceTagPrinter) ClearLogAdapters()                  { o.p.ClearLogAdapters() }
func (o *onceTagPrinter) AdaptersSize() int                  { return o.p.AdaptersSize() }
