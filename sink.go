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
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TimeWtr/elog/errorx"
)

type SinkOptions func(*WriterSink)

// WithSinkColor 强制开启或关闭颜色，不设置时根据输出是否为终端自动判断
func WithSinkColor(enable bool) SinkOptions {
	return func(s *WriterSink) {
		s.color = enable
	}
}

// WithColorPlugin 自定义优先级前缀插件
func WithColorPlugin(cp ColorPlugin) SinkOptions {
	return func(s *WriterSink) {
		if cp != nil {
			s.cp = cp
		}
	}
}

// WriterSink 输出到io.Writer的平台日志，每行格式为"[D] tag: text"
type WriterSink struct {
	// 输出目标
	w io.Writer
	// 是否输出颜色
	color bool
	// 优先级前缀
	cp ColorPlugin
	// 保证单行写入的完整性
	lock sync.Mutex
}

// NewWriterSink w为nil时输出到os.Stdout
func NewWriterSink(w io.Writer, opts ...SinkOptions) *WriterSink {
	if w == nil {
		w = os.Stdout
	}

	s := &WriterSink{
		w:     w,
		color: isTerminal(w),
		cp:    NewANSIColorPlugin(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *WriterSink) WriteLine(priority Priority, tag, text string) {
	var builder strings.Builder
	builder.WriteString(s.cp.Format(s.color && priority.valid(), priority))
	builder.WriteString(tag)
	builder.WriteString(": ")
	builder.WriteString(strings.TrimRight(text, "\r\n"))
	builder.WriteByte('\n')

	s.lock.Lock()
	defer s.lock.Unlock()
	_, _ = io.WriteString(s.w, builder.String())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ZapSink 将日志转发给宿主程序的zap日志
type ZapSink struct {
	lg *zap.Logger
}

func NewZapSink(lg *zap.Logger) *ZapSink {
	if lg == nil {
		panic(errors.WithStack(errorx.ErrNilSink))
	}

	return &ZapSink{lg: lg}
}

func (z *ZapSink) WriteLine(priority Priority, tag, text string) {
	ce := z.lg.Check(zapLevel(priority), text)
	if ce == nil {
		return
	}

	ce.Write(zap.String("tag", tag))
}

// zapLevel AssertPriority映射为ErrorLevel，DPanic及以上级别会中断调用方
func zapLevel(priority Priority) zapcore.Level {
	switch priority {
	case VerbosePriority, DebugPriority:
		return zapcore.DebugLevel
	case InfoPriority:
		return zapcore.InfoLevel
	case WarnPriority:
		return zapcore.WarnLevel
	case ErrorPriority, AssertPriority:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Flush 刷新zap的缓冲
func (z *ZapSink) Flush(_ context.Context) error {
	return z.lg.Sync()
}
