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
	"strconv"
	"strings"
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/TimeWtr/elog/core"
)

const (
	// DefaultDateLayout 默认的人类可读时间格式
	DefaultDateLayout = "2006.01.02 15:04:05.000"
	// NewLineReplacement 换行会破坏一行一条记录的格式，替换为该标记
	NewLineReplacement = " <br> "
)

const (
	separator       = "/"
	threadSeparator = "-"
	msgSeparator    = ": "
	space           = " "
)

// csvBufferPool 渲染CSV行的缓冲区
var csvBufferPool = core.NewBufferPool(256, 64*1024)

var newLineReplacer = strings.NewReplacer("\r\n", NewLineReplacement, "\n", NewLineReplacement, "\r", NewLineReplacement)

type CsvOptions func(*CsvFormatStrategy)

// WithCsvTag 全局tag，默认为DefaultTag
func WithCsvTag(tag string) CsvOptions {
	return func(s *CsvFormatStrategy) {
		s.tag = tag
	}
}

// WithCsvTimeMs 是否输出毫秒时间戳，默认输出
func WithCsvTimeMs(show bool) CsvOptions {
	return func(s *CsvFormatStrategy) {
		s.showTimeMs = show
	}
}

// WithCsvThreadInfo 是否输出进程和goroutine信息，默认输出
func WithCsvThreadInfo(show bool) CsvOptions {
	return func(s *CsvFormatStrategy) {
		s.showThreadInfo = show
	}
}

// WithCsvClock 时间来源，默认使用xclock的全局时钟
func WithCsvClock(clock xclock.Clock) CsvOptions {
	return func(s *CsvFormatStrategy) {
		s.clock = clock
	}
}

// WithCsvDateLayout 人类可读时间的格式，默认DefaultDateLayout
func WithCsvDateLayout(layout string) CsvOptions {
	return func(s *CsvFormatStrategy) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}

// WithCsvLogStrategy 输出策略，默认写入磁盘
func WithCsvLogStrategy(ls LogStrategy) CsvOptions {
	return func(s *CsvFormatStrategy) {
		s.logStrategy = ls
	}
}

// CsvFormatStrategy 每条日志渲染为一行：
// 毫秒时间戳/可读时间 pid-goroutine/进程名 优先级/tag: 消息
type CsvFormatStrategy struct {
	// 全局tag
	tag string
	// 是否输出毫秒时间戳
	showTimeMs bool
	// 是否输出进程和goroutine信息
	showThreadInfo bool
	// 时间来源，为nil时使用xclock.Now
	clock xclock.Clock
	// 可读时间的格式
	dateLayout string
	// 输出策略
	logStrategy LogStrategy
}

// NewCsvFormatStrategy 没有指定输出策略时，写入系统临时目录下的ELog文件夹
func NewCsvFormatStrategy(opts ...CsvOptions) *CsvFormatStrategy {
	s := &CsvFormatStrategy{
		tag:            DefaultTag,
		showTimeMs:     true,
		showThreadInfo: true,
		dateLayout:     DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logStrategy == nil {
		s.logStrategy = NewDiskLogStrategy(DefaultDiskFolder(""))
	}

	return s
}

func (s *CsvFormatStrategy) Log(priority Priority, onceTag, message string) {
	tag := formatTag(s.tag, onceTag)
	now := s.now()

	buf := csvBufferPool.Get()
	defer csvBufferPool.Put(buf)

	if s.showTimeMs {
		// 机器可读的时间
		buf.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
		buf.WriteString(separator)
	}
	buf.WriteString(now.Format(s.dateLayout))
	buf.WriteString(space)

	if s.showThreadInfo {
		buf.WriteString(strconv.Itoa(core.Pid()))
		buf.WriteString(threadSeparator)
		buf.WriteString(core.ThreadName())
		buf.WriteString(separator)
		buf.WriteString(core.ProcessName())
		buf.WriteString(space)
	}

	buf.WriteString(priority.Letter())
	buf.WriteString(separator)
	buf.WriteString(tag)
	buf.WriteString(msgSeparator)
	_, _ = newLineReplacer.WriteString(buf, message)
	buf.WriteByte('\n')

	s.logStrategy.Log(priority, tag, buf.String())
}

func (s *CsvFormatStrategy) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return xclock.Now()
}

// Flush 等待输出策略中已投递的日志落地
func (s *CsvFormatStrategy) Flush(ctx context.Context) error {
	return flushTarget(ctx, s.logStrategy)
}

func (s *CsvFormatStrategy) Close() error {
	return closeTarget(s.logStrategy)
}
