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
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/TimeWtr/elog/core"
)

const (
	// ChunkSize 平台终端单条日志约4076字节的上限，按4000字节分块输出
	ChunkSize = 4000
	// DefaultMethodCount 默认输出的调用栈层数
	DefaultMethodCount = 2
	// DefaultMethodOffset 默认额外跳过的调用栈层数
	DefaultMethodOffset = 0
)

const (
	topLeftCorner    = "┌"
	bottomLeftCorner = "└"
	middleCorner     = "├"
	horizontalLine   = "│"
	doubleDivider    = "────────────────────────────────────────────────────────"
	singleDivider    = "┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄"

	TopBorder    = topLeftCorner + doubleDivider + doubleDivider
	BottomBorder = bottomLeftCorner + doubleDivider + doubleDivider
	MiddleBorder = middleCorner + singleDivider + singleDivider
)

// loggerPackages 计算调用栈偏移时需要跳过的日志库自身的包
var loggerPackages = func() []string {
	pkg := reflect.TypeOf(PrettyFormatStrategy{}).PkgPath()
	return []string{pkg, pkg + "/core"}
}()

type PrettyOptions func(*PrettyFormatStrategy)

// WithPrettyTag 全局tag，默认为DefaultTag
func WithPrettyTag(tag string) PrettyOptions {
	return func(s *PrettyFormatStrategy) {
		s.tag = tag
	}
}

// WithPrettyMethodCount 输出几层调用栈，默认2层，传入负数时使用默认值
func WithPrettyMethodCount(count int) PrettyOptions {
	return func(s *PrettyFormatStrategy) {
		s.methodCount = count
	}
}

// WithPrettyMethodOffset 在日志库自身的调用之外额外跳过的层数，传入负数时使用默认值
func WithPrettyMethodOffset(offset int) PrettyOptions {
	return func(s *PrettyFormatStrategy) {
		s.methodOffset = offset
	}
}

// WithPrettyThreadInfo 是否输出goroutine信息，默认输出
func WithPrettyThreadInfo(show bool) PrettyOptions {
	return func(s *PrettyFormatStrategy) {
		s.showThreadInfo = show
	}
}

// WithPrettyBorder 是否绘制边框，默认绘制
func WithPrettyBorder(show bool) PrettyOptions {
	return func(s *PrettyFormatStrategy) {
		s.showBorder = show
	}
}

// WithPrettyLogStrategy 输出策略，默认输出到终端
func WithPrettyLogStrategy(ls LogStrategy) PrettyOptions {
	return func(s *PrettyFormatStrategy) {
		s.logStrategy = ls
	}
}

// PrettyFormatStrategy 为每条日志绘制边框，附带goroutine信息和调用栈：
//
//	┌──────────────────────────
//	│ Thread information
//	├┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄
//	│ Method stack history
//	├┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄┄
//	│ Log message
//	└──────────────────────────
type PrettyFormatStrategy struct {
	// 全局tag
	tag string
	// 调用栈层数
	methodCount int
	// 额外跳过的调用栈层数
	methodOffset int
	// 是否输出goroutine信息
	showThreadInfo bool
	// 是否绘制边框
	showBorder bool
	// 输出策略
	logStrategy LogStrategy
}

func NewPrettyFormatStrategy(opts ...PrettyOptions) *PrettyFormatStrategy {
	s := &PrettyFormatStrategy{
		tag:            DefaultTag,
		methodCount:    DefaultMethodCount,
		methodOffset:   DefaultMethodOffset,
		showThreadInfo: true,
		showBorder:     true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.methodCount < 0 {
		s.methodCount = DefaultMethodCount
	}
	if s.methodOffset < 0 {
		s.methodOffset = DefaultMethodOffset
	}
	if s.logStrategy == nil {
		s.logStrategy = NewConsoleLogStrategy(nil)
	}

	return s
}

func (s *PrettyFormatStrategy) Log(priority Priority, onceTag, message string) {
	tag := formatTag(s.tag, onceTag)

	s.logTopBorder(priority, tag)
	s.logHeaderContent(priority, tag)
	if s.methodCount > 0 {
		s.logDivider(priority, tag)
	}

	for _, chunk := range splitChunks(message, ChunkSize) {
		s.logContent(priority, tag, chunk)
	}
	s.logBottomBorder(priority, tag)
}

func (s *PrettyFormatStrategy) logTopBorder(priority Priority, tag string) {
	if s.showBorder {
		s.logStrategy.Log(priority, tag, TopBorder)
	}
}

func (s *PrettyFormatStrategy) logBottomBorder(priority Priority, tag string) {
	if s.showBorder {
		s.logStrategy.Log(priority, tag, BottomBorder)
	}
}

func (s *PrettyFormatStrategy) logDivider(priority Priority, tag string) {
	if s.showBorder {
		s.logStrategy.Log(priority, tag, MiddleBorder)
	}
}

func (s *PrettyFormatStrategy) linePrefix() string {
	if s.showBorder {
		return horizontalLine + " "
	}
	return ""
}

// logHeaderContent 输出goroutine信息和调用栈，调用栈由远到近，每层多缩进三个空格
func (s *PrettyFormatStrategy) logHeaderContent(priority Priority, tag string) {
	if s.showThreadInfo {
		s.logStrategy.Log(priority, tag, s.linePrefix()+"Thread: "+core.ThreadName())
		s.logDivider(priority, tag)
	}

	if s.methodCount == 0 {
		return
	}

	frames := core.Callers(0)
	offset := core.FirstOutside(frames, loggerPackages...) + s.methodOffset
	count := s.methodCount
	// 请求的层数超过了实际的调用栈，截断
	if offset+count > len(frames) {
		count = len(frames) - offset
	}

	var level string
	for i := count - 1; i >= 0; i-- {
		var builder strings.Builder
		builder.WriteString(s.linePrefix())
		builder.WriteString(level)
		builder.WriteString(frames[offset+i].String())
		s.logStrategy.Log(priority, tag, builder.String())
		level += "   "
	}
}

// logContent 按换行拆分，每一行单独输出，末尾的空行丢弃
func (s *PrettyFormatStrategy) logContent(priority Priority, tag, chunk string) {
	lines := strings.Split(strings.ReplaceAll(chunk, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		s.logStrategy.Log(priority, tag, s.linePrefix()+line)
	}
}

// splitChunks 按字节数切分消息，不会切断一个UTF-8字符
func splitChunks(message string, size int) []string {
	if len(message) <= size {
		return []string{message}
	}

	chunks := make([]string, 0, len(message)/size+1)
	for len(message) > size {
		end := size
		for end > 0 && !utf8.RuneStart(message[end]) {
			end--
		}
		if end == 0 {
			end = size
		}
		chunks = append(chunks, message[:end])
		message = message[end:]
	}
	if message != "" {
		chunks = append(chunks, message)
	}

	return chunks
}

// Flush 等待输出策略中已投递的日志落地
func (s *PrettyFormatStrategy) Flush(ctx context.Context) error {
	return flushTarget(ctx, s.logStrategy)
}

func (s *PrettyFormatStrategy) Close() error {
	return closeTarget(s.logStrategy)
}
