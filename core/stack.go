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
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

const (
	// DefaultDepth 单次捕获的最大调用深度
	DefaultDepth = 64
	// DefaultSkip 跳过runtime.Callers和Callers本身
	DefaultSkip = 2
)

// funcNameCache 全局的PC与简短方法名的映射缓存，正常情况下方法的PC不会变化
var funcNameCache sync.Map

// pcsPool 复用PC切片，减少每次捕获堆栈时的分配
var pcsPool = sync.Pool{
	New: func() interface{} {
		pcs := make([]uintptr, DefaultDepth)
		return &pcs
	},
}

// Frame 单个调用帧
type Frame struct {
	// PC 程序计数器
	PC uintptr
	// Function 带完整包路径的方法名，比如github.com/TimeWtr/elog.(*LoggerPrinter).D
	Function string
	// File 源文件完整路径
	File string
	// Line 源文件行号
	Line int
}

// ShortFunc 去掉包路径前缀后的方法名，比如elog.(*LoggerPrinter).D
func (f Frame) ShortFunc() string {
	if f.Function == "" {
		return Unknown
	}

	if name, ok := funcNameCache.Load(f.PC); ok {
		s, _ := name.(string)
		return s
	}

	name := f.Function
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	funcNameCache.Store(f.PC, name)
	return name
}

// Package 方法所在的包路径
func (f Frame) Package() string {
	name := f.Function
	slash := strings.LastIndex(name, "/")
	if slash < 0 {
		slash = 0
	}
	if dot := strings.Index(name[slash:], "."); dot >= 0 {
		return name[:slash+dot]
	}
	return name
}

// String 格式：elog_test.TestPretty (pretty_test.go:42)
func (f Frame) String() string {
	var builder strings.Builder
	builder.WriteString(f.ShortFunc())
	builder.WriteString(" (")
	builder.WriteString(filepath.Base(f.File))
	builder.WriteString(":")
	builder.WriteString(strconv.Itoa(f.Line))
	builder.WriteString(")")
	return builder.String()
}

// Callers 捕获当前goroutine的调用栈，skip为0时第一帧是Callers的调用方，
// 返回的切片由内到外排列
func Callers(skip int) []Frame {
	ptr, _ := pcsPool.Get().(*[]uintptr)
	defer pcsPool.Put(ptr)

	pcs := *ptr
	n := runtime.Callers(skip+DefaultSkip, pcs)
	for n == len(pcs) {
		// 栈比缓冲区深，扩容后重新捕获
		pcs = make([]uintptr, len(pcs)*2)
		n = runtime.Callers(skip+DefaultSkip, pcs)
	}

	if n == 0 {
		return nil
	}

	frames := make([]Frame, 0, n)
	it := runtime.CallersFrames(pcs[:n])
	for {
		f, more := it.Next()
		frames = append(frames, Frame{
			PC:       f.PC,
			Function: f.Function,
			File:     f.File,
			Line:     f.Line,
		})
		if !more {
			break
		}
	}

	return frames
}

// FirstOutside 返回第一个不属于给定包的调用帧下标，全部属于时返回len(frames)
func FirstOutside(frames []Frame, pkgs ...string) int {
	for i, f := range frames {
		inside := false
		pkg := f.Package()
		for _, p := range pkgs {
			if pkg == p {
				inside = true
				break
			}
		}
		if !inside {
			return i
		}
	}

	return len(frames)
}
