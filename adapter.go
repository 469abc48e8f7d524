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

	"github.com/pkg/errors"

	"github.com/TimeWtr/elog/errorx"
)

// priorityAdapter 优先级过滤+格式化策略，是两种内置适配器的公共实现
type priorityAdapter struct {
	// 格式化策略
	fs FormatStrategy
	// 允许输出的最低优先级
	priority Priority
}

func newPriorityAdapter(fs FormatStrategy, priority Priority) priorityAdapter {
	if fs == nil {
		panic(errors.WithStack(errorx.ErrNilFormatStrategy))
	}

	return priorityAdapter{
		fs:       fs,
		priority: clampPriority(priority),
	}
}

func (a *priorityAdapter) IsLoggable(priority Priority, _ string) bool {
	return priority >= a.priority
}

func (a *priorityAdapter) Log(priority Priority, tag, message string) {
	a.fs.Log(priority, tag, message)
}

// MinPriority 允许输出的最低优先级
func (a *priorityAdapter) MinPriority() Priority {
	return a.priority
}

// FormatStrategy 适配器使用的格式化策略
func (a *priorityAdapter) FormatStrategy() FormatStrategy {
	return a.fs
}

func (a *priorityAdapter) Flush(ctx context.Context) error {
	return flushTarget(ctx, a.fs)
}

func (a *priorityAdapter) Close() error {
	return closeTarget(a.fs)
}

// ConsoleLogAdapter 终端输出适配器，默认使用带边框的PrettyFormatStrategy
type ConsoleLogAdapter struct {
	priorityAdapter
}

// NewConsoleLogAdapter fs为nil属于编程错误，直接panic，低于VerbosePriority的优先级会被提升到VerbosePriority
func NewConsoleLogAdapter(fs FormatStrategy, priority Priority) *ConsoleLogAdapter {
	return &ConsoleLogAdapter{priorityAdapter: newPriorityAdapter(fs, priority)}
}

// DefaultConsoleLogAdapter 默认配置的终端适配器，输出全部优先级
func DefaultConsoleLogAdapter() *ConsoleLogAdapter {
	return NewConsoleLogAdapter(NewPrettyFormatStrategy(), VerbosePriority)
}

// DiskLogAdapter 磁盘输出适配器，默认使用CsvFormatStrategy
type DiskLogAdapter struct {
	priorityAdapter
}

func NewDiskLogAdapter(fs FormatStrategy, priority Priority) *DiskLogAdapter {
	return &DiskLogAdapter{priorityAdapter: newPriorityAdapter(fs, priority)}
}

// DefaultDiskLogAdapter 默认配置的磁盘适配器，写入系统临时目录下的ELog文件夹
func DefaultDiskLogAdapter() *DiskLogAdapter {
	return NewDiskLogAdapter(NewCsvFormatStrategy(), VerbosePriority)
}
