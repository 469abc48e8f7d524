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

import "context"

// DefaultTag 没有配置任何tag时使用的默认tag
const DefaultTag = "ELOG"

// FormatStrategy 格式化策略，决定一条日志最终被渲染成什么样的文本，
// onceTag为只生效一次的临时tag，可以为空
type FormatStrategy interface {
	Log(priority Priority, onceTag, message string)
}

// LogStrategy 输出策略，负责把已经渲染好的文本真正投递出去(终端、文件)
type LogStrategy interface {
	Log(priority Priority, tag, message string)
}

// LogAdapter 一个逻辑上的输出目的地，由优先级过滤和格式化策略组成
type LogAdapter interface {
	// IsLoggable 是否允许输出该优先级的日志
	IsLoggable(priority Priority, tag string) bool
	// Log 渲染并投递日志
	Log(priority Priority, tag, message string)
}

// PlatformSink 宿主平台的日志输出能力，要求不阻塞太久且不会panic
type PlatformSink interface {
	WriteLine(priority Priority, tag, text string)
}

// Flusher 可以等待已投递日志落地的组件，比如异步的磁盘输出
type Flusher interface {
	Flush(ctx context.Context) error
}

// Closer 持有后台资源的组件
type Closer interface {
	Close() error
}

// SinkFunc 函数形式的PlatformSink
type SinkFunc func(priority Priority, tag, text string)

func (f SinkFunc) WriteLine(priority Priority, tag, text string) { f(priority, tag, text) }

// LogStrategyFunc 函数形式的LogStrategy
type LogStrategyFunc func(priority Priority, tag, message string)

func (f LogStrategyFunc) Log(priority Priority, tag, message string) { f(priority, tag, message) }

// formatTag 解析最终使用的tag：临时tag与配置的tag都存在且不同时拼接为"{tag}-{onceTag}"，
// 只有其中一个时使用存在的那个，都为空时回退到DefaultTag
func formatTag(tag, onceTag string) string {
	switch {
	case onceTag == "" && tag == "":
		return DefaultTag
	case onceTag == "" || onceTag == tag:
		return tag
	case tag == "":
		return onceTag
	default:
		return tag + "-" + onceTag
	}
}

func flushTarget(ctx context.Context, v any) error {
	if f, ok := v.(Flusher); ok {
		return f.Flush(ctx)
	}
	return nil
}

func closeTarget(v any) error {
	if c, ok := v.(Closer); ok {
		return c.Close()
	}
	return nil
}
