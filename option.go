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
	"github.com/trickstertwo/xclock"
)

type Options func(*Config)

// WithTag 全局tag，终端和磁盘没有单独设置tag时使用，默认为DefaultTag
func WithTag(tag string) Options {
	return func(c *Config) {
		c.tag = tag
	}
}

// WithConsole 是否启用默认的终端适配器，默认启用
func WithConsole(enable bool) Options {
	return func(c *Config) {
		c.enableConsole = enable
	}
}

// WithDisk 是否启用默认的磁盘适配器，默认关闭
func WithDisk(enable bool) Options {
	return func(c *Config) {
		c.enableDisk = enable
	}
}

// WithPrinter 使用自定义的Printer，Build时会清空它原有的适配器
func WithPrinter(p Printer) Options {
	return func(c *Config) {
		c.printer = p
	}
}

// WithAdapter 追加自定义适配器，nil会被忽略
func WithAdapter(adapters ...LogAdapter) Options {
	return func(c *Config) {
		for _, adapter := range adapters {
			if adapter != nil {
				c.adapters = append(c.adapters, adapter)
			}
		}
	}
}

// WithConsoleTag 终端tag
func WithConsoleTag(tag string) Options {
	return func(c *Config) {
		c.consoleTag = tag
	}
}

// WithConsolePriority 终端输出的最低优先级，PriorityOff关闭输出
func WithConsolePriority(priority Priority) Options {
	return func(c *Config) {
		c.consolePriority = priority
	}
}

// WithMethodCount 输出的调用栈层数，负数时使用默认值2
func WithMethodCount(count int) Options {
	return func(c *Config) {
		c.methodCount = count
	}
}

// WithMethodOffset 调用栈额外跳过的层数，负数时使用默认值0
func WithMethodOffset(offset int) Options {
	return func(c *Config) {
		c.methodOffset = offset
	}
}

func WithThreadInfo(show bool) Options {
	return func(c *Config) {
		c.showThreadInfo = show
	}
}

func WithBorder(show bool) Options {
	return func(c *Config) {
		c.showBorder = show
	}
}

// WithSink 终端使用的平台输出能力，默认标准输出
func WithSink(sink PlatformSink) Options {
	return func(c *Config) {
		c.sink = sink
	}
}

// WithConsoleLogStrategy 终端的自定义输出策略，设置后WithSink不再生效
func WithConsoleLogStrategy(ls LogStrategy) Options {
	return func(c *Config) {
		c.consoleLogStrategy = ls
	}
}

// WithDiskTag 磁盘tag
func WithDiskTag(tag string) Options {
	return func(c *Config) {
		c.diskTag = tag
	}
}

// WithDiskPriority 磁盘输出的最低优先级
func WithDiskPriority(priority Priority) Options {
	return func(c *Config) {
		c.diskPriority = priority
	}
}

// WithTimeMs 磁盘日志是否输出毫秒时间戳
func WithTimeMs(show bool) Options {
	return func(c *Config) {
		c.showTimeMs = show
	}
}

// WithDiskThreadInfo 磁盘日志是否输出进程和goroutine信息
func WithDiskThreadInfo(show bool) Options {
	return func(c *Config) {
		c.diskThreadInfo = show
	}
}

// WithClock 磁盘日志的时间来源，测试中可以使用xclock.NewFrozen固定时间
func WithClock(clock xclock.Clock) Options {
	return func(c *Config) {
		c.clock = clock
	}
}

// WithDateLayout 磁盘日志的可读时间格式
func WithDateLayout(layout string) Options {
	return func(c *Config) {
		c.dateLayout = layout
	}
}

// WithDiskLogStrategy 磁盘的自定义输出策略，设置后轮转相关的配置不再生效
func WithDiskLogStrategy(ls LogStrategy) Options {
	return func(c *Config) {
		c.diskLogStrategy = ls
	}
}

// WithDiskPath 日志根路径，文件写入diskPath/ELog/logs_N.csv，默认系统临时目录
func WithDiskPath(path string) Options {
	return func(c *Config) {
		c.diskPath = path
	}
}

// WithMaxFileSizeKB 单个文件的大小上限，默认500KB
func WithMaxFileSizeKB(kb int) Options {
	return func(c *Config) {
		c.maxFileSizeKB = kb
	}
}

// WithMaxFileCount 最多保留的文件数量，默认10
func WithMaxFileCount(count int) Options {
	return func(c *Config) {
		c.maxFileCount = count
	}
}

// WithEvictPolicy 文件数量超出上限时的处理策略，默认EvictOldest
func WithEvictPolicy(policy EvictPolicy) Options {
	return func(c *Config) {
		c.evictPolicy = policy
	}
}

// WithSweepSpec 定时清理的cron表达式，为空时只在新建文件时清理
func WithSweepSpec(spec string) Options {
	return func(c *Config) {
		c.sweepSpec = spec
	}
}

// WithWriteErrorHandler 观察磁盘写入失败的错误
func WithWriteErrorHandler(fn func(error)) Options {
	return func(c *Config) {
		c.writeErrorHandler = fn
	}
}
