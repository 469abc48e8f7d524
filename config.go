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

// Config 声明式的配置，通过Build组装出Printer和适配器列表
type Config struct {
	// 全局tag，console和disk没有单独设置时使用
	tag string
	// 是否启用默认的终端适配器，默认启用
	enableConsole bool
	// 是否启用默认的磁盘适配器，默认关闭
	enableDisk bool
	// 自定义Printer，默认NewPrinter()
	printer Printer
	// 自定义适配器
	adapters []LogAdapter

	// 终端tag
	consoleTag string
	// 终端最低优先级
	consolePriority Priority
	// 调用栈层数
	methodCount int
	// 调用栈额外偏移
	methodOffset int
	// 是否输出goroutine信息
	showThreadInfo bool
	// 是否输出边框
	showBorder bool
	// 终端的平台输出能力
	sink PlatformSink
	// 终端的自定义输出策略，优先级高于sink
	consoleLogStrategy LogStrategy

	// 磁盘tag
	diskTag string
	// 磁盘最低优先级
	diskPriority Priority
	// 是否输出毫秒时间戳
	showTimeMs bool
	// 是否输出进程和goroutine信息
	diskThreadInfo bool
	// 时间来源
	clock xclock.Clock
	// 可读时间格式
	dateLayout string
	// 磁盘的自定义输出策略
	diskLogStrategy LogStrategy
	// 日志根路径，实际文件夹为diskPath/ELog
	diskPath string
	// 单个文件的大小上限，单位KB
	maxFileSizeKB int
	// 最多保留的文件数量
	maxFileCount int
	// 数量超出上限时的处理策略
	evictPolicy EvictPolicy
	// 定时清理的cron表达式
	sweepSpec string
	// 磁盘写入失败的观察者
	writeErrorHandler func(error)
}

// NewConfig 创建配置，非法的数值会被修正为默认值
func NewConfig(opts ...Options) *Config {
	cfg := &Config{
		tag:             DefaultTag,
		enableConsole:   true,
		consolePriority: VerbosePriority,
		methodCount:     DefaultMethodCount,
		methodOffset:    DefaultMethodOffset,
		showThreadInfo:  true,
		showBorder:      true,
		diskPriority:    VerbosePriority,
		showTimeMs:      true,
		diskThreadInfo:  true,
		dateLayout:      DefaultDateLayout,
		maxFileSizeKB:   DefaultFileSizeKB,
		maxFileCount:    DefaultFileCountMax,
		evictPolicy:     EvictOldest,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cfg.normalize()
	return cfg
}

func (c *Config) normalize() {
	if c.tag == "" {
		c.tag = DefaultTag
	}
	if c.consoleTag == "" {
		c.consoleTag = c.tag
	}
	if c.diskTag == "" {
		c.diskTag = c.tag
	}

	c.consolePriority = clampPriority(c.consolePriority)
	c.diskPriority = clampPriority(c.diskPriority)

	if c.methodCount < 0 {
		c.methodCount = DefaultMethodCount
	}
	if c.methodOffset < 0 {
		c.methodOffset = DefaultMethodOffset
	}
	if c.dateLayout == "" {
		c.dateLayout = DefaultDateLayout
	}
	if c.maxFileSizeKB < 1 {
		c.maxFileSizeKB = DefaultFileSizeKB
	}
	if c.maxFileCount <= 0 {
		c.maxFileCount = DefaultFileCountMax
	}
	if c.evictPolicy != EvictOldest && c.evictPolicy != EvictNone {
		c.evictPolicy = EvictOldest
	}
}

// DiskFolder 磁盘日志实际写入的文件夹
func (c *Config) DiskFolder() string {
	return DefaultDiskFolder(c.diskPath)
}

// Build 组装Printer：按开关创建默认的终端/磁盘适配器，再追加自定义适配器，
// 两者都没有时退回一个默认的终端适配器，最后替换Printer中原有的适配器
func (c *Config) Build() Printer {
	printer := c.printer
	if printer == nil {
		printer = NewPrinter()
	}

	var adapters []LogAdapter
	if c.enableConsole {
		adapters = append(adapters, c.consoleAdapter())
	}
	if c.enableDisk {
		adapters = append(adapters, c.diskAdapter())
	}

	if len(adapters) == 0 && len(c.adapters) == 0 {
		adapters = append(adapters, DefaultConsoleLogAdapter())
	} else {
		adapters = append(adapters, c.adapters...)
	}

	printer.ClearLogAdapters()
	printer.AddAdapters(adapters...)
	return printer
}

func (c *Config) consoleAdapter() *ConsoleLogAdapter {
	ls := c.consoleLogStrategy
	if ls == nil {
		ls = NewConsoleLogStrategy(c.sink)
	}

	fs := NewPrettyFormatStrategy(
		WithPrettyTag(c.consoleTag),
		WithPrettyMethodCount(c.methodCount),
		WithPrettyMethodOffset(c.methodOffset),
		WithPrettyThreadInfo(c.showThreadInfo),
		WithPrettyBorder(c.showBorder),
		WithPrettyLogStrategy(ls),
	)
	return NewConsoleLogAdapter(fs, c.consolePriority)
}

func (c *Config) diskAdapter() *DiskLogAdapter {
	ls := c.diskLogStrategy
	if ls == nil {
		ls = NewDiskLogStrategy(c.DiskFolder(),
			WithDiskMaxFileSizeKB(c.maxFileSizeKB),
			WithDiskMaxFileCount(c.maxFileCount),
			WithDiskEvictPolicy(c.evictPolicy),
			WithDiskSweepSpec(c.sweepSpec),
			WithDiskErrorHandler(c.writeErrorHandler),
		)
	}

	fs := NewCsvFormatStrategy(
		WithCsvTag(c.diskTag),
		WithCsvTimeMs(c.showTimeMs),
		WithCsvThreadInfo(c.diskThreadInfo),
		WithCsvClock(c.clock),
		WithCsvDateLayout(c.dateLayout),
		WithCsvLogStrategy(ls),
	)
	return NewDiskLogAdapter(fs, c.diskPriority)
}
