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

// ConsoleLogStrategy 同步输出策略，直接把日志交给平台日志
type ConsoleLogStrategy struct {
	sink PlatformSink
}

// NewConsoleLogStrategy sink为nil时输出到标准输出
func NewConsoleLogStrategy(sink PlatformSink) *ConsoleLogStrategy {
	if sink == nil {
		sink = NewWriterSink(nil)
	}

	return &ConsoleLogStrategy{sink: sink}
}

func (c *ConsoleLogStrategy) Log(priority Priority, tag, message string) {
	if tag == "" {
		tag = DefaultTag
	}

	c.sink.WriteLine(priority, tag, message)
}

func (c *ConsoleLogStrategy) Flush(ctx context.Context) error {
	return flushTarget(ctx, c.sink)
}
