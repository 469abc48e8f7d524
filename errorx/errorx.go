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


package errorx

import "errors"

// 构造期的编程错误，只在配置/构造阶段出现，直接panic
var (
	ErrNilAdapter        = errors.New("log adapter cannot be nil")
	ErrNilFormatStrategy = errors.New("format strategy cannot be nil")
	ErrNilLogStrategy    = errors.New("log strategy cannot be nil")
	ErrNilSink           = errors.New("platform sink cannot be nil")
	ErrEmptyFolder       = errors.New("disk folder cannot be empty")
)

// 载荷错误，由Printer在本地恢复为替代日志
var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrInvalidXML  = errors.New("invalid xml")
)

var (
	ErrQueueClosed = errors.New("queue is closed")
	ErrDiskClosed  = errors.New("disk strategy is closed")
)
