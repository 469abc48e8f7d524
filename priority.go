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
	"fmt"
	"math"
)

// Priority 日志优先级，数值与平台日志的约定保持一致(2~7)
type Priority int

const (
	// VerbosePriority 最详细的输出，通常只在开发调试时打开
	VerbosePriority Priority = iota + 2
	// DebugPriority 调试信息
	DebugPriority
	// InfoPriority 常规运行信息
	InfoPriority
	// WarnPriority 存在风险，但不影响系统正常运行
	WarnPriority
	// ErrorPriority 出现了明显的错误，系统仍可运行
	ErrorPriority
	// AssertPriority 不应该发生的严重错误(What a Terrible Failure)
	AssertPriority

	// PriorityOff 作为适配器的最低优先级时关闭该适配器的全部输出
	PriorityOff Priority = math.MaxInt

	_minPriority = VerbosePriority
	_maxPriority = AssertPriority
)

// String 返回小写格式的优先级名称
func (p Priority) String() string {
	switch p {
	case VerbosePriority:
		return "verbose"
	case DebugPriority:
		return "debug"
	case InfoPriority:
		return "info"
	case WarnPriority:
		return "warn"
	case ErrorPriority:
		return "error"
	case AssertPriority:
		return "assert"
	case PriorityOff:
		return "off"
	default:
		return fmt.Sprintf("unknown priority(%d)", int(p))
	}
}

// UpperString 返回大写格式的优先级名称
func (p Priority) UpperString() string {
	switch p {
	case VerbosePriority:
		return "VERBOSE"
	case DebugPriority:
		return "DEBUG"
	case InfoPriority:
		return "INFO"
	case WarnPriority:
		return "WARN"
	case ErrorPriority:
		return "ERROR"
	case AssertPriority:
		return "ASSERT"
	case PriorityOff:
		return "OFF"
	default:
		return fmt.Sprintf("UNKNOWN PRIORITY(%d)", int(p))
	}
}

// Letter 单字母缩写，CSV格式中使用
func (p Priority) Letter() string {
	switch p {
	case VerbosePriority:
		return "V"
	case DebugPriority:
		return "D"
	case InfoPriority:
		return "I"
	case WarnPriority:
		return "W"
	case ErrorPriority:
		return "E"
	case AssertPriority:
		return "A"
	default:
		return "UNKNOWN"
	}
}

// valid 是否是可以输出的优先级
func (p Priority) valid() bool {
	return p >= _minPriority && p <= _maxPriority
}

// clampPriority 低于VerbosePriority的阈值统一提升到VerbosePriority
func clampPriority(p Priority) Priority {
	if p < _minPriority {
		return _minPriority
	}
	return p
}
