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

import "fmt"

const (
	VerboseColor Color = 37
	DebugColor   Color = 36
	InfoColor    Color = 32
	WarnColor    Color = 33
	ErrorColor   Color = 31
	AssertColor  Color = 35
)

type Color uint8

func (c Color) String(s string) string {
	return fmt.Sprintf("\x1b[1;%dm[%s]\x1b[0m ", uint8(c), s)
}

// ColorPlugin 终端输出的优先级前缀插件
type ColorPlugin interface {
	Format(enabled bool, priority Priority) string
}

type ANSIColorPlugin struct{}

func NewANSIColorPlugin() ColorPlugin {
	return &ANSIColorPlugin{}
}

func (p *ANSIColorPlugin) Format(enabled bool, priority Priority) string {
	if enabled {
		switch priority {
		case VerbosePriority:
			return VerboseColor.String(priority.Letter())
		case DebugPriority:
			return DebugColor.String(priority.Letter())
		case InfoPriority:
			return InfoColor.String(priority.Letter())
		case WarnPriority:
			return WarnColor.String(priority.Letter())
		case ErrorPriority:
			return ErrorColor.String(priority.Letter())
		case AssertPriority:
			return AssertColor.String(priority.Letter())
		default:
		}
	}

	return "[" + priority.Letter() + "] "
}
