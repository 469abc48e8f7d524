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
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"sync"
)

var (
	processName     string
	processNameOnce sync.Once
	// 进程名只保留字母、数字、点和下划线
	processNameFilter = regexp.MustCompile(`[^A-Za-z0-9._]`)
)

// Pid 当前进程ID
func Pid() int {
	return os.Getpid()
}

// GoroutineID 从runtime.Stack的首行"goroutine 18 [running]:"解析当前goroutine的ID，
// 解析失败时返回0
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if idx := bytes.IndexByte(line, ' '); idx > 0 {
		line = line[:idx]
	}

	id, err := strconv.ParseUint(string(line), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ThreadName 当前执行单元的名称，格式为goroutine-18
func ThreadName() string {
	return "goroutine-" + strconv.FormatUint(GoroutineID(), 10)
}

// ProcessName 进程名称，优先读取/proc/self/cmdline，读取失败时使用os.Args[0]，
// 结果只计算一次
func ProcessName() string {
	processNameOnce.Do(func() {
		processName = loadProcessName()
	})
	return processName
}

func loadProcessName() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err == nil {
		if idx := bytes.IndexByte(data, 0); idx >= 0 {
			data = data[:idx]
		}
		if name := sanitizeProcessName(filepath.Base(string(data))); name != "" {
			return name
		}
	}

	if len(os.Args) > 0 {
		if name := sanitizeProcessName(filepath.Base(os.Args[0])); name != "" {
			return name
		}
	}

	return Null
}

func sanitizeProcessName(name string) string {
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return processNameFilter.ReplaceAllString(name, "")
}
