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
	"fmt"
	"net"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Unknown 无法识别的内容统一输出
	Unknown = "UNKNOWN"
	// Null 空对象的字符串形式
	Null = "null"
)

// StackTraceString 将错误转换为带堆栈的字符串，pkg/errors包装的错误会输出完整的调用栈，
// 错误链中包含DNS解析错误时返回空字符串，网络不可用时避免刷屏
func StackTraceString(err error) string {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ""
	}

	return fmt.Sprintf("%+v", err)
}

// ToString 对象转字符串，数组和切片逐个元素转换(支持多维)，nil输出null
func ToString(obj any) string {
	if obj == nil {
		return Null
	}

	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return Null
		}
		return arrayString(v)
	case reflect.Array:
		return arrayString(v)
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		if v.IsNil() {
			return Null
		}
	default:
	}

	return fmt.Sprint(obj)
}

func arrayString(v reflect.Value) string {
	var builder strings.Builder
	builder.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(ToString(v.Index(i).Interface()))
	}
	builder.WriteByte(']')
	return builder.String()
}
