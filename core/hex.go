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

import "strings"

const hexDigits = "0123456789ABCDEF"

// ByteToHex 单字节转两位大写十六进制，比如0x08 -> "08"
func ByteToHex(b byte) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0x0F]})
}

// BytesToHex 字节数组转十六进制，格式为[14 33]，sep为字节之间的分隔符，
// 传入空分隔符时输出紧凑格式[1433]
func BytesToHex(bs []byte, sep string) string {
	var builder strings.Builder
	builder.Grow(len(bs)*(2+len(sep)) + 2)
	builder.WriteByte('[')
	for i, b := range bs {
		if i > 0 {
			builder.WriteString(sep)
		}
		builder.WriteByte(hexDigits[b>>4])
		builder.WriteByte(hexDigits[b&0x0F])
	}
	builder.WriteByte(']')
	return builder.String()
}
