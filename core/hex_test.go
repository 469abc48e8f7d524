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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteToHex(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		b       byte
		wantRes string
	}{
		{
			name:    "补零",
			b:       0x08,
			wantRes: "08",
		},
		{
			name:    "大写",
			b:       0xab,
			wantRes: "AB",
		},
		{
			name:    "最小值",
			b:       0x00,
			wantRes: "00",
		},
		{
			name:    "最大值",
			b:       0xff,
			wantRes: "FF",
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantRes, ByteToHex(tc.b))
		})
	}
}

func TestBytesToHex(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		bs      []byte
		sep     string
		wantRes string
	}{
		{
			name:    "紧凑格式",
			bs:      []byte{0x14, 0x33},
			wantRes: "[1433]",
		},
		{
			name:    "空格分隔",
			bs:      []byte{0x14, 0x33, 0xf2},
			sep:     " ",
			wantRes: "[14 33 F2]",
		},
		{
			name:    "单个字节",
			bs:      []byte{0x0e},
			sep:     " ",
			wantRes: "[0E]",
		},
		{
			name:    "空数组",
			bs:      []byte{},
			sep:     " ",
			wantRes: "[]",
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantRes, BytesToHex(tc.bs, tc.sep))
		})
	}
}
