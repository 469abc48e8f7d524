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
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func newTestPretty(rec *recorder, opts ...PrettyOptions) *PrettyFormatStrategy {
	opts = append([]PrettyOptions{
		WithPrettyMethodCount(0),
		WithPrettyThreadInfo(false),
		WithPrettyLogStrategy(rec),
	}, opts...)
	return NewPrettyFormatStrategy(opts...)
}

func TestPrettyFormatStrategy_Log(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		opts    []PrettyOptions
		message string
		wantRes []string
	}{
		{
			name:    "单行",
			message: "hello",
			wantRes: []string{TopBorder, "│ hello", BottomBorder},
		},
		{
			name:    "多行",
			message: "a\nb\r\nc\n",
			wantRes: []string{TopBorder, "│ a", "│ b", "│ c", BottomBorder},
		},
		{
			name:    "不输出边框",
			opts:    []PrettyOptions{WithPrettyBorder(false)},
			message: "a\nb",
			wantRes: []string{"a", "b"},
		},
		{
			name:    "保留中间的空行",
			message: "a\n\nb",
			wantRes: []string{TopBorder, "│ a", "│ ", "│ b", BottomBorder},
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			s := newTestPretty(rec, tc.opts...)
			s.Log(DebugPriority, "", tc.message)
			assert.Equal(t, tc.wantRes, rec.messages())
		})
	}
}

func TestPrettyFormatStrategy_ThreadInfo(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	s := newTestPretty(rec, WithPrettyThreadInfo(true))
	s.Log(InfoPriority, "", "hello")

	lines := rec.messages()
	if assert.Len(t, lines, 5) {
		assert.Equal(t, TopBorder, lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "│ Thread: goroutine-"))
		assert.Equal(t, MiddleBorder, lines[2])
		assert.Equal(t, "│ hello", lines[3])
		assert.Equal(t, BottomBorder, lines[4])
	}
}

func TestPrettyFormatStrategy_Tag(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	s := newTestPretty(rec, WithPrettyTag("APP"))

	s.Log(WarnPriority, "X", "hello")
	for _, r := range rec.all() {
		assert.Equal(t, "APP-X", r.tag)
		assert.Equal(t, WarnPriority, r.priority)
	}

	s.Log(WarnPriority, "", "hello")
	assert.Equal(t, "APP", rec.last().tag)
}

func TestPrettyFormatStrategy_Chunk(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	s := newTestPretty(rec)
	message := strings.Repeat("a", ChunkSize*2+10)
	s.Log(DebugPriority, "", message)

	lines := rec.messages()
	// ⌈len/4000⌉行内容，只有一个顶部边框和一个底部边框
	if assert.Len(t, lines, 5) {
		assert.Equal(t, TopBorder, lines[0])
		assert.Equal(t, BottomBorder, lines[4])
		var content strings.Builder
		for _, line := range lines[1:4] {
			body := strings.TrimPrefix(line, "│ ")
			assert.LessOrEqual(t, len(body), ChunkSize)
			content.WriteString(body)
		}
		assert.Equal(t, message, content.String())
	}
}

func TestPrettyFormatStrategy_MethodCountClamp(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	s := newTestPretty(rec, WithPrettyMethodCount(1000), WithPrettyMethodOffset(1000))

	assert.NotPanics(t, func() { s.Log(DebugPriority, "", "hello") })
	assert.Equal(t, []string{TopBorder, MiddleBorder, "│ hello", BottomBorder}, rec.messages())
}

func TestNewPrettyFormatStrategy_Defaults(t *testing.T) {
	t.Parallel()
	s := NewPrettyFormatStrategy(WithPrettyMethodCount(-1), WithPrettyMethodOffset(-5))
	assert.Equal(t, DefaultMethodCount, s.methodCount)
	assert.Equal(t, DefaultMethodOffset, s.methodOffset)
	assert.Equal(t, DefaultTag, s.tag)
	assert.True(t, s.showThreadInfo)
	assert.True(t, s.showBorder)
	assert.IsType(t, &ConsoleLogStrategy{}, s.logStrategy)
}

func TestSplitChunks(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		message   string
		size      int
		wantCount int
	}{
		{
			name:      "不需要切分",
			message:   "hello",
			size:      10,
			wantCount: 1,
		},
		{
			name:      "恰好等于块大小",
			message:   strings.Repeat("a", 10),
			size:      10,
			wantCount: 1,
		},
		{
			name:      "ASCII切分",
			message:   strings.Repeat("a", 25),
			size:      10,
			wantCount: 3,
		},
		{
			name:      "不切断多字节字符",
			message:   strings.Repeat("中", 2000),
			size:      ChunkSize,
			wantCount: 2,
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			chunks := splitChunks(tc.message, tc.size)
			assert.Len(t, chunks, tc.wantCount)
			for _, chunk := range chunks {
				assert.True(t, utf8.ValidString(chunk))
				assert.LessOrEqual(t, len(chunk), tc.size)
			}
			assert.Equal(t, tc.message, strings.Join(chunks, ""))
		})
	}
}
