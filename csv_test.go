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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trickstertwo/xclock"
)

func TestCsvFormatStrategy_Log(t *testing.T) {
	t.Parallel()
	ft := time.Date(2025, 1, 2, 3, 4, 5, 6*int(time.Millisecond), time.Local)
	testCases := []struct {
		name     string
		opts     []CsvOptions
		priority Priority
		onceTag  string
		message  string
		wantRes  string
	}{
		{
			name:     "完整时间",
			priority: DebugPriority,
			message:  "hello",
			wantRes:  fmt.Sprintf("%d/2025.01.02 03:04:05.006 D/CSV: hello\n", ft.UnixMilli()),
		},
		{
			name:     "不输出毫秒时间戳",
			opts:     []CsvOptions{WithCsvTimeMs(false)},
			priority: WarnPriority,
			message:  "hello",
			wantRes:  "2025.01.02 03:04:05.006 W/CSV: hello\n",
		},
		{
			name:     "换行替换",
			opts:     []CsvOptions{WithCsvTimeMs(false)},
			priority: ErrorPriority,
			message:  "a\nb\r\nc\rd",
			wantRes:  "2025.01.02 03:04:05.006 E/CSV: a <br> b <br> c <br> d\n",
		},
		{
			name:     "临时tag",
			opts:     []CsvOptions{WithCsvTimeMs(false)},
			priority: InfoPriority,
			onceTag:  "X",
			message:  "hello",
			wantRes:  "2025.01.02 03:04:05.006 I/CSV-X: hello\n",
		},
		{
			name:     "自定义时间格式",
			opts:     []CsvOptions{WithCsvTimeMs(false), WithCsvDateLayout("01.02 15:04")},
			priority: AssertPriority,
			message:  "hello",
			wantRes:  "01.02 03:04 A/CSV: hello\n",
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			opts := append([]CsvOptions{
				WithCsvTag("CSV"),
				WithCsvThreadInfo(false),
				WithCsvClock(xclock.NewFrozen(ft)),
				WithCsvLogStrategy(rec),
			}, tc.opts...)
			s := NewCsvFormatStrategy(opts...)
			s.Log(tc.priority, tc.onceTag, tc.message)
			assert.Equal(t, tc.wantRes, rec.last().message)
			assert.Equal(t, tc.priority, rec.last().priority)
		})
	}
}

func TestCsvFormatStrategy_ThreadInfo(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	s := NewCsvFormatStrategy(WithCsvTimeMs(false), WithCsvLogStrategy(rec))
	s.Log(InfoPriority, "", "hello")

	pattern := fmt.Sprintf(`^\d{4}\.\d{2}\.\d{2} \d{2}:\d{2}:\d{2}\.\d{3} %d-goroutine-\d+/[A-Za-z0-9._]+ I/ELOG: hello\n$`, os.Getpid())
	assert.Regexp(t, pattern, rec.last().message)
}
