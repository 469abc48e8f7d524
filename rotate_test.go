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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0666))
}

func TestRotateStrategy_Select(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name        string
		existing    map[int]int
		wantIndex   int
		wantCreated bool
	}{
		{
			name:        "空文件夹",
			wantIndex:   0,
			wantCreated: true,
		},
		{
			name:        "当前文件未满",
			existing:    map[int]int{0: 10},
			wantIndex:   0,
			wantCreated: false,
		},
		{
			name:        "当前文件已满",
			existing:    map[int]int{0: 100, 1: 100},
			wantIndex:   2,
			wantCreated: true,
		},
		{
			name:        "编号不连续时以第一个空缺为准",
			existing:    map[int]int{0: 10, 2: 10},
			wantIndex:   0,
			wantCreated: false,
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rs := NewRotateStrategy(t.TempDir(), 100, 10, EvictOldest)
			for index, size := range tc.existing {
				writeFile(t, rs.FileAt(index), size)
			}

			path, created, err := rs.Select()
			assert.NoError(t, err)
			assert.Equal(t, rs.FileAt(tc.wantIndex), path)
			assert.Equal(t, tc.wantCreated, created)
		})
	}
}

func TestRotateStrategy_Evict(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		policy    EvictPolicy
		files     int
		maxCount  int
		wantSizes []int
	}{
		{
			name:      "未超过上限",
			policy:    EvictOldest,
			files:     3,
			maxCount:  3,
			wantSizes: []int{1, 2, 3},
		},
		{
			name:      "删除最旧的文件并重新编号",
			policy:    EvictOldest,
			files:     5,
			maxCount:  2,
			wantSizes: []int{4, 5},
		},
		{
			name:      "不删除",
			policy:    EvictNone,
			files:     4,
			maxCount:  2,
			wantSizes: []int{1, 2, 3, 4},
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rs := NewRotateStrategy(t.TempDir(), 100, tc.maxCount, tc.policy)
			// 文件大小等于编号+1，用于识别重新编号后的文件
			for i := 0; i < tc.files; i++ {
				writeFile(t, rs.FileAt(i), i+1)
			}

			assert.NoError(t, rs.Evict())

			last, err := rs.lastIndex()
			assert.NoError(t, err)
			assert.Equal(t, len(tc.wantSizes)-1, last)
			for i, size := range tc.wantSizes {
				stat, err := os.Stat(rs.FileAt(i))
				if assert.NoError(t, err) {
					assert.Equal(t, int64(size), stat.Size())
				}
			}
		})
	}
}

func TestRotateStrategy_EnsureFolder(t *testing.T) {
	t.Parallel()
	folder := filepath.Join(t.TempDir(), "a", "b", DefaultDir)
	rs := NewRotateStrategy(folder, 100, 10, EvictOldest)
	assert.NoError(t, rs.EnsureFolder())

	stat, err := os.Stat(folder)
	assert.NoError(t, err)
	assert.True(t, stat.IsDir())
	assert.Equal(t, filepath.Join(folder, "logs_3.csv"), rs.FileAt(3))
}

func TestDefaultDiskFolder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultDir), DefaultDiskFolder(""))
	assert.Equal(t, filepath.Join("/data", DefaultDir), DefaultDiskFolder("/data"))
}

func TestEvictPolicy_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "oldest", EvictOldest.String())
	assert.Equal(t, "none", EvictNone.String())
	assert.Equal(t, "unknown evict policy(9)", EvictPolicy(9).String())
}
