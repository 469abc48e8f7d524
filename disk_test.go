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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/semaphore"

	"github.com/TimeWtr/elog/errorx"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if !assert.NoError(t, err) {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func flushDisk(t *testing.T, d *DiskLogStrategy) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, d.Flush(ctx))
}

func TestNewDiskLogStrategy_Defaults(t *testing.T) {
	t.Parallel()
	d := NewDiskLogStrategy(t.TempDir(), WithDiskMaxFileSizeKB(0), WithDiskMaxFileCount(-1), WithDiskEvictPolicy(0))
	defer d.Close()

	assert.Equal(t, int64(DefaultFileSizeKB*BytesKB), d.maxFileSize)
	assert.Equal(t, DefaultFileCountMax, d.maxFileCount)
	assert.Equal(t, EvictOldest, d.policy)
	assert.Nil(t, d.cr)
}

func TestNewDiskLogStrategy_EmptyFolder(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewDiskLogStrategy("") })
}

func TestDiskLogStrategy_Rotate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		policy     EvictPolicy
		maxCount   int
		wantCounts []int
	}{
		{
			name:       "按大小轮转",
			policy:     EvictOldest,
			maxCount:   10,
			wantCounts: []int{4, 4, 2},
		},
		{
			name:       "超过数量上限删除最旧的文件",
			policy:     EvictOldest,
			maxCount:   2,
			wantCounts: []int{4, 2},
		},
		{
			name:       "超过数量上限不删除",
			policy:     EvictNone,
			maxCount:   2,
			wantCounts: []int{4, 4, 2},
		},
	}

	for _, tcs := range testCases {
		tc := tcs
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			folder := t.TempDir()
			d := NewDiskLogStrategy(folder,
				WithDiskMaxFileSizeKB(1),
				WithDiskMaxFileCount(tc.maxCount),
				WithDiskEvictPolicy(tc.policy),
			)
			defer d.Close()

			// 每条300字节，第4条写入后文件超过1KB
			for i := 0; i < 10; i++ {
				d.Log(InfoPriority, "", fmt.Sprintf("%03d", i)+strings.Repeat("x", 296)+"\n")
			}
			flushDisk(t, d)

			for i, count := range tc.wantCounts {
				assert.Len(t, readLines(t, d.rs.FileAt(i)), count)
			}
			_, err := os.Stat(d.rs.FileAt(len(tc.wantCounts)))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestDiskLogStrategy_Concurrent(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	d := NewDiskLogStrategy(folder, WithDiskMaxFileSizeKB(4), WithDiskMaxFileCount(1000))
	defer d.Close()

	const (
		goroutines = 8
		total      = 200
	)
	sem := semaphore.NewWeighted(4)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		_ = sem.Acquire(context.Background(), 1)
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			defer sem.Release(1)
			for i := 0; i < total; i++ {
				d.Log(DebugPriority, "", fmt.Sprintf("goroutine %d message %d\n", g, i))
			}
		}(g)
	}
	wg.Wait()
	flushDisk(t, d)
	assert.Equal(t, 0, d.Pending())

	seen := make(map[string]struct{}, goroutines*total)
	last, err := d.rs.lastIndex()
	assert.NoError(t, err)
	for i := 0; i <= last; i++ {
		for _, line := range readLines(t, d.rs.FileAt(i)) {
			seen[line] = struct{}{}
		}
	}

	// 每一条日志都完整出现，没有交错
	assert.Len(t, seen, goroutines*total)
	for g := 0; g < goroutines; g++ {
		for i := 0; i < total; i++ {
			_, ok := seen[fmt.Sprintf("goroutine %d message %d", g, i)]
			assert.True(t, ok)
		}
	}
}

func TestDiskLogStrategy_Order(t *testing.T) {
	t.Parallel()
	d := NewDiskLogStrategy(t.TempDir())
	defer d.Close()

	var want []string
	for i := 0; i < 100; i++ {
		msg := fmt.Sprintf("message %d", i)
		want = append(want, msg)
		d.Log(InfoPriority, "", msg+"\n")
	}
	flushDisk(t, d)

	assert.Equal(t, want, readLines(t, d.rs.FileAt(0)))
	_, err := os.Stat(filepath.Join(d.Folder(), lockFileName))
	assert.NoError(t, err)
}

func TestDiskLogStrategy_Close(t *testing.T) {
	t.Parallel()
	d := NewDiskLogStrategy(t.TempDir())
	d.Log(InfoPriority, "", "before close\n")
	assert.NoError(t, d.Close())
	assert.NoError(t, d.Close())

	// 关闭前入队的日志已经写完
	assert.Equal(t, []string{"before close"}, readLines(t, d.rs.FileAt(0)))

	d.Log(InfoPriority, "", "after close\n")
	assert.ErrorIs(t, d.Flush(context.Background()), errorx.ErrDiskClosed)
	assert.Equal(t, []string{"before close"}, readLines(t, d.rs.FileAt(0)))
}

func TestDiskLogStrategy_FlushTimeout(t *testing.T) {
	t.Parallel()
	d := NewDiskLogStrategy(t.TempDir())
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Flush(ctx)
	// 屏障可能已经被处理，也可能因为ctx取消返回
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestDiskLogStrategy_WriteError(t *testing.T) {
	t.Parallel()
	// 用普通文件占住文件夹路径，创建文件夹必然失败
	folder := filepath.Join(t.TempDir(), "occupied")
	assert.NoError(t, os.WriteFile(folder, []byte("file"), 0666))

	var failures atomic.Int64
	d := NewDiskLogStrategy(folder, WithDiskErrorHandler(func(err error) {
		failures.Add(1)
	}))
	defer d.Close()

	assert.NotPanics(t, func() {
		d.Log(ErrorPriority, "", "lost\n")
		d.Log(ErrorPriority, "", "lost again\n")
	})
	flushDisk(t, d)
	assert.Equal(t, int64(2), failures.Load())
}

func TestDiskLogStrategy_Sweep(t *testing.T) {
	t.Parallel()
	folder := t.TempDir()
	rs := NewRotateStrategy(folder, BytesKB, 2, EvictOldest)
	for i := 0; i < 4; i++ {
		writeFile(t, rs.FileAt(i), i+1)
	}

	d := NewDiskLogStrategy(folder, WithDiskMaxFileCount(2), WithDiskSweepSpec("@every 1s"))
	defer d.Close()
	assert.NotNil(t, d.cr)

	assert.Eventually(t, func() bool {
		last, err := rs.lastIndex()
		return err == nil && last == 1
	}, 5*time.Second, 100*time.Millisecond)
}

func TestDiskLogStrategy_InvalidSweepSpec(t *testing.T) {
	t.Parallel()
	var d *DiskLogStrategy
	assert.NotPanics(t, func() {
		d = NewDiskLogStrategy(t.TempDir(), WithDiskSweepSpec("not a cron spec"))
	})
	defer d.Close()
	assert.Nil(t, d.cr)
}

// ExampleNewDiskLogStrategy 磁盘日志示例
// 1. 创建磁盘输出策略，单个文件1KB，最多保留3个文件
// 2. 通过Csv格式化策略写入日志
// 3. 结束前Flush等待日志落盘，再Close释放后台goroutine
func ExampleNewDiskLogStrategy() {
	folder, err := os.MkdirTemp("", "elog")
	if err != nil {
		return
	}
	defer os.RemoveAll(folder)

	d := NewDiskLogStrategy(DefaultDiskFolder(folder),
		WithDiskMaxFileSizeKB(1),
		WithDiskMaxFileCount(3),
	)
	defer d.Close()

	fs := NewCsvFormatStrategy(WithCsvLogStrategy(d))
	for i := 0; i < 100; i++ {
		fs.Log(InfoPriority, "", fmt.Sprintf("disk message %d", i))
	}

	_ = d.Flush(context.Background())
}
