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
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// DefaultDir 日志文件夹名称，拼接在配置的根路径之后
	DefaultDir = "ELog"
	// DefaultFileName 日志文件名前缀，完整名称为logs_0.csv、logs_1.csv...
	DefaultFileName = "logs"
	// FileExt 日志文件后缀
	FileExt = ".csv"
	// BytesKB 1KB
	BytesKB = 1024
	// DefaultFileSizeKB 单个日志文件的默认大小上限
	DefaultFileSizeKB = 500
	// DefaultFileCountMax 默认最多保留的日志文件数量
	DefaultFileCountMax = 10
)

// EvictPolicy 日志文件数量超过上限时的处理策略
type EvictPolicy uint8

const (
	// EvictOldest 删除最旧的文件，剩余文件重新从0开始编号
	EvictOldest EvictPolicy = iota + 1
	// EvictNone 只记录上限，不删除任何文件，由调用方自行清理
	EvictNone
)

func (p EvictPolicy) String() string {
	switch p {
	case EvictOldest:
		return "oldest"
	case EvictNone:
		return "none"
	default:
		return fmt.Sprintf("unknown evict policy(%d)", uint8(p))
	}
}

// DefaultDiskFolder 日志文件夹，basePath为空时使用系统临时目录
func DefaultDiskFolder(basePath string) string {
	if basePath == "" {
		basePath = os.TempDir()
	}
	return filepath.Join(basePath, DefaultDir)
}

// RotateStrategy 按文件编号轮转的策略，只在磁盘写入的goroutine中使用，不需要加锁。
// 每次写入前都重新扫描文件夹，保证轮转判断与磁盘上的实际情况一致：
// 1. 从logs_0.csv开始递增编号，直到找到第一个不存在的编号
// 2. 最后一个存在的文件就是当前文件，没有任何文件时创建logs_0.csv
// 3. 当前文件大小达到阈值时，写入下一个编号的新文件
type RotateStrategy struct {
	// 日志文件夹
	folder string
	// 文件名前缀
	fileName string
	// 单个文件的大小阈值，单位bytes
	threshold int64
	// 最多保留的文件数量
	maxFileCount int
	// 超过数量上限时的处理策略
	policy EvictPolicy
}

func NewRotateStrategy(folder string, threshold int64, maxFileCount int, policy EvictPolicy) *RotateStrategy {
	return &RotateStrategy{
		folder:       folder,
		fileName:     DefaultFileName,
		threshold:    threshold,
		maxFileCount: maxFileCount,
		policy:       policy,
	}
}

// FileAt 指定编号的日志文件路径
func (r *RotateStrategy) FileAt(index int) string {
	return filepath.Join(r.folder, fmt.Sprintf("%s_%d%s", r.fileName, index, FileExt))
}

// EnsureFolder 文件夹不存在时创建，包括所有父目录
func (r *RotateStrategy) EnsureFolder() error {
	// #nosec G301 - 日志目录需要被其他进程读取
	if err := os.MkdirAll(r.folder, 0755); err != nil {
		return errors.Wrapf(err, "create folder %s", r.folder)
	}
	return nil
}

// Select 选出本次写入的文件，created表示这是一个新文件
func (r *RotateStrategy) Select() (path string, created bool, err error) {
	last, err := r.lastIndex()
	if err != nil {
		return "", false, err
	}

	if last < 0 {
		return r.FileAt(0), true, nil
	}

	current := r.FileAt(last)
	stat, err := os.Stat(current)
	if err != nil {
		return "", false, errors.Wrapf(err, "stat %s", current)
	}

	if stat.Size() >= r.threshold {
		return r.FileAt(last + 1), true, nil
	}

	return current, false, nil
}

// Evict 文件数量超过上限时删除编号最小(最旧)的文件，并把剩余文件从0开始重新编号，
// 保证Select的连续编号扫描仍然有效
func (r *RotateStrategy) Evict() error {
	if r.policy == EvictNone || r.maxFileCount <= 0 {
		return nil
	}

	last, err := r.lastIndex()
	if err != nil {
		return err
	}

	total := last + 1
	if total <= r.maxFileCount {
		return nil
	}

	removed := total - r.maxFileCount
	for i := 0; i < removed; i++ {
		if err = os.Remove(r.FileAt(i)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "remove %s", r.FileAt(i))
		}
	}

	for i := removed; i < total; i++ {
		if err = os.Rename(r.FileAt(i), r.FileAt(i-removed)); err != nil {
			return errors.Wrapf(err, "rename %s", r.FileAt(i))
		}
	}

	return nil
}

// lastIndex 最后一个连续存在的文件编号，没有任何文件时返回-1
func (r *RotateStrategy) lastIndex() (int, error) {
	index := 0
	for {
		_, err := os.Stat(r.FileAt(index))
		if os.IsNotExist(err) {
			return index - 1, nil
		}
		if err != nil {
			return 0, errors.Wrapf(err, "stat %s", r.FileAt(index))
		}
		index++
	}
}
