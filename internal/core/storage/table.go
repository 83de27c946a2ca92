package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Schema 把一种记录映射到 CSV 行（固定列序）
type Schema[T any] struct {
	Columns int
	Encode  func(T) []string
	Decode  func([]string) (T, error)
	Key     func(T) int64
}

type Table[T any] struct {
	path   string
	schema Schema[T]
}

func NewTable[T any](path string, s Schema[T]) *Table[T] {
	return &Table[T]{path: path, schema: s}
}

func (t *Table[T]) Path() string { return t.path }

// LoadAll 全量读取；文件不存在视为空表，坏行直接报错（不静默跳过）
func (t *Table[T]) LoadAll() (map[int64]T, error) {
	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[int64]T{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = t.schema.Columns

	out := make(map[int64]T)
	line := 0
	for {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read %s: %w", t.path, err)
		}
		line++
		item, err := t.schema.Decode(row)
		if err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", t.path, line, err)
		}
		out[t.schema.Key(item)] = item
	}
	return out, nil
}

// SaveAll 全量覆盖写回，按 id 升序保证输出确定
func (t *Table[T]) SaveAll(items map[int64]T) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", t.path, err)
	}
	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", t.path, err)
	}

	keys := make([]int64, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	w := csv.NewWriter(f)
	for _, k := range keys {
		if err := w.Write(t.schema.Encode(items[k])); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", t.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", t.path, err)
	}
	return f.Close()
}

// MaxKey 当前最大 id，空表为 0
func MaxKey[T any](items map[int64]T) int64 {
	var maxID int64
	for k := range items {
		if k > maxID {
			maxID = k
		}
	}
	return maxID
}
