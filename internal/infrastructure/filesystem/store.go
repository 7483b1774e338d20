package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrIsDirectory 目标是目录而不是文件
	ErrIsDirectory = errors.New("is a directory")

	// ErrCreateDirectory 创建父目录失败
	ErrCreateDirectory = errors.New("failed to create directory")
)

// Store 根目录下的文件操作，所有路径必须已经过 Root.Resolve
type Store struct {
	root *Root
}

func NewStore(root *Root) *Store {
	return &Store{root: root}
}

func (s *Store) Root() *Root {
	return s.root
}

// ListDir 读取一层目录项，忽略以 . 开头的名称，目录名追加 /
func (s *Store) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names, nil
}

// File 打开的普通文件
type File struct {
	*os.File
	Size int64
}

// Open 以只读方式打开普通文件，目录返回 ErrIsDirectory
func (s *Store) Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrIsDirectory}
	}

	return &File{File: f, Size: info.Size()}, nil
}

// Write 创建父目录并把 r 的内容写入 name，已有文件会被覆盖
// 写入中途失败会留下不完整的文件
func (s *Store) Write(name string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}

	f, err := os.Create(name)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// Remove 删除单个文件，不删除目录（包括空目录）
func (s *Store) Remove(name string) error {
	info, err := os.Lstat(name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: name, Err: ErrIsDirectory}
	}
	return os.Remove(name)
}

// Usage 目录树统计
type Usage struct {
	Files       int
	Directories int
	Bytes       int64
}

// Walk 统计目录树，跳过以 . 开头的文件和目录
func (s *Store) Walk(dir string) (Usage, error) {
	var usage Usage

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			usage.Directories++
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		usage.Files++
		usage.Bytes += info.Size()
		return nil
	})

	return usage, err
}
