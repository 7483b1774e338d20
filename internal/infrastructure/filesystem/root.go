package filesystem

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot 请求路径解析后不在根目录内
var ErrOutsideRoot = errors.New("path escapes root directory")

// PathError 路径越界错误
type PathError struct {
	RequestPath  string
	ResolvedPath string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s resolves to %s", ErrOutsideRoot, e.RequestPath, e.ResolvedPath)
}

func (e *PathError) Unwrap() error {
	return ErrOutsideRoot
}

// Root 服务暴露的根目录，创建后不可变
type Root struct {
	path   string
	prefix string
}

// NewRoot 创建根目录，路径会被转换为绝对路径并规范化
func NewRoot(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	abs = filepath.Clean(abs)

	prefix := abs
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return &Root{path: abs, prefix: prefix}, nil
}

// Path 根目录绝对路径
func (r *Root) Path() string {
	return r.path
}

// Contains 判断规范化后的路径是否为根目录本身或位于根目录之下
// 前缀比较在路径分隔符边界上进行，/srv/data2 不属于 /srv/data
func (r *Root) Contains(resolved string) bool {
	resolved = filepath.Clean(resolved)
	return resolved == r.path || strings.HasPrefix(resolved, r.prefix)
}

// Resolve 将URL路径拼接到根目录并规范化，越界时返回 *PathError
func (r *Root) Resolve(requestPath string) (string, error) {
	if requestPath == "" || requestPath == "/" {
		return r.path, nil
	}

	resolved := filepath.Join(r.path, filepath.FromSlash(requestPath))
	if !r.Contains(resolved) {
		return "", &PathError{RequestPath: requestPath, ResolvedPath: resolved}
	}
	return resolved, nil
}

// Rel 返回相对根目录的斜杠路径，用于日志和通知
func (r *Root) Rel(resolved string) string {
	rel, err := filepath.Rel(r.path, resolved)
	if err != nil {
		return resolved
	}
	return "/" + filepath.ToSlash(rel)
}
