package contracts

import (
	"context"
	"io"
)

// FileContent 待下载的文件内容，调用方负责关闭
type FileContent struct {
	Reader io.ReadCloser
	Size   int64
}

// FolderService 根目录文件操作服务
// 所有方法的requestPath均为URL路径（以/开头），返回的错误为 *errors.ServiceError
type FolderService interface {
	// List 列出目录的一层内容，隐藏文件被忽略，目录名以/结尾
	List(ctx context.Context, requestPath string) ([]string, error)

	// Open 打开待下载的文件
	Open(ctx context.Context, requestPath string) (*FileContent, error)

	// Upload 将body写入目标文件，必要时创建父目录，返回写入字节数
	Upload(ctx context.Context, requestPath string, body io.Reader) (int64, error)

	// Delete 删除单个文件
	Delete(ctx context.Context, requestPath string) error
}
