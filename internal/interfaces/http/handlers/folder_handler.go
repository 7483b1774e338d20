package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/easayliu/http-folder/internal/application/contracts"
	apperrors "github.com/easayliu/http-folder/internal/shared/errors"
	"github.com/gin-gonic/gin"
)

// FolderHandler 根据请求方法和路径分发到列表、下载、上传、删除
type FolderHandler struct {
	folderService  contracts.FolderService
	maxUploadBytes int64
}

// NewFolderHandler maxUploadBytes为0表示不限制上传大小
func NewFolderHandler(folderService contracts.FolderService, maxUploadBytes int64) *FolderHandler {
	return &FolderHandler{
		folderService:  folderService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Dispatch 分发规则（按顺序）:
//  1. 路径以 / 结尾 → 列表，与请求方法无关
//  2. GET → 下载
//  3. POST → 上传
//  4. DELETE → 删除
//  5. 其他 → 400 Bad Request
func (h *FolderHandler) Dispatch(c *gin.Context) {
	path := c.Request.URL.Path

	switch {
	case strings.HasSuffix(path, "/"):
		h.List(c)
	case c.Request.Method == http.MethodGet:
		h.Download(c)
	case c.Request.Method == http.MethodPost:
		h.Upload(c)
	case c.Request.Method == http.MethodDelete:
		h.Delete(c)
	default:
		c.Error(apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest, apperrors.MessageBadRequest))
	}
}

// List 返回目录内容的JSON数组
func (h *FolderHandler) List(c *gin.Context) {
	names, err := h.folderService.List(c.Request.Context(), c.Request.URL.Path)
	if err != nil {
		c.Error(err)
		return
	}

	body, err := json.Marshal(names)
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// Download 以 application/octet-stream 返回文件内容
func (h *FolderHandler) Download(c *gin.Context) {
	content, err := h.folderService.Open(c.Request.Context(), c.Request.URL.Path)
	if err != nil {
		c.Error(err)
		return
	}
	defer content.Reader.Close()

	c.DataFromReader(http.StatusOK, content.Size, "application/octet-stream", content.Reader, nil)
}

// Upload 把请求体写入目标文件
func (h *FolderHandler) Upload(c *gin.Context) {
	body := c.Request.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadBytes)
	}

	if _, err := h.folderService.Upload(c.Request.Context(), c.Request.URL.Path, body); err != nil {
		c.Error(err)
		return
	}
	c.String(http.StatusOK, apperrors.MessageUploaded)
}

// Delete 删除单个文件
func (h *FolderHandler) Delete(c *gin.Context) {
	if err := h.folderService.Delete(c.Request.Context(), c.Request.URL.Path); err != nil {
		c.Error(err)
		return
	}
	c.String(http.StatusOK, apperrors.MessageDeleted)
}
