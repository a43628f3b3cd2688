package pictureBed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lab-website/config"

	"github.com/google/uuid"
)

// MaxImageSize 单张图片大小上限
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedImage = errors.New("pictureBed: unsupported image type")
	ErrImageTooLarge    = errors.New("pictureBed: image too large")
)

var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Store 图片存储后端，返回可直接写入页面的访问地址。
// Delete 只处理本后端 Save 返回的地址，其他地址直接忽略
type Store interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
}

// New 按配置选择本地目录或 S3
func New(ctx context.Context, c *config.Config) (Store, error) {
	if strings.EqualFold(c.Storage.Driver, "s3") {
		return NewS3Bed(ctx, c.S3)
	}
	return NewPictureBed(c.Storage.Home, c.Storage.BaseURL), nil
}

// Check 校验扩展名与大小，返回 MIME 类型
func Check(fileHeader *multipart.FileHeader) (string, error) {
	contentType, ok := imageExts[strings.ToLower(filepath.Ext(fileHeader.Filename))]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if fileHeader.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	return contentType, nil
}

// objectName 随机文件名，保留原扩展名
func objectName(fileHeader *multipart.FileHeader) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
}

// PictureBed 将图片保存到本地指定目录，并返回图片访问路径
type PictureBed struct {
	SaveDir string // 图片保存目录
	BaseURL string // 图片访问基础URL
}

func NewPictureBed(saveDir, baseURL string) *PictureBed {
	return &PictureBed{
		SaveDir: saveDir,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save 保存图片到本地并返回图片URL
func (pb *PictureBed) Save(_ context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if _, err := Check(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(pb.SaveDir, 0o755); err != nil {
		return "", err
	}

	filename := objectName(fileHeader)
	dst, err := os.Create(filepath.Join(pb.SaveDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("写入图片失败: %w", err)
	}

	return pb.BaseURL + "/" + filename, nil
}

// Delete 删除 Save 写入的本地文件，文件已不存在时不报错
func (pb *PictureBed) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, pb.BaseURL+"/")
	if !ok || name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(pb.SaveDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
