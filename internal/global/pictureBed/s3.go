package pictureBed

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"lab-website/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Bed 把图片上传到 S3 兼容的对象存储
type S3Bed struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      config.S3
}

func NewS3Bed(ctx context.Context, c config.S3) (*S3Bed, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket 未配置")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("加载 S3 配置失败: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.UsePathStyle
	})
	return &S3Bed{client: client, uploader: manager.NewUploader(client), cfg: c}, nil
}

// Save 上传图片并返回访问 URL
func (b *S3Bed) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	contentType, err := Check(fileHeader)
	if err != nil {
		return "", err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := b.Key(objectName(fileHeader))
	_, err = b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.cfg.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传图片到 S3 失败: %w", err)
	}
	return b.URL(key), nil
}

// Delete 删除 Save 上传的对象
func (b *S3Bed) Delete(ctx context.Context, url string) error {
	key, ok := b.KeyOf(url)
	if !ok {
		return nil
	}
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("删除 S3 图片失败: %w", err)
	}
	return nil
}

// KeyOf 从访问地址反推对象 key，不是本桶的地址返回 false
func (b *S3Bed) KeyOf(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, b.URL(""))
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// Key 带前缀的对象 key
func (b *S3Bed) Key(filename string) string {
	return strings.TrimLeft(path.Join(strings.Trim(b.cfg.Prefix, "/"), filename), "/")
}

// URL 对象的公开访问地址，未配置 BaseURL 时使用 Endpoint
func (b *S3Bed) URL(key string) string {
	base := strings.TrimRight(b.cfg.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(b.cfg.Endpoint, "/")
	}
	if b.cfg.UsePathStyle {
		return base + "/" + b.cfg.Bucket + "/" + key
	}
	return base + "/" + key
}
