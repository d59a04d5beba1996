package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"daily-briefing/backend/config"
)

// 范本来源
const (
	TemplateSourceFile = "file"
	TemplateSourceS3   = "s3"
)

// ErrInvalidTemplateName 范本名称只能是范本目录下的 .docx 文件名
var ErrInvalidTemplateName = errors.New("范本名称无效")

// TemplateRepository Word 范本读取接口
// name 为空时使用配置中的默认范本
type TemplateRepository interface {
	Source() string
	DefaultName() string
	Exists(ctx context.Context, name string) (string, bool, error)
	Load(ctx context.Context, name string) ([]byte, error)
}

// NewTemplateRepo 按配置选择范本来源
func NewTemplateRepo(ctx context.Context, cfg *config.TemplateConfig, s3cfg *config.S3Config) (TemplateRepository, error) {
	switch cfg.Source {
	case "", TemplateSourceFile:
		return NewFileTemplateRepo(cfg.Dir, cfg.DefaultName), nil
	case TemplateSourceS3:
		client, err := newS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return NewS3TemplateRepo(client, s3cfg.Bucket, s3cfg.Prefix, cfg.DefaultName), nil
	default:
		return nil, fmt.Errorf("未知的范本来源: %s", cfg.Source)
	}
}

// resolveTemplateName 校验并补全范本名称，拒绝任何目录成分
func resolveTemplateName(name, defaultName string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", ErrInvalidTemplateName
	}
	if !strings.EqualFold(filepath.Ext(name), ".docx") {
		return "", ErrInvalidTemplateName
	}
	return name, nil
}

// ── 本地文件 ──

type fileTemplateRepo struct {
	dir         string
	defaultName string
}

// NewFileTemplateRepo 创建读取本地目录的 TemplateRepository
func NewFileTemplateRepo(dir, defaultName string) TemplateRepository {
	return &fileTemplateRepo{dir: dir, defaultName: defaultName}
}

func (r *fileTemplateRepo) Source() string      { return TemplateSourceFile }
func (r *fileTemplateRepo) DefaultName() string { return r.defaultName }

func (r *fileTemplateRepo) Exists(_ context.Context, name string) (string, bool, error) {
	name, err := resolveTemplateName(name, r.defaultName)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(filepath.Join(r.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return name, false, nil
	}
	if err != nil {
		return name, false, err
	}
	return name, info.Mode().IsRegular(), nil
}

func (r *fileTemplateRepo) Load(_ context.Context, name string) ([]byte, error) {
	name, err := resolveTemplateName(name, r.defaultName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// ── S3 / MinIO ──

// s3API 范本读取用到的 S3 操作
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

func newS3Client(ctx context.Context, cfg *config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载 S3 配置失败: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO
		}
	}), nil
}

type s3TemplateRepo struct {
	client      s3API
	bucket      string
	prefix      string
	defaultName string
}

// NewS3TemplateRepo 创建从对象存储读取的 TemplateRepository
func NewS3TemplateRepo(client s3API, bucket, prefix, defaultName string) TemplateRepository {
	return &s3TemplateRepo{client: client, bucket: bucket, prefix: prefix, defaultName: defaultName}
}

func (r *s3TemplateRepo) Source() string      { return TemplateSourceS3 }
func (r *s3TemplateRepo) DefaultName() string { return r.defaultName }

func (r *s3TemplateRepo) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return path.Join(r.prefix, name)
}

func (r *s3TemplateRepo) Exists(ctx context.Context, name string) (string, bool, error) {
	name, err := resolveTemplateName(name, r.defaultName)
	if err != nil {
		return "", false, err
	}
	_, err = r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(name)),
	})
	if isS3NotFound(err) {
		return name, false, nil
	}
	if err != nil {
		return name, false, fmt.Errorf("查询范本 %s 失败: %w", name, err)
	}
	return name, true, nil
}

func (r *s3TemplateRepo) Load(ctx context.Context, name string) ([]byte, error) {
	name, err := resolveTemplateName(name, r.defaultName)
	if err != nil {
		return nil, err
	}
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(name)),
	})
	if isS3NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("下载范本 %s 失败: %w", name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("读取范本 %s 失败: %w", name, err)
	}
	return data, nil
}

func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}
