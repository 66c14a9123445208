package oss

import (
	"context"

	"ShortVideo.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const location = "us-east-1" // MinIO默认区域

// InitMinio 根据配置创建MinIO存储 bucket不存在时自动创建
func InitMinio(ctx context.Context) (*MinioStore, error) {
	cfg := config.ConfigInfo.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", cfg.Endpoint, cfg.AccessKey)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, errors.WithMessage(err, "minio.New failed")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "check bucket error")
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: location}); err != nil {
			return nil, errors.Wrap(err, "create bucket error")
		}
	}

	hlog.Info("Connect Minio Success")
	return NewMinioStore(client, cfg.Bucket), nil
}
