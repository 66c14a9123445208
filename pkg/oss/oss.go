package oss

import (
	"bytes"
	"context"
	"io"
	"sync"

	"ShortVideo.com/pkg/errno"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// BlobStore 视频文件存储 业务层只保存对象key
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
}

var (
	_ BlobStore = (*MinioStore)(nil)
	_ BlobStore = (*MemoryStore)(nil)
)

type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "put object %s failed", key)
	}
	return nil
}

func (s *MinioStore) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, errors.Wrapf(err, "get object %s failed", key)
	}
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, errno.NotFoundErr.WithMessage("video file not found")
		}
		return nil, 0, errors.Wrapf(err, "stat object %s failed", key)
	}
	return obj, info.Size, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove object %s failed", key)
	}
	return nil
}

// MemoryStore 内存存储 用于测试和未配置MinIO的本地环境
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read upload failed")
	}
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, int64, error) {
	s.mu.RLock()
	data, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, 0, errno.NotFoundErr.WithMessage("video file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}
