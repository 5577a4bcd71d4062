// Package storage はGoogle Cloud Storageへのオブジェクト保存を提供します。
package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient はGCSクライアントを生成します。credsPath が空の場合はADCを使います。
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// PublicURL はオブジェクトの公開URLを組み立てます。
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// GCSStore は1つのバケットにオブジェクトを書き込みます。
type GCSStore struct {
	bucket    string
	newWriter func(ctx context.Context, object, contentType string) io.WriteCloser
}

// NewGCSStore はGCSStoreの新しいインスタンスを生成します。
func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{
		bucket: bucket,
		newWriter: func(ctx context.Context, object, contentType string) io.WriteCloser {
			w := client.Bucket(bucket).Object(object).NewWriter(ctx)
			w.ContentType = contentType
			w.ChunkSize = 0 // 小さなファイルなのでチャンク分割しない
			return w
		},
	}
}

// Put は r の内容を object として保存し、公開URLを返します。
func (s *GCSStore) Put(ctx context.Context, object, contentType string, r io.Reader) (string, error) {
	w := s.newWriter(ctx, object, contentType)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	// Close でアップロードが確定する
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	return PublicURL(s.bucket, object), nil
}
