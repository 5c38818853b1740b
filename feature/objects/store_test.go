package objects

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"object-store/core/storage"
	"object-store/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, *mocks.Client) {
	t.Helper()
	client := new(mocks.Client)
	cfg := storage.Config{
		Endpoint: "localhost:9000",
		Bucket:   "test-bucket",
	}
	return NewStore(client, cfg, zap.NewNop(), nil), client
}

func notFoundErr() error {
	return minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_Upload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, client := newTestStore(t)
		path := writeTempFile(t, "hello.txt", "hi")

		client.On("PutObject", mock.Anything, "test-bucket", "docs/hello.txt",
			mock.Anything, int64(2), mock.Anything).Return(minio.UploadInfo{}, nil)

		url, err := store.Upload(context.Background(), path, "docs/hello.txt")
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/test-bucket/docs/hello.txt", url)
		client.AssertExpectations(t)
	})

	t.Run("SetsContentTypeAndACL", func(t *testing.T) {
		store, client := newTestStore(t)
		path := writeTempFile(t, "hello.txt", "hi")

		client.On("PutObject", mock.Anything, "test-bucket", "hello.txt",
			mock.Anything, int64(2), mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
				return opts.ContentType != "" && opts.UserMetadata["x-amz-acl"] == "public-read"
			})).Return(minio.UploadInfo{}, nil)

		_, err := store.Upload(context.Background(), path, "hello.txt")
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("BucketOverride", func(t *testing.T) {
		store, client := newTestStore(t)
		path := writeTempFile(t, "hello.txt", "hi")

		client.On("PutObject", mock.Anything, "other", "hello.txt",
			mock.Anything, int64(2), mock.Anything).Return(minio.UploadInfo{}, nil)

		url, err := store.Upload(context.Background(), path, "hello.txt", WithBucket("other"))
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/other/hello.txt", url)
		client.AssertExpectations(t)
	})

	t.Run("MissingLocalFile", func(t *testing.T) {
		store, client := newTestStore(t)

		url, err := store.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), "nope.txt")
		assert.Error(t, err)
		assert.Empty(t, url)
		client.AssertNotCalled(t, "PutObject")
	})

	t.Run("AuthFailure", func(t *testing.T) {
		store, client := newTestStore(t)
		path := writeTempFile(t, "hello.txt", "hi")

		client.On("PutObject", mock.Anything, "test-bucket", "hello.txt",
			mock.Anything, int64(2), mock.Anything).
			Return(minio.UploadInfo{}, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403})

		url, err := store.Upload(context.Background(), path, "hello.txt")
		assert.ErrorIs(t, err, ErrAuthFailed)
		assert.Empty(t, url)
	})
}

func TestStore_Exists(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("StatObject", mock.Anything, "test-bucket", "docs/hello.txt", mock.Anything).
			Return(minio.ObjectInfo{Key: "docs/hello.txt", Size: 2}, nil)

		exists, err := store.Exists(context.Background(), "docs/hello.txt")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("StatObject", mock.Anything, "test-bucket", "missing.txt", mock.Anything).
			Return(minio.ObjectInfo{}, notFoundErr())

		exists, err := store.Exists(context.Background(), "missing.txt")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("FailureIsDistinguishable", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("StatObject", mock.Anything, "test-bucket", "key", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403})

		exists, err := store.Exists(context.Background(), "key")
		assert.ErrorIs(t, err, ErrAuthFailed)
		assert.False(t, exists)
	})

	t.Run("BucketOverride", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("StatObject", mock.Anything, "other", "key", mock.Anything).
			Return(minio.ObjectInfo{Key: "key"}, nil)

		exists, err := store.Exists(context.Background(), "key", WithBucket("other"))
		assert.NoError(t, err)
		assert.True(t, exists)
		client.AssertExpectations(t)
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("VerifiesAbsence", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("RemoveObject", mock.Anything, "test-bucket", "docs/hello.txt", mock.Anything).Return(nil)
		client.On("StatObject", mock.Anything, "test-bucket", "docs/hello.txt", mock.Anything).
			Return(minio.ObjectInfo{}, notFoundErr())

		err := store.Delete(context.Background(), "docs/hello.txt")
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("IdempotentOnAbsentKey", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("RemoveObject", mock.Anything, "test-bucket", "never-existed", mock.Anything).Return(nil)
		client.On("StatObject", mock.Anything, "test-bucket", "never-existed", mock.Anything).
			Return(minio.ObjectInfo{}, notFoundErr())

		err := store.Delete(context.Background(), "never-existed")
		assert.NoError(t, err)
	})

	t.Run("StillPresentAfterDelete", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("RemoveObject", mock.Anything, "test-bucket", "sticky", mock.Anything).Return(nil)
		client.On("StatObject", mock.Anything, "test-bucket", "sticky", mock.Anything).
			Return(minio.ObjectInfo{Key: "sticky"}, nil)

		err := store.Delete(context.Background(), "sticky")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "still present")
	})

	t.Run("BackendFailure", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("RemoveObject", mock.Anything, "test-bucket", "key", mock.Anything).
			Return(minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403})

		err := store.Delete(context.Background(), "key")
		assert.ErrorIs(t, err, ErrAuthFailed)
	})
}

func TestStore_Copy(t *testing.T) {
	t.Run("SourceIsFromKey", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("CopyObject", mock.Anything,
			mock.MatchedBy(func(dst minio.CopyDestOptions) bool {
				return dst.Bucket == "test-bucket" && dst.Object == "b"
			}),
			mock.MatchedBy(func(src minio.CopySrcOptions) bool {
				return src.Bucket == "test-bucket" && src.Object == "a"
			})).Return(minio.UploadInfo{}, nil)
		client.On("StatObject", mock.Anything, "test-bucket", "b", mock.Anything).
			Return(minio.ObjectInfo{Key: "b"}, nil)

		err := store.Copy(context.Background(), "a", "b")
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("MissingSource", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("CopyObject", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, notFoundErr())

		err := store.Copy(context.Background(), "missing", "b")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DestinationMissingAfterCopy", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("CopyObject", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)
		client.On("StatObject", mock.Anything, "test-bucket", "b", mock.Anything).
			Return(minio.ObjectInfo{}, notFoundErr())

		err := store.Copy(context.Background(), "a", "b")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "missing after copy")
	})

	t.Run("BucketOverride", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("CopyObject", mock.Anything,
			mock.MatchedBy(func(dst minio.CopyDestOptions) bool { return dst.Bucket == "other" }),
			mock.MatchedBy(func(src minio.CopySrcOptions) bool { return src.Bucket == "other" }),
		).Return(minio.UploadInfo{}, nil)
		client.On("StatObject", mock.Anything, "other", "b", mock.Anything).
			Return(minio.ObjectInfo{Key: "b"}, nil)

		err := store.Copy(context.Background(), "a", "b", WithBucket("other"))
		assert.NoError(t, err)
		client.AssertExpectations(t)
	})
}

func TestStore_List(t *testing.T) {
	store, client := newTestStore(t)

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "docs/a.txt", Size: 1}
	ch <- minio.ObjectInfo{Key: "docs/b.txt", Size: 2}
	close(ch)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	infos, err := store.List(context.Background(), "docs/")
	assert.NoError(t, err)
	assert.Len(t, infos, 2)
	assert.Equal(t, "docs/a.txt", infos[0].Key)
}

func TestStore_DeletePrefix(t *testing.T) {
	store, client := newTestStore(t)

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "tmp/a"}
	ch <- minio.ObjectInfo{Key: "tmp/b"}
	close(ch)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	errCh := make(chan minio.RemoveObjectError)
	close(errCh)
	client.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
		Return((<-chan minio.RemoveObjectError)(errCh))

	count, err := store.DeletePrefix(context.Background(), "tmp/")
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	client.AssertExpectations(t)
}

func TestStore_EnsureBucket(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)

		assert.NoError(t, store.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket")
	})

	t.Run("MissingWithoutCreate", func(t *testing.T) {
		store, client := newTestStore(t)
		client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

		err := store.EnsureBucket(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreatesWhenAllowed", func(t *testing.T) {
		client := new(mocks.Client)
		cfg := storage.Config{Endpoint: "localhost:9000", Bucket: "test-bucket", CreateBucket: true, Region: "us-east-1"}
		store := NewStore(client, cfg, zap.NewNop(), nil)

		client.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

		assert.NoError(t, store.EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"NoSuchKey", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}, ErrNotFound},
		{"NoSuchBucket", minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: 404}, ErrNotFound},
		{"AccessDenied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}, ErrAuthFailed},
		{"BadSignature", minio.ErrorResponse{Code: "SignatureDoesNotMatch", StatusCode: 403}, ErrAuthFailed},
		{"Timeout", context.DeadlineExceeded, ErrUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.want)
		})
	}

	t.Run("NilPassesThrough", func(t *testing.T) {
		assert.NoError(t, classify(nil))
	})

	t.Run("UnknownIsWrapped", func(t *testing.T) {
		raw := errors.New("weird")
		err := classify(raw)
		assert.ErrorIs(t, err, raw)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPublicURL(t *testing.T) {
	t.Run("FromEndpoint", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.Equal(t, "http://localhost:9000/test-bucket/docs/hello.txt",
			store.publicURL("test-bucket", "docs/hello.txt"))
	})

	t.Run("HTTPS", func(t *testing.T) {
		cfg := storage.Config{Endpoint: "s3.amazonaws.com", UseSSL: true, Bucket: "b"}
		store := NewStore(new(mocks.Client), cfg, zap.NewNop(), nil)
		assert.Equal(t, "https://s3.amazonaws.com/b/k", store.publicURL("b", "k"))
	})

	t.Run("PublicURLBase", func(t *testing.T) {
		cfg := storage.Config{Endpoint: "localhost:9000", Bucket: "b", PublicURL: "https://cdn.example.com/"}
		store := NewStore(new(mocks.Client), cfg, zap.NewNop(), nil)
		assert.Equal(t, "https://cdn.example.com/docs/hello.txt", store.publicURL("b", "docs/hello.txt"))
	})

	t.Run("EscapesSegments", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.Equal(t, "http://localhost:9000/test-bucket/docs/hello%20world.txt",
			store.publicURL("test-bucket", "docs/hello world.txt"))
	})
}
