package objects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"object-store/core/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Store is the bucket-scoped facade over the storage client. All operations
// target the configured default bucket unless overridden with WithBucket.
type Store struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
	audit  *Recorder
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// NewStore creates the facade around an already-constructed client.
// The audit recorder may be nil.
func NewStore(client storage.Client, cfg storage.Config, logger *zap.Logger, audit *Recorder) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
		logger: logger,
		audit:  audit,
	}
}

// Upload stores the local file under key, publicly readable, and returns the
// object's public URL. The content type is detected from the file itself.
func (s *Store) Upload(ctx context.Context, localPath, key string, opts ...CallOption) (string, error) {
	bucket := s.resolveBucket(opts)

	mtype, err := mimetype.DetectFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read local file %s: %w", localPath, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat local file %s: %w", localPath, err)
	}

	putOpts := minio.PutObjectOptions{
		ContentType: mtype.String(),
		// Path-style public URLs only work when the object is world readable.
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	}

	_, err = s.client.PutObject(ctx, bucket, key, f, fi.Size(), putOpts)
	cerr := classify(err)
	s.audit.Record(ctx, OpUpload, bucket, key, "", cerr)
	if cerr != nil {
		return "", cerr
	}

	publicURL := s.publicURL(bucket, key)
	s.logger.Debug("Object uploaded",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("content_type", mtype.String()),
		zap.Int64("size", fi.Size()),
	)

	return publicURL, nil
}

// Download opens a streaming read of the object. The caller must close the
// returned reader.
func (s *Store) Download(ctx context.Context, key string, opts ...CallOption) (io.ReadCloser, error) {
	bucket := s.resolveBucket(opts)

	rc, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(err)
	}
	return rc, nil
}

// Stat returns metadata for the object at key. A missing object yields
// ErrNotFound.
func (s *Store) Stat(ctx context.Context, key string, opts ...CallOption) (*ObjectInfo, error) {
	bucket := s.resolveBucket(opts)

	info, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, classify(err)
	}

	return &ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

// Exists reports whether the object at key exists. Absence is (false, nil);
// a failed query is (false, err) so the two outcomes stay distinguishable.
func (s *Store) Exists(ctx context.Context, key string, opts ...CallOption) (bool, error) {
	_, err := s.Stat(ctx, key, opts...)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Delete removes the object at key. The backend's delete call does not
// report whether the key existed, so success is verified by re-querying
// existence afterwards. Deleting an absent key succeeds.
func (s *Store) Delete(ctx context.Context, key string, opts ...CallOption) error {
	bucket := s.resolveBucket(opts)

	err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if cerr := classify(err); cerr != nil {
		s.audit.Record(ctx, OpDelete, bucket, key, "", cerr)
		return cerr
	}

	exists, err := s.Exists(ctx, key, opts...)
	if err == nil && exists {
		err = fmt.Errorf("object %q still present after delete", key)
	}
	s.audit.Record(ctx, OpDelete, bucket, key, "", err)
	if err != nil {
		return err
	}

	s.logger.Debug("Object deleted", zap.String("bucket", bucket), zap.String("key", key))
	return nil
}

// Copy performs a server-side copy from fromKey to toKey within the resolved
// bucket, then verifies the destination exists.
func (s *Store) Copy(ctx context.Context, fromKey, toKey string, opts ...CallOption) error {
	bucket := s.resolveBucket(opts)

	src := minio.CopySrcOptions{Bucket: bucket, Object: fromKey}
	dst := minio.CopyDestOptions{Bucket: bucket, Object: toKey}

	_, err := s.client.CopyObject(ctx, dst, src)
	if cerr := classify(err); cerr != nil {
		s.audit.Record(ctx, OpCopy, bucket, toKey, fromKey, cerr)
		return cerr
	}

	exists, err := s.Exists(ctx, toKey, opts...)
	if err == nil && !exists {
		err = fmt.Errorf("destination %q missing after copy", toKey)
	}
	s.audit.Record(ctx, OpCopy, bucket, toKey, fromKey, err)
	if err != nil {
		return err
	}

	s.logger.Debug("Object copied",
		zap.String("bucket", bucket),
		zap.String("from", fromKey),
		zap.String("to", toKey),
	)
	return nil
}

// List returns the objects whose keys start with prefix.
func (s *Store) List(ctx context.Context, prefix string, opts ...CallOption) ([]ObjectInfo, error) {
	bucket := s.resolveBucket(opts)

	var infos []ObjectInfo
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, classify(obj.Err)
		}
		infos = append(infos, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			LastModified: obj.LastModified,
		})
	}
	return infos, nil
}

// DeletePrefix removes every object under prefix using the client's batch
// delete. It returns the number of objects removed.
func (s *Store) DeletePrefix(ctx context.Context, prefix string, opts ...CallOption) (int, error) {
	bucket := s.resolveBucket(opts)

	infos, err := s.List(ctx, prefix, opts...)
	if err != nil {
		s.audit.Record(ctx, OpDeletePrefix, bucket, prefix, "", err)
		return 0, err
	}
	if len(infos) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		objectsCh <- minio.ObjectInfo{Key: info.Key}
	}
	close(objectsCh)

	for rerr := range s.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			cerr := classify(rerr.Err)
			s.audit.Record(ctx, OpDeletePrefix, bucket, prefix, "", cerr)
			return 0, cerr
		}
	}

	s.audit.Record(ctx, OpDeletePrefix, bucket, prefix, "", nil)
	s.logger.Debug("Prefix deleted",
		zap.String("bucket", bucket),
		zap.String("prefix", prefix),
		zap.Int("count", len(infos)),
	)
	return len(infos), nil
}

// EnsureBucket verifies the resolved bucket exists, creating it when the
// configuration allows. Run once at startup.
func (s *Store) EnsureBucket(ctx context.Context, opts ...CallOption) error {
	bucket := s.resolveBucket(opts)

	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return classify(err)
	}
	if exists {
		return nil
	}

	if !s.cfg.CreateBucket {
		return fmt.Errorf("%w: bucket %q", ErrNotFound, bucket)
	}

	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return classify(err)
	}

	s.logger.Info("Created bucket", zap.String("bucket", bucket))
	return nil
}
