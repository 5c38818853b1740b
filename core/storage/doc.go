// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for common
// operations like uploading, stating, copying and removing objects. This
// abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: Verify or create the target bucket.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - StatObject: Fetches metadata, used for existence checks.
//   - CopyObject: Server-side copy between keys.
//   - ListObjects / RemoveObject / RemoveObjects: Listing and deletion.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	info, err := client.StatObject(ctx, "objects", "docs/hello.txt", minio.StatObjectOptions{})
package storage
