package objects

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/minio/minio-go/v7"
)

// Typed errors exposed by the facade. Callers can tell "object absent" apart
// from "request failed" with errors.Is.
var (
	// ErrNotFound marks a missing object or bucket.
	ErrNotFound = errors.New("object not found")
	// ErrAuthFailed marks rejected credentials or denied access.
	ErrAuthFailed = errors.New("storage authentication failed")
	// ErrUnreachable marks transport-level failures (DNS, dial, timeout).
	ErrUnreachable = errors.New("storage backend unreachable")
)

// classify maps a raw client error onto the facade's error taxonomy.
// Unknown errors pass through wrapped so no detail is lost.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "CredentialsNotSupported":
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if resp.StatusCode == 404 {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	return fmt.Errorf("storage operation failed: %w", err)
}
