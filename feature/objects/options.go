package objects

// CallOption customizes a single facade call.
type CallOption func(*callOptions)

type callOptions struct {
	bucket string
}

// WithBucket routes the call to the given bucket instead of the configured
// default.
func WithBucket(name string) CallOption {
	return func(o *callOptions) {
		o.bucket = name
	}
}

// resolveBucket applies the options and falls back to the default bucket.
func (s *Store) resolveBucket(opts []CallOption) string {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.bucket != "" {
		return o.bucket
	}
	return s.cfg.Bucket
}
