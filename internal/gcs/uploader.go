// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrInvalidURI is returned by [ParseURI] for strings that are not gs://bucket/object.
var ErrInvalidURI = errors.New("gcs: invalid gs:// uri")

// URI returns the gs:// URI of object in bucket.
func URI(bucket, object string) string {
	return "gs://" + bucket + "/" + object
}

// ParseURI splits a gs://bucket/object URI.
func ParseURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return bucket, object, nil
}

// BucketName normalizes a bucket given as "name" or "gs://name".
// A URI naming an object inside the bucket is rejected.
func BucketName(s string) (string, error) {
	if !strings.HasPrefix(s, "gs://") {
		s = "gs://" + s
	}
	bucket, object, err := ParseURI(s)
	if err != nil {
		return "", err
	}
	if object != "" {
		return "", fmt.Errorf("%w: %q names an object, want a bucket", ErrInvalidURI, s)
	}
	return bucket, nil
}

// Object describes an object to write.
type Object struct {
	Name        string
	ContentType string
	// Metadata is stored as custom object metadata.
	Metadata map[string]string
}

// Uploader writes objects into a single bucket.
type Uploader struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
	logger *slog.Logger
}

// Option is a functional option for configuring the [Uploader].
type Option func(*Uploader)

// WithLogger sets the logger for the [Uploader].
func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// WithClient uses client instead of a gRPC client built from the default credentials.
// The [Uploader] takes ownership of client.
func WithClient(client *storage.Client) Option {
	return func(u *Uploader) {
		u.client = client
	}
}

// NewUploader creates an [Uploader] for bucketName. A gs:// prefix on bucketName is accepted.
func NewUploader(ctx context.Context, bucketName string, opts ...Option) (*Uploader, error) {
	name, err := BucketName(bucketName)
	if err != nil {
		return nil, err
	}

	u := &Uploader{
		name:   name,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}

	if u.client == nil {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{
				storage.ScopeFullControl,
				storage.ScopeReadWrite,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("get credentials for storage: %w", err)
		}

		u.client, err = storage.NewGRPCClient(ctx, option.WithAuthCredentials(creds))
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}
	}
	u.bucket = u.client.Bucket(name)
	return u, nil
}

// UploadBytes writes data as obj and returns its gs:// URI.
func (u *Uploader) UploadBytes(ctx context.Context, obj Object, data []byte) (string, error) {
	return u.upload(ctx, obj, bytes.NewReader(data))
}

// UploadFile writes the local file at src as obj and returns its gs:// URI.
// An empty content type is derived from the file extension.
func (u *Uploader) UploadFile(ctx context.Context, obj Object, src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	if obj.ContentType == "" {
		obj.ContentType = ContentType(src)
	}
	return u.upload(ctx, obj, f)
}

// UploadDir uploads every regular file in dir matching pattern under prefix, in name order.
// It returns the gs:// URIs of the uploaded objects.
func (u *Uploader) UploadDir(ctx context.Context, dir, pattern, prefix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	slices.Sort(matches)

	var uris []string
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			return nil, err
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		uri, err := u.UploadFile(ctx, Object{Name: path.Join(prefix, filepath.Base(m))}, m)
		if err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}
	return uris, nil
}

func (u *Uploader) upload(ctx context.Context, obj Object, r io.Reader) (string, error) {
	// Cancelling the writer context aborts the upload without committing a partial object.
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := u.bucket.Object(obj.Name).NewWriter(wctx)
	w.ContentType = obj.ContentType
	w.Metadata = obj.Metadata

	if _, err := io.Copy(w, r); err != nil {
		cancel()
		w.Close()
		return "", fmt.Errorf("write object %s: %w", obj.Name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer %s: %w", obj.Name, err)
	}

	uri := URI(u.name, obj.Name)
	u.logger.InfoContext(ctx, "Uploaded object",
		slog.String("uri", uri),
		slog.Int64("size", w.Attrs().Size),
	)
	return uri, nil
}

// Close closes the underlying storage client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

// ContentType guesses the MIME type of a file from its extension.
func ContentType(name string) string {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".md", ".markdown":
		return "text/markdown"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
