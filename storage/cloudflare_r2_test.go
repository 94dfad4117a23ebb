package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectStore struct {
	put    *s3.PutObjectInput
	del    *s3.DeleteObjectInput
	putErr error
}

func (f *fakeObjectStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = params
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func (f *fakeObjectStore) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.del = params
	return &s3.DeleteObjectOutput{}, nil
}

func testUploader(t *testing.T, base string, store objectStore) *cloudflareR2Uploader {
	t.Helper()
	u, err := url.Parse(base)
	require.NoError(t, err)
	return newR2Uploader(store, "banners", u, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetPublicURL(t *testing.T) {
	cases := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "tournaments/a/banner.png", "https://cdn.example.com/tournaments/a/banner.png"},
		{"https://cdn.example.com/", "/tournaments/a/banner.png", "https://cdn.example.com/tournaments/a/banner.png"},
		{"https://cdn.example.com/public", "banner.png", "https://cdn.example.com/public/banner.png"},
		{"https://cdn.example.com", "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, testUploader(t, tc.base, &fakeObjectStore{}).GetPublicURL(tc.key), tc.base+" "+tc.key)
	}
}

func TestUpload(t *testing.T) {
	store := &fakeObjectStore{}
	u := testUploader(t, "https://cdn.example.com", store)

	res, err := u.Upload(context.Background(), "tournaments/a/banner.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/tournaments/a/banner.png", res.Location)
	assert.Equal(t, "banners", aws.ToString(store.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(store.put.ContentType))

	require.NoError(t, u.Delete(context.Background(), "tournaments/a/banner.png"))
	assert.Equal(t, "tournaments/a/banner.png", aws.ToString(store.del.Key))
}

func TestUpload_WrapsStoreError(t *testing.T) {
	boom := errors.New("denied")
	u := testUploader(t, "https://cdn.example.com", &fakeObjectStore{putErr: boom})
	_, err := u.Upload(context.Background(), "k", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, boom)
}

func TestNewCloudflareR2Uploader_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"}, logger)
	assert.Error(t, err)

	_, err = NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{
		AccountID: "acc", AccessKeyID: "k", SecretAccessKey: "s", BucketName: "b", PublicBaseURL: "cdn.example.com",
	}, logger)
	assert.Error(t, err)
}
