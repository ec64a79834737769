package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

type fakePresigner struct {
	bucket, key string
	expires     time.Duration
	err         error
}

func (f *fakePresigner) PresignGetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.PresignOptions),
) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.bucket, f.key, f.expires = *params.Bucket, *params.Key, opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://audio.example/" + *params.Key + "?sig=abc"}, nil
}

func TestAudioStore_URL(t *testing.T) {
	p := &fakePresigner{}
	store := NewAudioStore(p, "clinic-audio")

	url, err := store.URL(context.Background(), "meditations/breath.mp3")
	require.NoError(t, err)
	assert.Equal(t, "https://audio.example/meditations/breath.mp3?sig=abc", url)
	assert.Equal(t, "clinic-audio", p.bucket)
	assert.Equal(t, DefaultURLExpiry, p.expires)

	url, err = store.URL(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestAudioStore_Error(t *testing.T) {
	store := NewAudioStore(&fakePresigner{err: errors.New("no credentials")}, "clinic-audio")

	_, err := store.URL(context.Background(), "a.mp3")
	assert.ErrorContains(t, err, "no credentials")
}

func TestAudioStore_Disabled(t *testing.T) {
	store := NewAudioStoreFromConfig(&config.Config{})
	assert.False(t, store.Enabled())

	url, err := store.URL(context.Background(), "a.mp3")
	require.NoError(t, err)
	assert.Empty(t, url)

	var nilStore *AudioStore
	assert.False(t, nilStore.Enabled())
}

func TestAudioStore_FromConfigPresigns(t *testing.T) {
	store := NewAudioStoreFromConfig(&config.Config{
		S3Bucket:    "clinic-audio",
		S3Region:    "eu-central-1",
		S3AccessKey: "AKIAEXAMPLE",
		S3SecretKey: "secret",
		S3Endpoint:  "http://localhost:9000",
	})
	require.True(t, store.Enabled())

	url, err := store.URL(context.Background(), "calm.mp3")
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/clinic-audio/calm.mp3")
	assert.Contains(t, url, "X-Amz-Signature=")
}
