// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjects serves object bodies from memory.
type fakeObjects struct {
	bodies map[string]string
	etags  map[string]string
	gets   int
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.gets++
	body, ok := f.bodies[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeObjects) HeadObject(_ context.Context, in *s3v2.HeadObjectInput, _ ...func(*s3v2.Options)) (*s3v2.HeadObjectOutput, error) {
	etag, ok := f.etags[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NotFound")
	}
	return &s3v2.HeadObjectOutput{ETag: awsv2.String(`"` + etag + `"`)}, nil
}

func TestOptions(t *testing.T) {
	var o options
	WithProfile("ops")(&o)
	WithRegion("eu-west-1")(&o)
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&o)

	assert.Equal(t, "ops", o.profile)
	assert.Equal(t, "eu-west-1", o.region)
	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

func TestWithMaxAttempts(t *testing.T) {
	var o options
	WithMaxAttempts(7)(&o)

	require.NotNil(t, o.retryer)
	assert.Equal(t, 7, o.retryer().MaxAttempts())
}

func TestLoadAWSConfig_WithMaxAttempts(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"), WithMaxAttempts(2))
	require.NoError(t, err)
	require.NotNil(t, cfg.Retryer)
	assert.Equal(t, 2, cfg.Retryer().MaxAttempts())
}

func TestLoadAWSConfig_WithRegion(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestNewS3_WithEndpoint(t *testing.T) {
	client := NewS3(awsv2.Config{Region: "us-east-1"}, WithEndpoint("http://localhost:9000"))
	require.NotNil(t, client)

	opts := client.Options()
	assert.Equal(t, "http://localhost:9000", awsv2.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)

	opts = NewS3(awsv2.Config{Region: "us-east-1"}, WithEndpoint("")).Options()
	assert.Nil(t, opts.BaseEndpoint)
	assert.False(t, opts.UsePathStyle)
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{uri: "s3://reports/nightly/base.csv", wantBucket: "reports", wantKey: "nightly/base.csv"},
		{uri: "s3://reports", wantBucket: "reports", wantKey: ""},
		{uri: "s3:///nokey", wantErr: true},
		{uri: "/local/dir", wantErr: true},
		{uri: "https://example.com/x.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseURI(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotS3URI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "s3://b/dir/x.csv", JoinKey("s3://b/dir/", "x.csv"))
	assert.Equal(t, "s3://b/dir/x.csv", JoinKey("s3://b/dir", "x.csv"))
}

func TestETagAndGetObject(t *testing.T) {
	api := &fakeObjects{
		bodies: map[string]string{"b/k.csv": "a,b\n1,2\n"},
		etags:  map[string]string{"b/k.csv": "abc123"},
	}
	ctx := context.Background()

	etag, err := ETag(ctx, api, "b", "k.csv")
	require.NoError(t, err)
	assert.Equal(t, "abc123", etag)

	data, err := GetObject(ctx, api, "b", "k.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	_, err = GetObject(ctx, api, "b", "missing.csv")
	assert.ErrorContains(t, err, "s3://b/missing.csv")

	_, err = ETag(ctx, api, "b", "missing.csv")
	assert.Error(t, err)
}
