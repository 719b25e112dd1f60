package drive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/daylog/internal/common"
)

// fakeS3 emulates the handful of S3 behaviors the store relies on.
type fakeS3 struct {
	objects  map[string][]byte
	pageSize int

	putKeys  []string
	headErr  error
	copyErr  error
	listErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, pageSize: 1000}
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.putKeys = append(f.putKeys, key)
	var body []byte
	if in.Body != nil {
		body, _ = io.ReadAll(in.Body)
	}
	f.objects[key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	prefix := aws.ToString(in.Prefix)
	var keys []string
	for key := range f.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		// emulate the delimiter: skip keys in deeper folders
		if strings.Contains(strings.TrimPrefix(key, prefix), "/") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	start := 0
	if token := aws.ToString(in.ContinuationToken); token != "" {
		for i, key := range keys {
			if key > token {
				start = i
				break
			}
		}
	}

	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

func (f *fakeS3) CopyObject(_ context.Context, in *s3.CopyObjectInput, _ ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	source := aws.ToString(in.CopySource)
	// CopySource is "<bucket>/<key>"
	_, key, _ := strings.Cut(source, "/")
	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.CopyObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3EnsureFolder(t *testing.T) {
	fake := newFakeS3()
	st := newS3StoreWithAPI(fake, "journal")
	ctx := context.Background()

	require.NoError(t, st.EnsureFolder(ctx, "daylog/journal/u1"))
	assert.Contains(t, fake.objects, "daylog/journal/u1/")

	// second call finds the marker and writes nothing new
	require.NoError(t, st.EnsureFolder(ctx, "daylog/journal/u1"))
	assert.Len(t, fake.putKeys, 1)
}

func TestS3PutAndRead(t *testing.T) {
	fake := newFakeS3()
	st := newS3StoreWithAPI(fake, "journal")
	ctx := context.Background()

	ref, err := st.Put(ctx, "daylog/journal/u1/2024/05/01/log_a1.json", "application/json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "daylog/journal/u1/2024/05/01/log_a1.json", ref)

	data, err := st.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)

	_, err = st.Read(ctx, "missing-key")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestS3List(t *testing.T) {
	fake := newFakeS3()
	fake.pageSize = 2 // force pagination
	st := newS3StoreWithAPI(fake, "journal")
	ctx := context.Background()

	folder := "daylog/journal/u1/2024/05/01"
	fake.objects[folder+"/"] = nil // folder marker
	fake.objects[folder+"/log_a1.json"] = []byte(`{}`)
	fake.objects[folder+"/log_a2.json"] = []byte(`{}`)
	fake.objects[folder+"/log_a3.json"] = []byte(`{}`)
	fake.objects["daylog/journal/u1/2024/05/02/log_b1.json"] = []byte(`{}`)

	got, err := st.List(ctx, folder)
	require.NoError(t, err)

	var names []string
	for _, obj := range got {
		names = append(names, obj.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"log_a1.json", "log_a2.json", "log_a3.json"}, names)
}

func TestS3List_AbsentFolder(t *testing.T) {
	fake := newFakeS3()
	st := newS3StoreWithAPI(fake, "journal")

	got, err := st.List(context.Background(), "daylog/journal/u1/2024/05/01")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestS3Trash(t *testing.T) {
	fake := newFakeS3()
	st := newS3StoreWithAPI(fake, "journal")
	ctx := context.Background()

	key := "daylog/journal/u1/2024/05/01/log_a1.json"
	fake.objects[key] = []byte(`{}`)

	found, err := st.Trash(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotContains(t, fake.objects, key)
	assert.Contains(t, fake.objects, trashPrefix+key)

	// already gone: terminal, not an error
	found, err = st.Trash(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}
