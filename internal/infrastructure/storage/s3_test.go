package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/storage"
)

// fakeS3 bucket en memoria.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_SaveLoadConPrefijo(t *testing.T) {
	fake := newFakeS3()
	s := storage.NewS3Storage(fake, "portal", "certificates")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "certificate_1.pdf", []byte("%PDF")))
	assert.Contains(t, fake.objects, "portal/certificates/certificate_1.pdf")

	got, err := s.Load(ctx, "certificate_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), got)
}

func TestS3_LoadInexistente(t *testing.T) {
	s := storage.NewS3Storage(newFakeS3(), "portal", "")
	_, err := s.Load(context.Background(), "certificate_2.pdf")
	assert.ErrorIs(t, err, domain.ErrCertificateNotFound)
}

func TestS3_Delete(t *testing.T) {
	s := storage.NewS3Storage(newFakeS3(), "portal", "")
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "certificate_3.pdf", []byte("x")))

	require.NoError(t, s.Delete(ctx, "certificate_3.pdf"))
	assert.ErrorIs(t, s.Delete(ctx, "certificate_3.pdf"), domain.ErrCertificateNotFound)
}

func TestS3_ErrorDeSubida(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("bucket inaccesible")
	s := storage.NewS3Storage(fake, "portal", "")

	err := s.Save(context.Background(), "certificate_4.pdf", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket inaccesible")
}

func TestS3_NombreInvalido(t *testing.T) {
	s := storage.NewS3Storage(newFakeS3(), "portal", "certificates")
	_, err := s.Load(context.Background(), "../otro/certificate_1.pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
