package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lexvault/internal/domain"
)

const materialsPrefix = "materials/"

// ObjectStoreConfig locates the bucket holding material records.
type ObjectStoreConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// MaterialObjectStore persists each material as a JSON object in an
// S3-compatible bucket.
type MaterialObjectStore struct {
	client *minio.Client
	bucket string

	mu          sync.Mutex
	bucketReady bool
}

// NewMaterialObjectStore returns a store for cfg. No request is made until
// first use, when the bucket is created if missing.
func NewMaterialObjectStore(cfg ObjectStoreConfig) (*MaterialObjectStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MaterialObjectStore{client: client, bucket: cfg.Bucket}, nil
}

func objectKey(id domain.MaterialID) string {
	return materialsPrefix + id.String() + ".json"
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func (s *MaterialObjectStore) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketReady {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}
	s.bucketReady = true
	return nil
}

// SaveMaterial writes m to materials/<id>.json, replacing any previous object.
func (s *MaterialObjectStore) SaveMaterial(ctx context.Context, m domain.Material) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectKey(m.ID), bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

// LoadMaterial returns the record for id and whether it exists.
func (s *MaterialObjectStore) LoadMaterial(
	ctx context.Context,
	id domain.MaterialID,
) (domain.Material, bool, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return domain.Material{}, false, err
	}
	return s.load(ctx, objectKey(id))
}

func (s *MaterialObjectStore) load(ctx context.Context, key string) (domain.Material, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return domain.Material{}, false, nil
		}
		return domain.Material{}, false, err
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return domain.Material{}, false, nil
		}
		return domain.Material{}, false, err
	}
	var m domain.Material
	if err := json.Unmarshal(b, &m); err != nil {
		return domain.Material{}, false, err
	}
	return m, true, nil
}

// ListMaterials returns every record under the materials/ prefix.
func (s *MaterialObjectStore) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	var out []domain.Material
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    materialsPrefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, info.Err
		}
		if !strings.HasSuffix(info.Key, ".json") || path.Dir(info.Key)+"/" != materialsPrefix {
			continue
		}
		m, ok, err := s.load(ctx, info.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// DeleteMaterial removes the object for id and reports whether it existed.
func (s *MaterialObjectStore) DeleteMaterial(ctx context.Context, id domain.MaterialID) (bool, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return false, err
	}
	key := objectKey(id)
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return false, err
	}
	return true, nil
}

// Compile-time assertion that MaterialObjectStore implements domain.MaterialStore.
var _ domain.MaterialStore = (*MaterialObjectStore)(nil)
