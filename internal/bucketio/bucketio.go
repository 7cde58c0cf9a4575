// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bucketio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/greenmaskio/rowsync/internal/interfaces"
	"github.com/greenmaskio/rowsync/internal/models"
)

const (
	jsonExt = ".json"
	gzExt   = ".json.gz"
)

var errNotBucketFile = errors.New("not a bucket file")

// IsBucketFile - bucket files are either plain json or json compressed with gzip.
func IsBucketFile(name string) bool {
	return strings.HasSuffix(name, jsonExt) || strings.HasSuffix(name, gzExt)
}

func isCompressed(name string) bool {
	return strings.HasSuffix(name, gzExt)
}

func Decode(r io.Reader) (*models.Bucket, error) {
	var b models.Bucket
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode bucket: %w", err)
	}
	return &b, nil
}

func Encode(w io.Writer, b *models.Bucket) error {
	if err := json.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("encode bucket: %w", err)
	}
	return nil
}

// Read - reads the bucket from the storage object. The compression is detected by the name.
func Read(ctx context.Context, st interfaces.Storager, name string) (*models.Bucket, error) {
	if !IsBucketFile(name) {
		return nil, fmt.Errorf("%s: %w", name, errNotBucketFile)
	}
	obj, err := st.GetObject(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer obj.Close()

	var r io.Reader = obj
	if isCompressed(name) {
		gz, err := pgzip.NewReader(obj)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return Decode(r)
}

// Write - streams the encoded bucket into the storage object.
func Write(ctx context.Context, st interfaces.Storager, name string, b *models.Bucket) error {
	if !IsBucketFile(name) {
		return fmt.Errorf("%s: %w", name, errNotBucketFile)
	}
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(encodeTo(pw, name, b))
	}()
	if err := st.PutObject(ctx, name, pr); err != nil {
		_ = pr.CloseWithError(err)
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func encodeTo(w io.Writer, name string, b *models.Bucket) error {
	if !isCompressed(name) {
		return Encode(w, b)
	}
	gz := pgzip.NewWriter(w)
	if err := Encode(gz, b); err != nil {
		_ = gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}
	return nil
}
