package s3

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mecore/internal/blob/core"
)

// fakeS3 serves the path-style subset of the S3 API used by Store.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]fakeObject
	failList bool
	requests int
}

type fakeObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
}

func respond(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body)), Header: header}
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	_, key, _ := strings.Cut(strings.TrimPrefix(req.URL.Path, "/"), "/")
	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		if f.failList {
			return respond(http.StatusForbidden, "<Error><Code>AccessDenied</Code></Error>", nil), nil
		}
		return f.list(req.URL.Query().Get("prefix"), req.URL.Query().Get("continuation-token")), nil
	}
	switch req.Method {
	case http.MethodHead, http.MethodGet:
		obj, ok := f.objects[key]
		if !ok {
			return respond(http.StatusNotFound, "", nil), nil
		}
		h := http.Header{
			"Content-Length": {strconv.Itoa(len(obj.body))},
			"Content-Type":   {obj.contentType},
			"Etag":           {`"etag-` + key + `"`},
			"Last-Modified":  {"Mon, 01 Jan 2024 00:00:00 GMT"},
		}
		for k, v := range obj.metadata {
			h.Set("X-Amz-Meta-"+k, v)
		}
		body := ""
		if req.Method == http.MethodGet {
			body = string(obj.body)
		}
		return respond(http.StatusOK, body, h), nil
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeChunked(body)
		}
		md := map[string]string{}
		for k, v := range req.Header {
			if name, ok := strings.CutPrefix(strings.ToLower(k), "x-amz-meta-"); ok {
				md[name] = v[0]
			}
		}
		f.objects[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type"), metadata: md}
		return respond(http.StatusOK, "", http.Header{"Etag": {`"etag"`}}), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return respond(http.StatusNoContent, "", nil), nil
	}
	return respond(http.StatusNotImplemented, "", nil), nil
}

// list returns one key per page so pagination is exercised.
func (f *fakeS3) list(prefix, token string) *http.Response {
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) && k > token {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult>`)
	if len(keys) > 1 {
		fmt.Fprintf(&b, "<IsTruncated>true</IsTruncated><NextContinuationToken>%s</NextContinuationToken>", keys[0])
		keys = keys[:1]
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	for _, k := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>", k, len(f.objects[k].body))
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, b.String(), http.Header{"Content-Type": {"application/xml"}})
}

func decodeChunked(b []byte) []byte {
	var out bytes.Buffer
	r := bufio.NewReader(bytes.NewReader(b))
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return out.Bytes()
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil || size == 0 {
			return out.Bytes()
		}
		chunk := make([]byte, size)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return out.Bytes()
		}
		out.Write(chunk)
		_, _ = r.ReadString('\n')
	}
}

func newTestStore(t *testing.T) (*Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string]fakeObject)}
	s, err := New(context.Background(), Config{
		Bucket:          "artifacts",
		Endpoint:        "http://s3.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: fake},
	})
	require.NoError(t, err)
	return s, fake
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	assert.Equal(t, core.DriverS3, s.Driver())
	assert.Equal(t, "artifacts", s.Bucket())

	info, err := s.Put(ctx, "runs/r1/stoichiometry.tsv", strings.NewReader("reaction\tspecies\n"), core.PutOptions{
		ContentType: "text/tab-separated-values",
		Metadata:    map[string]string{"run": "r1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17), info.Size)
	assert.Equal(t, "etag-runs/r1/stoichiometry.tsv", info.ETag)
	assert.Equal(t, "r1", info.Metadata["run"])

	_, err = s.Put(ctx, "runs/r1/stoichiometry.tsv", strings.NewReader("x"), core.PutOptions{})
	assert.ErrorIs(t, err, core.ErrExists)

	got, rc, err := s.Get(ctx, "runs/r1/stoichiometry.tsv")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "reaction\tspecies\n", string(body))
	assert.Equal(t, "text/tab-separated-values", got.ContentType)
}

func TestStoreListPaginates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	for _, k := range []string{"runs/b", "runs/a", "runs/c", "other/x"} {
		_, err := s.Put(ctx, k, strings.NewReader(k), core.PutOptions{})
		require.NoError(t, err)
	}
	list, err := s.List(ctx, "runs/")
	require.NoError(t, err)
	keys := make([]string, 0, len(list))
	for _, info := range list {
		keys = append(keys, info.Key)
	}
	assert.Equal(t, []string{"runs/a", "runs/b", "runs/c"}, keys)
}

func TestStoreMissingKeysAndErrors(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestStore(t)

	_, err := s.Head(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, _, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	ok, err := s.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Put(ctx, "k", strings.NewReader("v"), core.PutOptions{})
	require.NoError(t, err)
	ok, err = s.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.Put(ctx, "../escape", strings.NewReader("v"), core.PutOptions{})
	assert.Error(t, err)

	fake.failList = true
	_, err = s.List(ctx, "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrNotFound))
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)

	t.Setenv(EnvBucket, "")
	_, err = OpenFromEnv(context.Background())
	assert.ErrorContains(t, err, EnvBucket)
}

func TestOpenFromEnv(t *testing.T) {
	t.Setenv(EnvBucket, "env-bucket")
	t.Setenv(EnvRegion, "eu-west-1")
	t.Setenv(EnvEndpoint, "http://minio.local:9000")
	t.Setenv(EnvPathStyle, "TRUE")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	s, err := OpenFromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-bucket", s.Bucket())
	assert.Equal(t, "eu-west-1", s.client.Options().Region)
	assert.True(t, s.client.Options().UsePathStyle)
}
