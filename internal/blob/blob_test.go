package blob_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golden_hour/internal/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalBlob_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("progress ends at 100", func(t *testing.T) {
		payload := bytes.Repeat([]byte("x"), 200*1024)

		var seen []int
		b := blob.FromBytes(payload).WithUploadProgress(func(pct int) {
			seen = append(seen, pct)
		})

		var sink bytes.Buffer
		require.NoError(t, b.Upload(ctx, &sink))

		assert.Equal(t, payload, sink.Bytes())
		require.NotEmpty(t, seen)
		assert.Equal(t, 100, seen[len(seen)-1])

		for i := 1; i < len(seen); i++ {
			assert.GreaterOrEqual(t, seen[i], seen[i-1])
		}
	})

	t.Run("empty payload completes immediately", func(t *testing.T) {
		var seen []int
		b := blob.FromBytes([]byte{}).WithUploadProgress(func(pct int) {
			seen = append(seen, pct)
		})

		var sink bytes.Buffer
		require.NoError(t, b.Upload(ctx, &sink))
		assert.Equal(t, []int{100}, seen)
	})

	t.Run("cancelled context aborts before completion", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		var seen []int
		b := blob.FromBytes(bytes.Repeat([]byte("x"), 1024)).WithUploadProgress(func(pct int) {
			seen = append(seen, pct)
		})

		var sink bytes.Buffer
		err := b.Upload(cancelled, &sink)
		require.ErrorIs(t, err, context.Canceled)
		assert.NotContains(t, seen, 100)
	})

	t.Run("upload is not restartable", func(t *testing.T) {
		b := blob.FromBytes([]byte("once"))

		var sink bytes.Buffer
		require.NoError(t, b.Upload(ctx, &sink))

		err := b.Upload(ctx, &sink)
		require.ErrorIs(t, err, blob.ErrAlreadyUploaded)
	})

	t.Run("url-backed blob has no upload content", func(t *testing.T) {
		b := blob.FromURL("https://cdn.example.com/a.jpg")

		var sink bytes.Buffer
		err := b.Upload(ctx, &sink)
		require.ErrorIs(t, err, blob.ErrNoContent)
	})
}

func TestExternalBlob_Bytes(t *testing.T) {
	ctx := context.Background()

	t.Run("byte-backed returns content directly", func(t *testing.T) {
		b := blob.FromBytes([]byte("raw"))

		data, err := b.Bytes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("raw"), data)
	})

	t.Run("url-backed fetches over http", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("fetched"))
		}))
		defer srv.Close()

		b := blob.FromURL(srv.URL)

		data, err := b.Bytes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte("fetched"), data)
		assert.Equal(t, srv.URL, b.DirectURL())
	})
}

func TestExternalBlob_JSON(t *testing.T) {
	t.Run("url round trip", func(t *testing.T) {
		b := blob.FromURL("https://cdn.example.com/a.jpg")

		raw, err := b.MarshalJSON()
		require.NoError(t, err)

		var decoded blob.ExternalBlob
		require.NoError(t, decoded.UnmarshalJSON(raw))
		assert.True(t, b.Equal(&decoded))
	})

	t.Run("bytes round trip", func(t *testing.T) {
		b := blob.FromBytes([]byte{0x00, 0x01, 0x02})

		raw, err := b.MarshalJSON()
		require.NoError(t, err)

		var decoded blob.ExternalBlob
		require.NoError(t, decoded.UnmarshalJSON(raw))
		assert.True(t, b.Equal(&decoded))
	})
}
