package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	ErrNoContent       = errors.New("blob has no content")
	ErrAlreadyUploaded = errors.New("blob upload already consumed")
)

// ProgressFunc receives upload progress as a percentage. It is invoked zero
// or more times with increasing values and, on success, a final 100.
type ProgressFunc func(percentage int)

// ExternalBlob is an opaque handle to externally stored binary media. It is
// backed either by raw bytes (pending upload) or by a dereferenceable URL.
type ExternalBlob struct {
	url        string
	data       []byte
	onProgress ProgressFunc
	uploaded   bool

	client *http.Client
}

// FromURL wraps an already-stored object addressed by url.
func FromURL(url string) *ExternalBlob {
	return &ExternalBlob{url: url}
}

// FromBytes wraps raw bytes that have not been stored yet.
func FromBytes(b []byte) *ExternalBlob {
	return &ExternalBlob{data: b}
}

// DirectURL returns the dereferenceable URL, empty for byte-backed blobs
// that were never uploaded.
func (b *ExternalBlob) DirectURL() string {
	return b.url
}

// WithUploadProgress returns a copy of the blob whose Upload reports
// progress through fn.
func (b *ExternalBlob) WithUploadProgress(fn ProgressFunc) *ExternalBlob {
	clone := *b
	clone.onProgress = fn
	return &clone
}

// Bytes returns the blob content, fetching over HTTP when URL-backed.
func (b *ExternalBlob) Bytes(ctx context.Context) ([]byte, error) {
	const op = "blob.ExternalBlob.Bytes"

	if b.data != nil {
		return b.data, nil
	}
	if b.url == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoContent)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := b.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

const uploadChunkSize = 64 * 1024

// Upload streams the blob's bytes into w, reporting progress along the way.
// The progress sequence is finite and non-restartable: it ends at 100 on
// success or stops early when w fails or ctx is cancelled. A second call
// returns ErrAlreadyUploaded.
func (b *ExternalBlob) Upload(ctx context.Context, w io.Writer) error {
	const op = "blob.ExternalBlob.Upload"

	if b.uploaded {
		return fmt.Errorf("%s: %w", op, ErrAlreadyUploaded)
	}
	if b.data == nil {
		return fmt.Errorf("%s: %w", op, ErrNoContent)
	}
	b.uploaded = true

	total := len(b.data)
	written := 0

	for written < total {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		end := written + uploadChunkSize
		if end > total {
			end = total
		}

		n, err := w.Write(b.data[written:end])
		written += n
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		b.report(written * 100 / total)
	}

	b.report(100)
	return nil
}

func (b *ExternalBlob) report(pct int) {
	if b.onProgress != nil {
		b.onProgress(pct)
	}
}

func (b *ExternalBlob) httpClient() *http.Client {
	if b.client != nil {
		return b.client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

type blobJSON struct {
	URL   string `json:"url,omitempty"`
	Bytes string `json:"bytes,omitempty"`
}

// MarshalJSON serializes URL-backed blobs by reference and byte-backed
// blobs inline as base64.
func (b *ExternalBlob) MarshalJSON() ([]byte, error) {
	out := blobJSON{URL: b.url}
	if b.url == "" && b.data != nil {
		out.Bytes = base64.StdEncoding.EncodeToString(b.data)
	}
	return json.Marshal(out)
}

func (b *ExternalBlob) UnmarshalJSON(raw []byte) error {
	var in blobJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}

	b.url = in.URL
	b.data = nil
	if in.Bytes != "" {
		data, err := base64.StdEncoding.DecodeString(in.Bytes)
		if err != nil {
			return err
		}
		b.data = data
	}
	return nil
}

// Equal reports whether two blobs reference the same content.
func (b *ExternalBlob) Equal(other *ExternalBlob) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.url != "" || other.url != "" {
		return b.url == other.url
	}
	return bytes.Equal(b.data, other.data)
}
