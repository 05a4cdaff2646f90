package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fasthttp"
)

// DefaultMaxDecodedSize bounds each decoded layer when the caller passes no limit.
const DefaultMaxDecodedSize int64 = 8 * 1024 * 1024

var (
	ErrUnsupportedEncoding = errors.New("unsupported content-encoding")
	ErrBodyTooLarge        = errors.New("decoded body exceeds limit")
)

type decoder func(body []byte) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"br":      decodeBrotli,
	"gzip":    decodeGzip,
	"x-gzip":  decodeGzip,
	"zstd":    decodeZstd,
	"deflate": decodeDeflate,
}

// DecodeRequestBody returns the request body with every Content-Encoding
// layer removed. The request itself is left untouched.
func DecodeRequestBody(req *fasthttp.Request, maxSize int64) ([]byte, bool, error) {
	return DecodeBody(string(req.Header.Peek(fasthttp.HeaderContentEncoding)), req.Body(), maxSize)
}

// DecodeBody undoes a (possibly chained) Content-Encoding such as "gzip, br".
// Encodings are listed in the order they were applied, so they are removed
// from last to first. No layer may inflate past maxSize bytes; a value of
// zero or less selects DefaultMaxDecodedSize.
func DecodeBody(contentEncoding string, body []byte, maxSize int64) ([]byte, bool, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, false, nil
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxDecodedSize
	}
	layers := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(layers) - 1; i >= 0; i-- {
		name := strings.ToLower(strings.TrimSpace(layers[i]))
		if name == "" || name == "identity" {
			continue
		}
		decode, ok := decoders[name]
		if !ok {
			return nil, false, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
		}
		rc, err := decode(body)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decode %s body: %w", name, err)
		}
		out, err := readLimited(rc, maxSize)
		if err != nil {
			return nil, false, fmt.Errorf("failed to decode %s body: %w", name, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func decodeBrotli(body []byte) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(bytes.NewReader(body))), nil
}

func decodeGzip(body []byte) (io.ReadCloser, error) {
	return gzip.NewReader(bytes.NewReader(body))
}

func decodeZstd(body []byte) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

// decodeDeflate accepts zlib-wrapped data (RFC 1950) and falls back to raw
// deflate, which some clients send instead.
func decodeDeflate(body []byte) (io.ReadCloser, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		return zr, nil
	}
	return flate.NewReader(bytes.NewReader(body)), nil
}

func readLimited(rc io.ReadCloser, maxSize int64) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(rc, maxSize+1))
	cerr := rc.Close()
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxSize)
	}
	if cerr != nil {
		return nil, cerr
	}
	return out, nil
}
