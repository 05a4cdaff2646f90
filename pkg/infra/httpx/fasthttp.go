package httpx

import (
	"crypto/tls"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 512
	DefaultMaxIdleConnDuration = 10 * time.Second
	DefaultReadBufferSize      = 4096
	DefaultWriteBufferSize     = 4096
	DefaultMaxResponseBodySize = 100 * 1024 * 1024 // 100MB
)

// UpstreamClientOptions configures the client used to forward sanitized
// requests upstream.
type UpstreamClientOptions struct {
	Timeout             time.Duration
	InsecureSkipVerify  bool
	MaxConnsPerHost     int
	MaxIdleConnDuration time.Duration
	ReadBufferSize      int
	WriteBufferSize     int
	MaxResponseBodySize int
	Name                string
}

type UpstreamClientOption func(*UpstreamClientOptions)

func WithTimeout(timeout time.Duration) UpstreamClientOption {
	return func(o *UpstreamClientOptions) {
		o.Timeout = timeout
	}
}

func WithInsecureSkipVerify(skip bool) UpstreamClientOption {
	return func(o *UpstreamClientOptions) {
		o.InsecureSkipVerify = skip
	}
}

func WithMaxConnsPerHost(max int) UpstreamClientOption {
	return func(o *UpstreamClientOptions) {
		o.MaxConnsPerHost = max
	}
}

func WithMaxResponseBodySize(size int) UpstreamClientOption {
	return func(o *UpstreamClientOptions) {
		o.MaxResponseBodySize = size
	}
}

// WithName sets the User-Agent fasthttp sends when the request has none.
func WithName(name string) UpstreamClientOption {
	return func(o *UpstreamClientOptions) {
		o.Name = name
	}
}

func NewUpstreamClient(opts ...UpstreamClientOption) *fasthttp.Client {
	options := &UpstreamClientOptions{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxIdleConnDuration: DefaultMaxIdleConnDuration,
		ReadBufferSize:      DefaultReadBufferSize,
		WriteBufferSize:     DefaultWriteBufferSize,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
	}
	for _, opt := range opts {
		opt(options)
	}

	client := &fasthttp.Client{
		Name:                options.Name,
		MaxConnsPerHost:     options.MaxConnsPerHost,
		MaxIdleConnDuration: options.MaxIdleConnDuration,
		ReadBufferSize:      options.ReadBufferSize,
		WriteBufferSize:     options.WriteBufferSize,
		MaxResponseBodySize: options.MaxResponseBodySize,
		ReadTimeout:         options.Timeout,
		WriteTimeout:        options.Timeout,
		// the guard may have rewritten query strings and headers already;
		// forward them byte for byte
		DisablePathNormalizing:        true,
		DisableHeaderNamesNormalizing: true,
	}
	if options.InsecureSkipVerify {
		client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // intentionally configurable
		}
	}
	return client
}
