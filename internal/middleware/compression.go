package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/halcyonworks/compass/internal/encoding"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	MinSize          int      // Minimum response size to compress (bytes)
	CompressionLevel int      // Gzip compression level (1-9)
	ContentTypes     []string // Content types to compress
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		CompressionLevel: 6,
		ContentTypes: []string{
			"application/json",
			"text/plain",
			"text/html",
			"text/css",
			"application/javascript",
		},
	}
}

// CompressionMiddleware provides gzip compression for HTTP responses
type CompressionMiddleware struct {
	config CompressionConfig
	stats  *CompressionStats
	pool   sync.Pool // Pooled gzip writers
}

// NewCompressionMiddleware creates a new compression middleware
func NewCompressionMiddleware(config CompressionConfig) *CompressionMiddleware {
	if config.MinSize <= 0 {
		config.MinSize = 1024
	}
	if config.CompressionLevel < gzip.BestSpeed || config.CompressionLevel > gzip.BestCompression {
		config.CompressionLevel = 6
	}

	level := config.CompressionLevel
	return &CompressionMiddleware{
		config: config,
		stats:  NewCompressionStats(),
		pool: sync.Pool{
			New: func() interface{} {
				gz, _ := gzip.NewWriterLevel(io.Discard, level)
				return gz
			},
		},
	}
}

// Handler returns a Gin middleware that gzips responses for clients that
// accept it. The response stays identity-encoded until it outgrows
// MinSize, so small payloads skip the gzip overhead entirely.
func (cm *CompressionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cm.clientAcceptsGzip(c.Request) {
			c.Next()
			return
		}

		gzw := &gzipResponseWriter{
			ResponseWriter: c.Writer,
			cm:             cm,
			buf:            encoding.GetBuffer(),
		}
		c.Writer = gzw

		c.Next()

		gzw.finish()
	}
}

// clientAcceptsGzip checks if the client accepts gzip compression
func (cm *CompressionMiddleware) clientAcceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

// shouldCompress checks if the content type should be compressed
func (cm *CompressionMiddleware) shouldCompress(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// getGzipWriter gets a gzip writer from the pool
func (cm *CompressionMiddleware) getGzipWriter(w io.Writer) *gzip.Writer {
	gz := cm.pool.Get().(*gzip.Writer)
	gz.Reset(w)
	return gz
}

// putGzipWriter returns a gzip writer to the pool
func (cm *CompressionMiddleware) putGzipWriter(gz *gzip.Writer) {
	gz.Reset(io.Discard)
	cm.pool.Put(gz)
}

// GetStats returns compression statistics
func (cm *CompressionMiddleware) GetStats() map[string]interface{} {
	return cm.stats.GetStats()
}

// gzipResponseWriter buffers the response until the compress-or-not
// decision can be made, then streams the remainder through a pooled gzip
// writer or passes it through untouched.
type gzipResponseWriter struct {
	gin.ResponseWriter
	cm      *CompressionMiddleware
	buf     *bytes.Buffer // pending plaintext until the decision
	gz      *gzip.Writer
	counter *countingWriter
	plain   bool
	raw     int64
}

// Write writes data through the gzip writer once compression has started
func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	w.raw += int64(len(data))

	if w.gz != nil {
		return w.gz.Write(data)
	}
	if w.plain {
		return w.ResponseWriter.Write(data)
	}

	w.buf.Write(data)
	if w.buf.Len() >= w.cm.config.MinSize {
		if err := w.decide(); err != nil {
			return len(data), err
		}
	}
	return len(data), nil
}

// WriteString writes a string through the same decision path
func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush forces pending bytes onto the wire, abandoning compression if it
// has not started yet.
func (w *gzipResponseWriter) Flush() {
	if w.gz != nil {
		w.gz.Flush()
	} else if !w.plain {
		_ = w.flushPlain()
	}
	w.ResponseWriter.Flush()
}

// decide picks gzip or identity encoding once enough bytes are pending.
// The headers are still unflushed at this point because gin defers them
// until the first write on the underlying writer.
func (w *gzipResponseWriter) decide() error {
	if w.cm.shouldCompress(w.Header().Get("Content-Type")) {
		return w.startGzip()
	}
	return w.flushPlain()
}

func (w *gzipResponseWriter) startGzip() error {
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Del("Content-Length")

	w.counter = &countingWriter{w: w.ResponseWriter}
	w.gz = w.cm.getGzipWriter(w.counter)

	_, err := w.gz.Write(w.buf.Bytes())
	w.releaseBuffer()
	return err
}

func (w *gzipResponseWriter) flushPlain() error {
	w.plain = true

	var err error
	if w.buf.Len() > 0 {
		_, err = w.ResponseWriter.Write(w.buf.Bytes())
	}
	w.releaseBuffer()
	return err
}

func (w *gzipResponseWriter) releaseBuffer() {
	encoding.PutBuffer(w.buf)
	w.buf = bytes.NewBuffer(nil)
}

// finish flushes whatever is still pending once the handler chain is done
func (w *gzipResponseWriter) finish() {
	if w.gz == nil && !w.plain {
		// Response never crossed the size threshold
		_ = w.flushPlain()
	}

	if w.gz != nil {
		w.gz.Close()
		w.cm.putGzipWriter(w.gz)
		w.cm.stats.RecordResponse(w.raw, w.counter.n, true)
		return
	}

	w.cm.stats.RecordResponse(w.raw, w.raw, false)
}

// countingWriter counts compressed bytes on their way to the client
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// CompressionStats tracks compression statistics
type CompressionStats struct {
	totalResponses      int64
	compressedResponses int64
	totalBytes          int64
	compressedBytes     int64
	mutex               sync.RWMutex
}

// NewCompressionStats creates new compression statistics
func NewCompressionStats() *CompressionStats {
	return &CompressionStats{}
}

// RecordResponse records one response's raw size and bytes sent
func (cs *CompressionStats) RecordResponse(rawSize, sentSize int64, compressed bool) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.totalResponses++
	cs.totalBytes += rawSize

	if compressed {
		cs.compressedResponses++
		cs.compressedBytes += sentSize
	}
}

// GetStats returns current compression statistics
func (cs *CompressionStats) GetStats() map[string]interface{} {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	compressionRatio := float64(0)
	if cs.totalBytes > 0 {
		compressionRatio = float64(cs.compressedBytes) / float64(cs.totalBytes)
	}

	return map[string]interface{}{
		"total_responses":      cs.totalResponses,
		"compressed_responses": cs.compressedResponses,
		"total_bytes":          cs.totalBytes,
		"compressed_bytes":     cs.compressedBytes,
		"compression_ratio":    compressionRatio,
	}
}
