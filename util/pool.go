package util

import (
	"bytes"
	"sync"
)

// DefaultBufSize is the initial capacity of pooled buffers (32 KiB).
const DefaultBufSize = 32 * 1024

// maxPooledSize keeps one oversized bundle from pinning memory forever.
const maxPooledSize = 4 * 1024 * 1024

// BufPool provides reusable buffers for assembling asset packages,
// reducing GC pressure when the dev server rebuilds on every request.
var BufPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, DefaultBufSize))
	},
}

// GetBuf retrieves an empty buffer from the pool.  Callers must return
// it with [PutBuf] when finished.
func GetBuf() *bytes.Buffer {
	buf := BufPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledSize {
		return
	}
	BufPool.Put(buf)
}
