package processor

import "sync"

const copyBufferSize = 32 * 1024

// copyBuffers pools the scratch buffers used to pump file contents through
// the sealing transforms.
//
//nolint:gochecknoglobals
var copyBuffers = sync.Pool{
	New: func() any {
		buf := make([]byte, copyBufferSize)

		return &buf
	},
}
