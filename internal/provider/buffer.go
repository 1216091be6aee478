package provider

// Buffer is an engine-owned byte payload handed to the caller. The caller
// must Release it exactly once; further calls are no-ops.
type Buffer struct {
	data  []byte
	owner *Library
}

// Bytes returns the payload. It is nil after Release.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

func (b *Buffer) String() string {
	return string(b.Bytes())
}

func (b *Buffer) Len() int {
	return len(b.Bytes())
}

// Release frees the payload.
func (b *Buffer) Release() {
	if b == nil || b.data == nil {
		return
	}
	b.data = nil
	if b.owner != nil {
		b.owner.buffers.Add(-1)
		b.owner = nil
	}
}
