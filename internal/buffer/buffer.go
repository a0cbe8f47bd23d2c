package buffer

// Accumulator collects the raw bytes of a single connection until they form at
// least one complete request. It is owned exclusively by the connection's
// session: bytes are only ever appended at the back and trimmed off the front
// once a request has been fully consumed.
//
// No growth limit is enforced. A peer that streams an endless header section
// grows the accumulator without bound; bounding it is a policy decision left
// to the embedding application (e.g. via read deadlines on the socket).
type Accumulator struct {
	memory []byte
}

func New(prealloc int) *Accumulator {
	return &Accumulator{
		memory: make([]byte, 0, prealloc),
	}
}

// Append adds newly received bytes at the back.
func (a *Accumulator) Append(data []byte) {
	a.memory = append(a.memory, data...)
}

// Bytes returns the accumulated bytes. The returned slice aliases the internal
// storage and is invalidated by the next Append or TrimFront.
func (a *Accumulator) Bytes() []byte {
	return a.memory
}

// Len returns the number of accumulated bytes.
func (a *Accumulator) Len() int {
	return len(a.memory)
}

// TrimFront discards the first n bytes, shifting any remainder (e.g. a
// pipelined next request) to the front. Trimming more than is stored empties
// the accumulator.
func (a *Accumulator) TrimFront(n int) {
	if n >= len(a.memory) {
		a.memory = a.memory[:0]
		return
	}

	remainder := copy(a.memory, a.memory[n:])
	a.memory = a.memory[:remainder]
}

// Clear resets the accumulator, keeping the allocated space for reuse.
func (a *Accumulator) Clear() {
	a.memory = a.memory[:0]
}
