package kshell

import "fmt"

// ScratchSize is the capacity of a ResponseBuffer.
const ScratchSize = 2048

// ResponseBuffer is the scratch area a command writes its result into.
//
// It's a plain value so each invocation gets its own copy on the stack, never
// share one between calls.
type ResponseBuffer struct {
	buf [ScratchSize]byte
	n   int
}

// SetString replaces the response with s, cut to ScratchSize bytes.
func (r *ResponseBuffer) SetString(s string) {
	r.n = copy(r.buf[:], s)
}

// Reset empties the response.
func (r *ResponseBuffer) Reset() {
	r.n = 0
}

// Fill hands the whole scratch area to fill and keeps the number of bytes it
// reports. On error the response is left empty. Counts outside the scratch
// area are treated as failures.
func (r *ResponseBuffer) Fill(fill func(buf []byte) (int, error)) error {
	r.n = 0
	n, err := fill(r.buf[:])
	switch {
	case err != nil:
		return err
	case n < 0:
		return fmt.Errorf("negative byte count %d", n)
	case n > len(r.buf):
		return fmt.Errorf("byte count %d exceeds buffer of %d", n, len(r.buf))
	}

	r.n = n
	return nil
}

// Len returns the number of bytes in the response.
func (r *ResponseBuffer) Len() int {
	return r.n
}

// Bytes returns the response, it aliases the scratch area.
func (r *ResponseBuffer) Bytes() []byte {
	return r.buf[:r.n]
}

// CopyTo copies the response into out, clipped to len(out), and returns the
// number of bytes copied. A NUL terminator follows the copied bytes only if
// there's room for it. Nothing is ever written past len(out).
func (r *ResponseBuffer) CopyTo(out []byte) int {
	n := copy(out, r.buf[:r.n])
	if n < len(out) {
		out[n] = 0
	}
	return n
}
