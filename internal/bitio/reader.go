package bitio

import (
	"errors"
	"io"
	"os"
)

// ErrUnexpectedEOF is returned by Read when the file runs out of bytes
// before a full-width value could be assembled.
var ErrUnexpectedEOF = errors.New("bitio: unexpected EOF")

// Reader unpacks variable-width integers from a byte stream read from a
// single file, using the same big-endian packing as Writer. A Reader owns
// the file handle for its lifetime: callers must call Close exactly once.
type Reader struct {
	file *os.File

	// bitsPerRead is the width of the next value Read will return; it can
	// be changed between reads via SetBitsPerRead, taking effect on the
	// next read.
	bitsPerRead uint

	// excessBits is the number of bits, in [0, 7], already buffered from a
	// whole byte read but not yet returned to the caller.
	excessBits uint
	// unalignedRest holds those buffered bits in its low-order bits.
	unalignedRest uint32

	eof bool
}

// NewReader creates a Reader over inFile with an initial read width of
// bitsPerRead.
func NewReader(inFile *os.File, bitsPerRead uint) *Reader {
	return &Reader{file: inFile, bitsPerRead: bitsPerRead}
}

// Open opens path for reading and returns a Reader over it with an initial
// read width of bitsPerRead.
func Open(path string, bitsPerRead uint) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f, bitsPerRead), nil
}

// SetBitsPerRead changes the width used by the next call to Read.
func (r *Reader) SetBitsPerRead(bitsPerRead uint) {
	r.bitsPerRead = bitsPerRead
}

// AtEOF reports whether a previous Read already returned the final,
// short leftover value; a further Read would be an error.
func (r *Reader) AtEOF() bool {
	return r.eof
}

// Read returns the next bitsPerRead bits of the file as an unsigned integer,
// most significant bit first. If the file is exhausted before a full value
// can be assembled, Read returns the leftover low-order bits once (see
// AtEOF) and ErrUnexpectedEOF; callers decoding a well-formed stream
// should never observe this, since a correctly encoded stream always ends
// with the stream-end marker before running out of bytes.
func (r *Reader) Read() (uint32, error) {
	if r.eof {
		return 0, io.EOF
	}

	v := r.unalignedRest
	held := r.excessBits

	var buf [1]byte
	for held < r.bitsPerRead {
		n, err := r.file.Read(buf[:])
		if n == 0 {
			r.eof = true
			if err != nil && err != io.EOF {
				return 0, err
			}
			return r.unalignedRest, ErrUnexpectedEOF
		}
		v = (v << byteSize) | uint32(buf[0])
		held += byteSize
	}

	r.excessBits = held - r.bitsPerRead
	r.unalignedRest = v & ((1 << r.excessBits) - 1)
	return v >> r.excessBits, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
