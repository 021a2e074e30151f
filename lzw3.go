// Package lzw3 implements a lossless LZW (Lempel-Ziv-Welch) file compressor
// and decompressor with a variable-width bit-packed code stream. There is no
// header, magic number, or checksum: the on-disk format is the raw sequence
// of codes, most significant bit first, terminated by the stream-end marker
// and zero-padded to the next byte boundary.
package lzw3

import "errors"

const (
	// Root is the sentinel parent code denoting the empty sequence; it is
	// never itself assigned as a code.
	Root = -1

	// AlphabetSize is the number of distinct byte values, one code per
	// possible byte.
	AlphabetSize = 256

	// StreamEnd is the reserved code, numerically equal to AlphabetSize,
	// that marks the end of the compressed stream. It has no corresponding
	// byte sequence.
	StreamEnd = AlphabetSize

	// initialCodeWidth is the width of the first code written or read: the
	// number of bits needed for AlphabetSize+1 codes (0..256).
	initialCodeWidth = 9

	// CompressedFileExtension is the canonical extension used by the CLI
	// driver for compressed files.
	CompressedFileExtension = ".Z"

	// maxCodeWidth bounds dictionary growth in this implementation. The
	// wire format itself has no such cap, but an unbounded dictionary is a
	// memory-exhaustion hazard on adversarial input.
	maxCodeWidth = 24
)

// ErrCodeWidthOverflow is returned when a single file's dictionary would
// need more than maxCodeWidth bits per code.
var ErrCodeWidthOverflow = errors.New("lzw3: dictionary exceeds maximum code width")

// ErrTruncatedStream is returned by Decompress when the input ends before
// the stream-end marker is read.
var ErrTruncatedStream = errors.New("lzw3: truncated compressed stream")

// ErrInvalidCode is returned by Decompress when a code read from the stream
// is neither a known dictionary entry nor the one code currently being
// defined (the KWKWK case).
var ErrInvalidCode = errors.New("lzw3: invalid code in compressed stream")
