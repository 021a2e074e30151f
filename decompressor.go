package lzw3

import (
	"bufio"
	"os"

	"github.com/Docheinstein/lzw3/internal/bitio"
)

// Decompressor decodes an LZW-compressed code stream back into the original
// bytes. A Decompressor is not safe for concurrent use and handles one file
// at a time; its dictionary is discarded once Decompress returns.
//
// Each dictionary entry is stored as a (parent code, last byte) pair rather
// than as an owned byte slice: reconstructing a code's full byte sequence
// means walking the parent chain back to Root and reversing it. The first
// byte of each entry's sequence is cached at insert time (it is always the
// parent's first byte, or the entry's own byte for a length-1 sequence) so
// the KWKWK special case never needs a walk.
type Decompressor struct {
	parents    []int32
	lastBytes  []byte
	firstBytes []byte
	width      uint
}

// NewDecompressor creates a Decompressor ready to decode a file.
func NewDecompressor() *Decompressor {
	return &Decompressor{}
}

func (d *Decompressor) init() {
	capacity := AlphabetSize*4 + 1
	d.parents = make([]int32, 0, capacity)
	d.lastBytes = make([]byte, 0, capacity)
	d.firstBytes = make([]byte, 0, capacity)
	d.width = 0
	for i := 0; i < AlphabetSize; i++ {
		d.insertLeaf(byte(i))
	}
	// Synthetic entry for StreamEnd: never read back out, just keeps the
	// dictionaries in lockstep with the encoder's.
	d.insertLeaf(0)
}

func (d *Decompressor) insertLeaf(b byte) int32 {
	code, _ := d.insert(Root, b)
	return code
}

// insert appends a new dictionary entry (parent, lastByte) and advances the
// code width per the shared rule, using the code count after the append
// (one more than the encoder watches), so this side widens one insertion
// ahead of the encoder: the phase offset the format depends on. It reports
// whether this call widened the code.
func (d *Decompressor) insert(parent int32, lastByte byte) (code int32, widened bool) {
	code = int32(len(d.parents))
	first := lastByte
	if parent != Root {
		first = d.firstBytes[parent]
	}
	d.parents = append(d.parents, parent)
	d.lastBytes = append(d.lastBytes, lastByte)
	d.firstBytes = append(d.firstBytes, first)
	widthBefore := d.width
	advanceWidth(&d.width, len(d.parents))
	return code, d.width != widthBefore
}

func (d *Decompressor) nextCode() int32 {
	return int32(len(d.parents))
}

// sequenceFor reconstructs the full byte sequence for code by walking its
// parent chain back to Root and reversing the collected bytes.
func (d *Decompressor) sequenceFor(code int32) []byte {
	var depth int
	for c := code; c != Root; c = d.parents[c] {
		depth++
	}
	seq := make([]byte, depth)
	for c := code; c != Root; c = d.parents[c] {
		depth--
		seq[depth] = d.lastBytes[c]
	}
	return seq
}

// Decompress reads inPath as an LZW-encoded stream and writes the decoded
// bytes to outPath. It reports false, nil if inPath does not exist; true,
// nil on success; ErrTruncatedStream if the stream-end marker is never
// reached; ErrInvalidCode on a malformed code; and any I/O error otherwise.
func (d *Decompressor) Decompress(inPath, outPath string) (bool, error) {
	if _, err := os.Stat(inPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	in, err := bitio.Open(inPath, initialCodeWidth)
	if err != nil {
		return false, err
	}
	defer in.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return false, err
	}
	defer outFile.Close()
	out := bufio.NewWriter(outFile)
	defer out.Flush()

	d.init()

	prevCode, err := in.Read()
	if err != nil {
		return false, truncatedOr(err)
	}
	if int32(prevCode) == StreamEnd {
		// An empty input encodes as a lone stream-end marker; there is
		// nothing to write.
		return true, out.Flush()
	}

	prevSeq := d.sequenceFor(int32(prevCode))
	if _, err := out.Write(prevSeq); err != nil {
		return false, err
	}
	prevSeqFirst := prevSeq[0]
	justWidened := false
	var peeked uint32
	havePeeked := false

	for {
		in.SetBitsPerRead(d.width)
		code := peeked
		if havePeeked {
			havePeeked = false
		} else if code, err = in.Read(); err != nil {
			return false, truncatedOr(err)
		}
		if int32(code) == StreamEnd {
			break
		}
		if justWidened && code&1 == 0 && int32(code>>1) == StreamEnd {
			// Either a real code, or the dictionary reached a
			// power-of-two size on the very last insert of the stream,
			// with no further code to let the encoder's own width catch
			// up to ours (it advances one step later than this side
			// does): then the extra bit just read is zero padding and
			// code>>1 is the stream-end marker the encoder wrote at its
			// still-narrower width. Only padding follows a real end, too
			// few bits for another code, so a short next read decides it.
			next, err := in.Read()
			if err == bitio.ErrUnexpectedEOF {
				break
			}
			if err != nil {
				return false, err
			}
			peeked, havePeeked = next, true
		}

		var outSeq []byte
		var outFirst byte

		if int32(code) < d.nextCode() {
			outSeq = d.sequenceFor(int32(code))
			outFirst = outSeq[0]
		} else if int32(code) == d.nextCode() {
			// KWKWK: the encoder used the very entry it was in the
			// middle of defining.
			outFirst = prevSeqFirst
			outSeq = append(append([]byte{}, prevSeq...), outFirst)
		} else {
			return false, ErrInvalidCode
		}

		_, justWidened = d.insert(int32(prevCode), outFirst)

		if _, err := out.Write(outSeq); err != nil {
			return false, err
		}

		prevCode = code
		prevSeq = outSeq
		prevSeqFirst = outFirst
	}

	if err := out.Flush(); err != nil {
		return false, err
	}
	return true, nil
}

func truncatedOr(err error) error {
	if err == bitio.ErrUnexpectedEOF {
		return ErrTruncatedStream
	}
	return err
}

// Decompress is a convenience wrapper equivalent to
// NewDecompressor().Decompress.
func Decompress(inPath, outPath string) (bool, error) {
	return NewDecompressor().Decompress(inPath, outPath)
}
