package lzw3

import (
	"bufio"
	"io"
	"os"

	"github.com/Docheinstein/lzw3/internal/bitio"
)

// sequenceKey identifies one entry of the encoder's dictionary: the code of
// the parent sequence (or Root for a length-1 sequence) together with the
// byte that extends it.
type sequenceKey struct {
	parent int32
	edge   uint16
}

// Compressor encodes a file into an LZW-compressed code stream. A
// Compressor is not safe for concurrent use and handles one file at a time;
// its dictionary is discarded once Compress returns.
type Compressor struct {
	dict     map[sequenceKey]int32
	nextCode int32
	width    uint
}

// NewCompressor creates a Compressor ready to encode a file.
func NewCompressor() *Compressor {
	return &Compressor{}
}

func (c *Compressor) init() {
	// Sized for the alphabet plus the stream-end marker plus headroom for
	// the dictionary entries a typical file will add.
	c.dict = make(map[sequenceKey]int32, AlphabetSize*4)
	c.nextCode = 0
	c.width = 0
	for i := 0; i < AlphabetSize; i++ {
		c.insert(Root, i)
	}
	c.insert(Root, StreamEnd)
}

// insert adds (parent, edge) to the dictionary under the next available
// code and advances the code width per the shared rule. Every inserted
// code is exactly the value of nextCode at the time of the call.
func (c *Compressor) insert(parent int32, edge int) error {
	if c.width > maxCodeWidth {
		return ErrCodeWidthOverflow
	}
	code := c.nextCode
	c.dict[sequenceKey{parent, uint16(edge)}] = code
	advanceWidth(&c.width, int(code))
	c.nextCode++
	return nil
}

func (c *Compressor) lookup(parent int32, edge int) (int32, bool) {
	code, ok := c.dict[sequenceKey{parent, uint16(edge)}]
	return code, ok
}

// Compress reads inPath in full and writes its LZW-encoded form to outPath.
// It reports false, nil if inPath does not exist; true, nil on success; and
// a non-nil error for any I/O failure or dictionary overflow encountered
// along the way.
func (c *Compressor) Compress(inPath, outPath string) (bool, error) {
	if _, err := os.Stat(inPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	inFile, err := os.Open(inPath)
	if err != nil {
		return false, err
	}
	defer inFile.Close()

	out, err := bitio.Create(outPath)
	if err != nil {
		return false, err
	}
	defer out.Close()

	c.init()

	in := bufio.NewReader(inFile)
	parent := int32(Root)
	sawByte := false

	for {
		b, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false, err
		}
		sawByte = true

		if child, ok := c.lookup(parent, int(b)); ok {
			parent = child
			continue
		}

		if err := out.Write(uint32(parent), c.width); err != nil {
			return false, err
		}
		if err := c.insert(parent, int(b)); err != nil {
			return false, err
		}
		root, _ := c.lookup(Root, int(b))
		parent = root
	}

	// An empty input never assigns parent a real code; writing it here
	// would emit a second, bogus code ahead of the stream-end marker.
	if sawByte {
		if err := out.Write(uint32(parent), c.width); err != nil {
			return false, err
		}
	}
	if err := out.Write(uint32(StreamEnd), c.width); err != nil {
		return false, err
	}
	return true, nil
}

// Compress is a convenience wrapper equivalent to NewCompressor().Compress.
func Compress(inPath, outPath string) (bool, error) {
	return NewCompressor().Compress(inPath, outPath)
}
