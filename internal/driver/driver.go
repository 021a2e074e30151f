// Package driver implements the file and directory handling shared by the
// compress and decompress command-line tools: walking a path list,
// deciding what to keep or delete, and reporting sizes and timings. The
// core lzw3 package never imports this one; it stays a thin layer the CLI
// commands build on top of.
package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Docheinstein/lzw3"
	"github.com/Docheinstein/lzw3/internal/timeline"
)

// Options controls the behavior shared by CompressDriver and
// DecompressDriver.
type Options struct {
	// Recursive makes Run descend into directories instead of skipping them.
	Recursive bool
	// Keep leaves the source file in place after a successful operation.
	Keep bool
	// Force keeps a compressed file even when it is not smaller than its
	// source, and lets DecompressDriver process files lacking the
	// canonical extension, in place.
	Force bool
	// Time prints the wall-clock duration of each compress/decompress call.
	Time bool
	// Verbose prints one summary line per file handled.
	Verbose bool
}

// handler processes a single regular file. run supplies every file found
// under the requested paths to it.
type handler interface {
	handleFile(path string)
}

// run walks paths (files, or with Options.Recursive directories) and hands
// every regular file it finds to h. Paths that do not exist are reported
// and skipped; directories encountered without Options.Recursive are
// traced and skipped.
func run(paths []string, opts Options, trace *timeline.Tracer, h handler) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			trace.Trace("File '", p, "' doesn't exist; skipping it")
			fmt.Printf("'%s' not found!\n", p)
			continue
		}
		if info.IsDir() {
			if !opts.Recursive {
				trace.Trace("Found a directory while mode is non-recursive; skipping it")
				continue
			}
			filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				h.handleFile(path)
				return nil
			})
			continue
		}
		h.handleFile(p)
	}
}

// timeCall runs fn, returning the elapsed time only when timed is set; the
// cost of time.Now is not worth paying on every file when -t was not asked
// for.
func timeCall(timed bool, fn func() (bool, error)) (bool, error, time.Duration) {
	if !timed {
		ok, err := fn()
		return ok, err, 0
	}
	start := time.Now()
	ok, err := fn()
	return ok, err, time.Since(start)
}

func timeSuffix(timed bool, elapsed time.Duration) string {
	if !timed {
		return ""
	}
	return " (" + humanizeMillis(elapsed.Milliseconds()) + ")"
}

// CompressDriver walks a file list and compresses each regular file found,
// applying the keep/force/time/verbose policy from its Options.
type CompressDriver struct {
	opts  Options
	trace *timeline.Tracer
}

// NewCompressDriver creates a CompressDriver with the given options.
func NewCompressDriver(opts Options) *CompressDriver {
	return &CompressDriver{opts: opts, trace: timeline.New("COMPRESSOR_DRIVER")}
}

// Run compresses every regular file among paths; see run for how
// directories and missing paths are handled.
func (c *CompressDriver) Run(paths []string) {
	run(paths, c.opts, c.trace, c)
}

func (c *CompressDriver) handleFile(path string) {
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "'%s': %v\n", path, err)
		return
	}
	uncompressedSize := info.Size()
	perm := info.Mode().Perm()

	c.trace.Trace("Going to compress file '", path, "' of size = ", uncompressedSize, "B")

	outPath := path + lzw3.CompressedFileExtension

	ok, err, elapsed := timeCall(c.opts.Time, func() (bool, error) {
		return lzw3.Compress(path, outPath)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "'%s': %v\n", path, err)
		return
	}
	if !ok {
		return
	}
	timeString := timeSuffix(c.opts.Time, elapsed)

	outInfo, err := os.Stat(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "'%s': %v\n", outPath, err)
		return
	}
	compressedSize := outInfo.Size()
	c.trace.Trace("Compression finished", timeString, " compressed file size would be = ", compressedSize, "B")

	if c.opts.Force || compressedSize < uncompressedSize {
		if compressedSize < uncompressedSize {
			c.trace.Trace("--> OK! Compressed file size is lower than the original size")
		} else {
			c.trace.Trace("Keeping the file even if the size is higher than the original size due force flag (-f)")
		}

		if c.opts.Verbose {
			saved := (1 - float64(compressedSize)/float64(uncompressedSize)) * 100
			fmt.Printf("'%s' compressed from %s to %s - space saved = %.1f%%%s\n",
				path, humanizeBytes(uncompressedSize), humanizeBytes(compressedSize), saved, timeString)
		}

		if !c.opts.Keep {
			c.trace.Trace("--> (Deleting uncompressed file)")
			os.Remove(path)
		} else {
			c.trace.Trace("--> (Keeping uncompressed file)")
		}

		c.trace.Trace("Writing previous permissions to new file = ", perm)
		os.Chmod(outPath, perm)
		return
	}

	c.trace.Trace("--> OPS! Compressed file size is not lower than the original size, removing it and keeping the old one")
	if c.opts.Verbose {
		fmt.Printf("'%s' left uncompressed%s\n", path, timeString)
	}
	os.Remove(outPath)
}

// DecompressDriver walks a file list and decompresses each regular,
// canonically-named file found, applying the keep/force/time/verbose
// policy from its Options.
type DecompressDriver struct {
	opts  Options
	trace *timeline.Tracer
}

// NewDecompressDriver creates a DecompressDriver with the given options.
func NewDecompressDriver(opts Options) *DecompressDriver {
	return &DecompressDriver{opts: opts, trace: timeline.New("DECOMPRESSOR_DRIVER")}
}

// Run decompresses every regular file among paths; see run for how
// directories and missing paths are handled.
func (d *DecompressDriver) Run(paths []string) {
	run(paths, d.opts, d.trace, d)
}

func (d *DecompressDriver) handleFile(path string) {
	var outPath string
	inPlace := false

	switch {
	case strings.HasSuffix(path, lzw3.CompressedFileExtension):
		outPath = path[:len(path)-len(lzw3.CompressedFileExtension)]
	case d.opts.Force:
		d.trace.Trace("File '", path, "' doesn't end with ", lzw3.CompressedFileExtension,
			"; handling it anyhow due force flag (-f)")
		outPath = path
		inPlace = true
	default:
		d.trace.Trace("File '", path, "' doesn't end with ", lzw3.CompressedFileExtension, "; skipping it")
		if d.opts.Verbose {
			fmt.Printf("'%s' skipped\n", path)
		}
		return
	}

	// The permission mask is read from the compressed source file now,
	// before it is possibly deleted below; reading it afterward would mean
	// reading it from a file that may no longer exist.
	srcInfo, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "'%s': %v\n", path, err)
		return
	}
	perm := srcInfo.Mode().Perm()

	// In place, the output goes to a sibling file first: creating path for
	// writing would truncate the input before it is read.
	target := outPath
	if inPlace {
		target = path + ".lzw3tmp"
	}
	ok, err, elapsed := timeCall(d.opts.Time, func() (bool, error) {
		return lzw3.Decompress(path, target)
	})
	if err == nil && ok && inPlace {
		if err = os.Rename(target, path); err == nil {
			os.Chmod(path, perm)
		}
	}
	if err != nil {
		if inPlace {
			os.Remove(target)
		}
		fmt.Fprintf(os.Stderr, "'%s': %v\n", path, err)
		return
	}
	if !ok {
		return
	}
	timeString := timeSuffix(d.opts.Time, elapsed)

	d.trace.Trace("Decompression finished", timeString)
	if d.opts.Verbose {
		fmt.Printf("'%s' decompressed%s\n", path, timeString)
	}

	if inPlace {
		return
	}

	if !d.opts.Keep {
		d.trace.Trace("--> (Deleting compressed file)")
		os.Remove(path)
	} else {
		d.trace.Trace("--> (Keeping compressed file)")
	}

	d.trace.Trace("Writing previous permissions to new file = ", perm)
	os.Chmod(outPath, perm)
}
