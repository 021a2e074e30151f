package driver_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Docheinstein/lzw3"
	"github.com/Docheinstein/lzw3/internal/driver"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TestCompressDriverDeletesSourceByDefault exercises the default, non-keep
// path: a compressible file gets a .Z sibling and the source disappears.
func TestCompressDriverDeletesSourceByDefault(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "data")
	writeFile(t, in, bytes.Repeat([]byte("aaaaaaaaaa"), 200))

	driver.NewCompressDriver(driver.Options{}).Run([]string{in})

	if exists(in) {
		t.Error("expected source file to be removed")
	}
	if !exists(in + lzw3.CompressedFileExtension) {
		t.Error("expected compressed sibling to exist")
	}
}

// TestCompressDriverKeepsSourceWithKeepOption verifies -k.
func TestCompressDriverKeepsSourceWithKeepOption(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "data")
	writeFile(t, in, bytes.Repeat([]byte("bbbbbbbbbb"), 200))

	driver.NewCompressDriver(driver.Options{Keep: true}).Run([]string{in})

	if !exists(in) {
		t.Error("expected source file to be kept")
	}
	if !exists(in + lzw3.CompressedFileExtension) {
		t.Error("expected compressed sibling to exist")
	}
}

// TestCompressDriverLeavesIncompressibleFileUncompressed covers the branch
// where the compressed form is not smaller than the source: the .Z file is
// discarded and the original is kept regardless of -k.
func TestCompressDriverLeavesIncompressibleFileUncompressed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny")
	writeFile(t, in, []byte{0x41})

	driver.NewCompressDriver(driver.Options{}).Run([]string{in})

	if !exists(in) {
		t.Error("expected source file to be kept when compression doesn't help")
	}
	if exists(in + lzw3.CompressedFileExtension) {
		t.Error("expected the unhelpful compressed file to be removed")
	}
}

// TestCompressDriverForceKeepsEvenWhenLarger verifies -f keeps the
// compressed file even when it grew the input.
func TestCompressDriverForceKeepsEvenWhenLarger(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "tiny")
	writeFile(t, in, []byte{0x41})

	driver.NewCompressDriver(driver.Options{Force: true}).Run([]string{in})

	if exists(in) {
		t.Error("expected source file to be removed under force")
	}
	if !exists(in + lzw3.CompressedFileExtension) {
		t.Error("expected the compressed file to be kept under force")
	}
}

// TestDecompressDriverSkipsFileWithoutExtension verifies the default
// behavior of refusing to touch a file lacking the canonical extension.
func TestDecompressDriverSkipsFileWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain")
	writeFile(t, in, []byte("not compressed"))

	driver.NewDecompressDriver(driver.Options{}).Run([]string{in})

	if !exists(in) {
		t.Error("expected untouched file to remain")
	}
}

// TestDecompressDriverForceHandlesFileWithoutExtensionInPlace verifies -f
// lets the decompressor treat an extensionless file as compressed, writing
// the result back over the same path.
func TestDecompressDriverForceHandlesFileWithoutExtensionInPlace(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain")
	content := []byte("ABABABABABABAB")
	tmpCompressed := filepath.Join(dir, "plain-source.Z")
	srcPath := filepath.Join(dir, "plain-source")
	writeFile(t, srcPath, content)
	if ok, err := lzw3.Compress(srcPath, tmpCompressed); err != nil || !ok {
		t.Fatalf("setup compress: ok=%v err=%v", ok, err)
	}
	compressedBytes, err := os.ReadFile(tmpCompressed)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, in, compressedBytes)

	driver.NewDecompressDriver(driver.Options{Force: true}).Run([]string{in})

	got, err := os.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("found=%q expected=%q", got, content)
	}
}

// TestDecompressDriverRoundTrip compresses then decompresses through the
// drivers, checking the default keep=false behavior removes the .Z file
// it consumed.
func TestDecompressDriverRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "message")
	content := []byte("the quick brown fox jumps over the lazy dog, repeatedly, the quick brown fox")
	writeFile(t, in, content)

	driver.NewCompressDriver(driver.Options{Keep: true}).Run([]string{in})
	compressed := in + lzw3.CompressedFileExtension
	if !exists(compressed) {
		t.Fatal("setup: expected compressed file to exist")
	}
	os.Remove(in)

	driver.NewDecompressDriver(driver.Options{}).Run([]string{compressed})

	if exists(compressed) {
		t.Error("expected compressed file to be removed after decompression")
	}
	got, err := os.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("found=%q expected=%q", got, content)
	}
}

// TestRunSkipsDirectoryWhenNotRecursive verifies a directory argument is
// left alone unless -r is given.
func TestRunSkipsDirectoryWhenNotRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	inner := filepath.Join(sub, "data")
	writeFile(t, inner, []byte("hello"))

	driver.NewCompressDriver(driver.Options{}).Run([]string{sub})

	if exists(inner + lzw3.CompressedFileExtension) {
		t.Error("expected a directory argument to be skipped without -r")
	}
}

// TestRunRecursiveDirectoryWalk verifies -r descends into subdirectories.
func TestRunRecursiveDirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	inner := filepath.Join(sub, "data")
	writeFile(t, inner, bytes.Repeat([]byte("recursive-walk-content "), 100))

	driver.NewCompressDriver(driver.Options{Recursive: true, Keep: true}).Run([]string{dir})

	if !exists(inner + lzw3.CompressedFileExtension) {
		t.Error("expected the file nested under the directory to be compressed")
	}
}

// TestRunReportsMissingPath verifies a nonexistent argument doesn't panic
// and simply produces no side effects.
func TestRunReportsMissingPath(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist")
	driver.NewCompressDriver(driver.Options{}).Run([]string{missing})
	if exists(missing) {
		t.Error("unexpected file materialized for a missing path")
	}
}
