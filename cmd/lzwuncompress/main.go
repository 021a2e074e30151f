package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Docheinstein/lzw3/internal/driver"
	"github.com/Docheinstein/lzw3/internal/timeline"
)

func main() {
	recursive := flag.Bool("r", false, "recurse into directories")
	keep := flag.Bool("k", false, "keep the compressed file after decompressing it")
	force := flag.Bool("f", false, "decompress files even if they lack the .Z extension")
	timed := flag.Bool("t", false, "print the time taken by each decompression")
	verbose := flag.Bool("v", false, "print a summary line for each file handled")
	debug := flag.Bool("d", false, "enable debug trace output")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		flag.PrintDefaults()
		os.Exit(0)
	}

	timeline.Enable(*debug)
	timeline.New("MAIN").Trace(fmt.Sprintf(
		"recursive=%v keep=%v force=%v time=%v verbose=%v debug=%v files=%v",
		*recursive, *keep, *force, *timed, *verbose, *debug, files))

	driver.NewDecompressDriver(driver.Options{
		Recursive: *recursive,
		Keep:      *keep,
		Force:     *force,
		Time:      *timed,
		Verbose:   *verbose,
	}).Run(files)
}
