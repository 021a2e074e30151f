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
	keep := flag.Bool("k", false, "keep the original file after compressing it")
	force := flag.Bool("f", false, "keep the compressed file even if it isn't smaller than the original")
	timed := flag.Bool("t", false, "print the time taken by each compression")
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

	driver.NewCompressDriver(driver.Options{
		Recursive: *recursive,
		Keep:      *keep,
		Force:     *force,
		Time:      *timed,
		Verbose:   *verbose,
	}).Run(files)
}
