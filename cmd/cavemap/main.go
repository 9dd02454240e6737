// Command cavemap writes a PDF chart of the cave's rooms and
// passages.
package main

import (
	"flag"
	"os"

	log "gopkg.in/inconshreveable/log15.v2"

	"advent/internal/data"
	"advent/internal/mapgen"
)

var (
	dataPath = flag.String("data", "", "path to a cave data file, builtin tables when empty")
	outPath  = flag.String("o", "cave.pdf", "output PDF path")
	title    = flag.String("title", "Surveyed March 1977", "subtitle printed on the chart")
)

func main() {
	flag.Parse()
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StderrHandler))

	var (
		tab *data.Tables
		err error
	)
	if *dataPath != "" {
		tab, err = data.LoadFile(*dataPath)
	} else {
		tab, err = data.Builtin()
	}
	if err != nil {
		log.Crit("cannot load cave data", "err", err)
		os.Exit(2)
	}

	pdf, err := mapgen.Generate(tab, *title)
	if err != nil {
		log.Crit("cannot render chart", "err", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*outPath, pdf, 0o644); err != nil {
		log.Crit("cannot write chart", "path", *outPath, "err", err)
		os.Exit(2)
	}
	log.Info("chart written", "path", *outPath, "bytes", len(pdf))
}
