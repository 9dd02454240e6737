// Command advent plays the 1977 Colossal Cave interpreter on the
// terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	log "gopkg.in/inconshreveable/log15.v2"

	"advent/internal/data"
	"advent/internal/game"
)

var (
	dataPath    = flag.String("data", "", "path to a cave data file, builtin tables when empty")
	seed        = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
	debug       = flag.Bool("debug", false, "log every room arrival")
	restorePath = flag.String("restore", "", "resume from a snapshot file")
	savePath    = flag.String("save", "", "write a snapshot here when play ends")
)

// console reads commands from stdin, prompting only when a person is
// on the other end.
type console struct {
	in     *bufio.Reader
	prompt bool
}

func (c *console) ReadLine() (string, error) {
	if c.prompt {
		fmt.Print("> ")
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *console) Print(msg string) { fmt.Print(msg) }

func main() {
	flag.Parse()
	lvl := log.LvlInfo
	if *debug {
		lvl = log.LvlDebug
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StderrHandler))

	tab, err := loadTables()
	if err != nil {
		log.Crit("cannot load cave data", "err", err)
		os.Exit(2)
	}
	log.Debug("world loaded",
		"lines", len(tab.Lines)-1, "travel", len(tab.Travel)-1, "words", len(tab.Vocab))

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	opts := game.Options{
		Console: &console{
			in:     bufio.NewReader(os.Stdin),
			prompt: term.IsTerminal(int(os.Stdin.Fd())),
		},
		Rand: game.NewDice(s),
	}
	if *debug {
		opts.OnLocation = func(room int) { log.Debug("arrived", "room", room) }
	}

	g := game.New(tab, opts)
	if *restorePath != "" {
		if err := g.RestoreFile(*restorePath); err != nil {
			log.Crit("cannot restore snapshot", "path", *restorePath, "err", err)
			os.Exit(2)
		}
		log.Info("snapshot restored", "path", *restorePath)
	}

	err = g.Run()
	if *savePath != "" {
		if serr := g.SaveFile(*savePath); serr != nil {
			log.Error("cannot write snapshot", "path", *savePath, "err", serr)
		} else {
			log.Info("snapshot written", "path", *savePath)
		}
	}
	switch {
	case errors.Is(err, io.EOF):
	case errors.Is(err, game.ErrTerminated):
		os.Exit(1)
	default:
		log.Error("game stopped", "err", err)
		os.Exit(2)
	}
}

func loadTables() (*data.Tables, error) {
	if *dataPath != "" {
		return data.LoadFile(*dataPath)
	}
	return data.Builtin()
}
