package game

import (
	"fmt"
	"strings"

	"advent/internal/word"
)

// speak prints event message msg. Unknown or empty messages print
// nothing, matching the data file's deliberate gaps.
func (g *Game) speak(msg int) {
	if msg < 1 || msg >= len(g.tab.Msg) {
		return
	}
	g.printBlock(g.tab.Msg[msg])
}

// printBlock prints the chained text block at pool index kk followed
// by a blank line.
func (g *Game) printBlock(kk int) {
	lines := g.tab.Block(kk)
	if len(lines) == 0 {
		return
	}
	for _, ln := range lines {
		g.con.Print(ln + "\n")
	}
	g.con.Print("\n")
}

func (g *Game) printf(format string, args ...any) {
	g.con.Print(fmt.Sprintf(format, args...))
}

// echo renders the player's own words back for the reprompt messages.
// While the first word is in play its input tail rides along, so overly
// long words come back as typed: "SUPERCALIF WHAT?".
func echo(first, tail word.Code) string {
	if tail.IsBlank() {
		return first.String()
	}
	return first.String() + tail.String()
}

// yes asks question and reads an answer. Anything but NO counts as
// yes. ifYes and ifNo are follow-up messages, zero for none.
func (g *Game) yes(question, ifYes, ifNo int) (bool, error) {
	g.speak(question)
	line, err := g.con.ReadLine()
	if err != nil {
		return false, err
	}
	first, _, _, _ := word.Split(line)
	if first == word.Pack("NO") || first == word.Pack("N") {
		if ifNo != 0 {
			g.speak(ifNo)
		}
		return false, nil
	}
	if ifYes != 0 {
		g.speak(ifYes)
	}
	return true, nil
}

// pause stops play with a banner and waits for G to resume or X to
// terminate.
func (g *Game) pause(msg string) error {
	g.printf("PAUSE: %s\n", msg)
	for {
		g.con.Print("TO RESUME EXECUTION, TYPE: G\nTO TERMINATE THE PROGRAM, TYPE: X\n")
		line, err := g.con.ReadLine()
		if err != nil {
			return err
		}
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "G":
			g.con.Print("EXECUTION RESUMED\n\n")
			return nil
		case "X":
			return ErrTerminated
		}
	}
}
