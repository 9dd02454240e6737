package game

// Motion keywords with hardwired behavior.
const (
	motBack = 8
	motNull = 21
	motLook = 57
	motCave = 67
)

// move handles a motion keyword. Walking in the dark risks the pit;
// play resumes at the same room if the player survives the pause.
func (g *Game) move(k int) (step, error) {
	if g.dark {
		if g.dice.Roll() <= 0.25 {
			g.speak(23)
			if err := g.pause("GAME IS OVER"); err != nil {
				return 0, err
			}
			return stepInput, nil
		}
	}
	return g.travel()
}

// travel resolves g.motion against the current room's edge list and
// sets g.dest. Forced-motion rooms come through here directly from
// arrive, reusing the last keyword.
func (g *Game) travel() (step, error) {
	kk := g.tab.Key[g.loc]
	if kk == 0 {
		g.speak(13)
		g.dest = g.loc
		return stepArrive, nil
	}
	switch g.motion {
	case motLook:
		return g.look()
	case motCave:
		return g.cave()
	case motBack:
		g.dest, g.old = g.old, g.loc
		return g.landAt(g.dest)
	}
	g.old = g.loc
	for {
		if kk >= len(g.tab.Travel) {
			return 0, g.fault("travel table overrun at room %d", g.loc)
		}
		entry := g.tab.Travel[kk]
		ll := entry
		if ll < 0 {
			ll = -ll
		}
		if gate := ll % 1024; gate == 1 || gate == g.motion {
			return g.landAt(ll / 1024)
		}
		if entry < 0 {
			return g.cannotGo()
		}
		kk++
	}
}

// landAt accepts a travel destination, routing table sentinels to
// their handlers.
func (g *Game) landAt(dest int) (step, error) {
	g.dest = dest
	if dest < 300 {
		return stepArrive, nil
	}
	return g.special(dest)
}

// cannotGo picks the refusal message for the failed keyword. Later
// rules override earlier ones.
func (g *Game) cannotGo() (step, error) {
	k := g.motion
	msg := 12
	if (k >= 43 && k <= 46) || k == 29 || k == 30 {
		msg = 9 // compass points and up/down
	}
	if k == 7 || k == 8 || k == 36 || k == 37 || k == 68 {
		msg = 10 // relative directions need a facing
	}
	if k == 11 || k == 19 {
		msg = 11 // in and out
	}
	if g.verb == verbTake {
		msg = 59
	}
	if k == 48 {
		msg = 42 // xyzzy where it has no power
	}
	if k == 17 {
		msg = 80 // crawl: which way?
	}
	g.speak(msg)
	g.dest = g.loc
	return stepArrive, nil
}

// look redisplays the long description. After two looks in the same
// room the interpreter says it cannot add detail.
func (g *Game) look() (step, error) {
	if g.looks >= 2 {
		g.speak(15)
	}
	g.looks++
	g.dest = g.loc
	g.visits[g.loc] = 0
	return stepArrive, nil
}

func (g *Game) cave() (step, error) {
	if g.loc < 8 {
		g.speak(57)
	} else {
		g.speak(58)
	}
	g.dest = g.loc
	return stepArrive, nil
}

// special handles the sentinel destinations at 300 and up: gated and
// probabilistic branches the flat travel table cannot express.
func (g *Game) special(l int) (step, error) {
	switch l {
	case 300: // forest forks
		g.dest = 6
		if g.dice.Roll() > 0.5 {
			g.dest = 5
		}
	case 301: // down from the depression, through the grate when open
		g.dest = 23
		if g.prop[objGrate] != 0 {
			g.dest = 9
		}
	case 302: // out from below the grate
		g.dest = 9
		if g.prop[objGrate] != 0 {
			g.dest = 8
		}
	case 303: // down the pit: fatal with the gold along
		g.dest = 20
		if g.place[objNugget] != -1 {
			g.dest = 15
		}
	case 304: // up the dome: blocked with the gold along
		g.dest = 22
		if g.place[objNugget] != -1 {
			g.dest = 14
		}
	case 305: // onward over the unbridged fissure
		if err := g.pause("GAME IS OVER"); err != nil {
			return 0, err
		}
		return stepRestart, nil
	case 306: // jump the fissure, or fall short of it
		g.dest = 27
		if g.prop[objFissure] == 0 {
			g.dest = 31
		}
	case 307: // north past the snake
		g.dest = 28
		if g.prop[objSnake] == 0 {
			g.dest = 32
		}
	case 308: // south past the snake
		g.dest = 29
		if g.prop[objSnake] == 0 {
			g.dest = 32
		}
	case 309: // west past the snake
		g.dest = 30
		if g.prop[objSnake] == 0 {
			g.dest = 32
		}
	case 310: // the depression, inside looking out
		g.dest = 8
		if g.prop[objGrate] == 0 {
			g.dest = 9
		}
	case 311: // south out of Bedquilt
		if g.dice.Roll() > 0.2 {
			return g.wander()
		}
		g.dest = 68
	case 312: // up out of Bedquilt
		if g.dice.Roll() > 0.2 {
			return g.wander()
		}
		g.dest = 39
		if g.dice.Roll() > 0.5 {
			g.dest = 70
		}
	case 313: // north out of the Swiss cheese room
		g.dest = 66
		if g.dice.Roll() > 0.4 {
			g.speak(56)
			break
		}
		g.dest = 71
		if g.dice.Roll() > 0.25 {
			g.dest = 72
		}
	case 314: // south out of the Swiss cheese room
		g.dest = 66
		if g.dice.Roll() > 0.2 {
			g.speak(56)
			break
		}
		g.dest = 77
	default:
		return 0, g.fault("unmapped travel target %d from room %d", l, g.loc)
	}
	return stepArrive, nil
}

// wander is the Bedquilt crawl that goes nowhere.
func (g *Game) wander() (step, error) {
	g.dest = 65
	g.speak(56)
	return stepArrive, nil
}
