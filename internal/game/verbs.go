package game

import (
	"advent/internal/data"
	"advent/internal/word"
)

var (
	wordEnter  = word.Pack("ENTER")
	wordStream = word.Pack("STREA")
	wordWater  = word.Pack("WATER")
	wordWest   = word.Pack("WEST")
)

// command reads one line and dispatches it. It may leave a verb or
// object pending and come straight back for more input.
func (g *Game) command() (step, error) {
	line, err := g.con.ReadLine()
	if err != nil {
		return 0, err
	}
	first, second, two, tail := word.Split(line)
	g.motion = 70 // wading into the stream, unless a real keyword turns up

	if first == wordEnter {
		if two && (second == wordStream || second == wordWater) {
			g.speak(70)
			return stepInput, nil
		}
		if two {
			first, two, tail = second, false, word.Blank
		}
	}
	if first == wordWest {
		g.west++
		if g.west == 10 {
			g.speak(17)
		}
	}

	for {
		class, id, ok := g.tab.Lookup(first)
		if !ok {
			return g.unknownWord(first, tail)
		}
		g.motion = id
		switch class {
		case data.Motion:
			return g.move(id)
		case data.Object:
			g.obj = id
			if two {
				first, two, tail = second, false, word.Blank
				continue
			}
			return g.noun(first, tail)
		case data.Action:
			g.verb = id
			g.reply = verbFail[id]
			if two {
				first, two, tail = second, false, word.Blank
				continue
			}
			if g.obj == 0 {
				return g.intransitive(first, tail)
			}
			return g.doVerb(first, tail)
		case data.Advice:
			g.speak(id)
			return stepInput, nil
		}
	}
}

// noun handles a resolved object word. Asking about the grate from
// the surface or the upper cave turns into travel toward it.
func (g *Game) noun(first, tail word.Code) (step, error) {
	k := g.obj
	if g.loc != g.place[k] && g.place[k] != -1 {
		if k == objGrate {
			if g.loc == 1 || g.loc == 4 || g.loc == 7 {
				g.motion = 49 // the depression
				return g.move(g.motion)
			}
			if g.loc > 9 && g.loc < 15 {
				g.motion = 50 // the entrance
				return g.move(g.motion)
			}
		}
		g.printf(" I SEE NO %s HERE.\n", echo(first, tail))
		return stepInput, nil
	}
	if g.verb != 0 {
		return g.doVerb(first, tail)
	}
	g.printf(" WHAT DO YOU WANT TO DO WITH THE %s?\n", echo(first, tail))
	return stepRead, nil
}

// intransitive dispatches a verb with no object, inferring one where
// the original did.
func (g *Game) intransitive(first, tail word.Code) (step, error) {
	switch g.verb {
	case verbTake:
		// Take with exactly one portable thing in sight needs no noun.
		if g.objAt[g.loc] != 0 && g.chain[g.objAt[g.loc]] == 0 && !g.dwarfHere() {
			g.obj = g.objAt[g.loc]
			return g.doVerb(first, tail)
		}
		return g.whatPrompt(first, tail)
	case verbOpen, verbLock:
		if g.loc == 8 || g.loc == 9 {
			g.obj = objGrate
			return g.doVerb(first, tail)
		}
		g.speak(28)
		return stepInput, nil
	case verbHold:
		g.speak(54)
		return stepInput, nil
	case verbOn:
		return g.lampOn()
	case verbOff:
		return g.lampOff()
	case verbGo:
		g.speak(g.reply)
		return stepInput, nil
	case verbHit:
		return g.attack(first, tail)
	default:
		return g.whatPrompt(first, tail)
	}
}

// doVerb dispatches a verb applied to g.obj.
func (g *Game) doVerb(first, tail word.Code) (step, error) {
	switch g.verb {
	case verbTake:
		return g.take()
	case verbDrop:
		return g.drop()
	case verbDummy:
		return g.unknownWord(first, tail)
	case verbOpen, verbLock:
		return g.lockOrUnlock()
	case verbHold:
		g.speak(54)
		return stepInput, nil
	case verbOn:
		return g.lampOn()
	case verbOff:
		return g.lampOff()
	case verbStrike:
		if g.obj != objFissure {
			g.speak(g.reply)
			return stepInput, nil
		}
		g.prop[objFissure] = 1
		return stepObjects, nil
	case verbCalm, verbGo:
		g.speak(g.reply)
		return stepInput, nil
	case verbHit:
		return g.attack(first, tail)
	case verbPour:
		msg := g.reply
		if g.obj != objWater {
			msg = 78
		}
		g.prop[objWater] = 1
		g.speak(msg)
		return stepInput, nil
	case verbEat:
		return g.consume(objFood, 72)
	case verbDrink:
		return g.consume(objWater, 74)
	case verbRub:
		msg := g.reply
		if g.obj != objLamp {
			msg = 76
		}
		g.speak(msg)
		return stepInput, nil
	}
	return 0, g.fault("verb %d has no handler", g.verb)
}

func (g *Game) whatPrompt(first, tail word.Code) (step, error) {
	g.printf("  %s WHAT?\n", echo(first, tail))
	return stepRead, nil
}

func (g *Game) take() (step, error) {
	if g.obj == objKnife {
		g.speak(54)
		return stepInput, nil
	}
	if g.place[g.obj] != g.loc {
		g.speak(g.reply)
		return stepInput, nil
	}
	if g.fixed[g.obj] != 0 {
		g.speak(25)
		return stepInput, nil
	}
	if g.obj == objBird {
		if g.place[objRod] == -1 {
			// The rod spooks it.
			g.speak(26)
			return stepInput, nil
		}
		if g.place[objCage] != -1 && g.place[objCage] != g.loc {
			g.speak(27)
			return stepInput, nil
		}
	}
	g.place[g.obj] = -1
	g.unlink(g.obj)
	g.speak(54)
	return stepInput, nil
}

func (g *Game) drop() (step, error) {
	if g.obj == objKnife {
		g.speak(54)
		return stepInput, nil
	}
	if g.place[g.obj] != -1 {
		g.speak(g.reply)
		return stepInput, nil
	}
	if g.obj == objBird && g.loc == 19 && g.prop[objSnake] != 1 {
		g.speak(30)
		g.prop[objSnake] = 1
	} else {
		g.speak(54)
	}
	g.dropAt(g.obj, g.loc)
	return stepInput, nil
}

func (g *Game) lockOrUnlock() (step, error) {
	if g.place[objKeys] != -1 && g.place[objKeys] != g.loc {
		g.speak(g.reply)
		return stepInput, nil
	}
	switch {
	case g.obj == objCage:
		g.speak(32)
	case g.obj == objKeys:
		g.speak(55)
	case g.obj != objGrate:
		g.speak(33)
	case g.verb == verbOpen:
		if g.prop[objGrate] == 0 {
			g.speak(37)
			g.setGrate(1)
		} else {
			g.speak(36)
		}
	default:
		if g.prop[objGrate] != 0 {
			g.speak(35)
			g.setGrate(0)
		} else {
			g.speak(34)
		}
	}
	return stepInput, nil
}

// setGrate keeps both grate objects in the same property state.
func (g *Game) setGrate(v int) {
	g.prop[objGrate] = v
	g.prop[objGrate2] = v
}

func (g *Game) lampOn() (step, error) {
	if g.place[objLamp] != g.loc && g.place[objLamp] != -1 {
		g.speak(g.reply)
		return stepInput, nil
	}
	g.prop[objLamp] = 1
	g.dark = false
	g.speak(39)
	return stepInput, nil
}

func (g *Game) lampOff() (step, error) {
	if g.place[objLamp] != g.loc && g.place[objLamp] != -1 {
		g.speak(g.reply)
		return stepInput, nil
	}
	g.prop[objLamp] = 0
	g.speak(40)
	return stepInput, nil
}

func (g *Game) consume(want, done int) (step, error) {
	here := g.place[want] == g.loc || g.place[want] == -1
	if !here || g.prop[want] != 0 || g.obj != want {
		g.speak(g.reply)
		return stepInput, nil
	}
	g.prop[want] = 1
	g.speak(done)
	return stepInput, nil
}

// attack fights whatever is at hand: a dwarf if one is here, else the
// named object. Fighting a dwarf ends with a null move, so the room
// is described again, dwarves and all.
func (g *Game) attack(first, tail word.Code) (step, error) {
	for i := 1; i <= 3; i++ {
		if g.dwarfSeen[i] == 0 {
			continue
		}
		if g.dice.Roll() > 0.4 {
			g.speak(48)
		} else {
			g.dwarfSeen[i] = 0
			g.dwarfOld[i] = 0
			g.dwarfLoc[i] = 0
			g.speak(47)
		}
		g.motion = motNull
		return g.move(g.motion)
	}
	switch {
	case g.obj == 0:
		return g.whatPrompt(first, tail)
	case g.obj == objSnake:
		g.speak(g.reply)
	case g.obj == objBird:
		g.speak(45)
		g.place[objBird] = 300
		g.unlink(objBird)
		g.speak(54)
	default:
		g.speak(44)
	}
	return stepInput, nil
}

// unknownWord is the catchall for words outside the vocabulary. Three
// strikes in one turn and the interpreter guesses at what the player
// is stuck on.
func (g *Game) unknownWord(first, tail word.Code) (step, error) {
	msg := 60
	if g.dice.Roll() > 0.8 {
		msg = 61
	}
	if g.dice.Roll() > 0.8 {
		msg = 13
	}
	g.speak(msg)
	g.misses++
	if g.misses != 3 {
		return stepRead, nil
	}
	var yea bool
	var err error
	switch {
	case g.loc == 13 && g.place[objBird] == 13 && g.place[objRod] == -1:
		yea, err = g.yes(18, 19, 54)
	case g.loc == 19 && g.prop[objSnake] == 0 && g.place[objBird] != -1:
		yea, err = g.yes(20, 21, 54)
	case g.loc == 8 && g.prop[objGrate] == 0:
		yea, err = g.yes(62, 63, 54)
	default:
		if (g.place[objRod] == g.loc || g.place[objRod] == -1) && g.obj == objRod {
			g.speak(22)
		}
		return stepRead, nil
	}
	if err != nil {
		return 0, err
	}
	if !yea {
		return stepInput, nil
	}
	return stepRead, nil
}

func (g *Game) dwarfHere() bool {
	for i := 1; i <= 3; i++ {
		if g.dwarfSeen[i] != 0 {
			return true
		}
	}
	return false
}
