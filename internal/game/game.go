// Package game implements the cave interpreter: the turn loop, travel
// resolution, the verb handlers, the wandering dwarves and the text
// renderer, all driven by the tables in internal/data.
package game

import (
	"errors"
	"fmt"

	"advent/internal/data"
)

// ErrTerminated is returned by Run when the player answers X at a
// pause prompt.
var ErrTerminated = errors.New("execution terminated")

// Object numbers, as used by the data file and the travel handlers.
const (
	objKeys    = 1
	objLamp    = 2
	objGrate   = 3 // paired with objGrate2, properties move in lockstep
	objCage    = 4
	objRod     = 5
	objSteps   = 6 // stone steps down the pit
	objBird    = 7
	objGrate2  = 8
	objDome    = 9 // stone steps up the dome
	objNugget  = 10
	objSnake   = 11
	objFissure = 12
	objKnife   = 18
	objFood    = 19
	objWater   = 20
	objAxe     = 21
)

// Verb numbers from the 2000 range of the vocabulary.
const (
	verbTake = iota + 1
	verbDrop
	verbDummy
	verbOpen
	verbHold
	verbLock
	verbOn
	verbOff
	verbStrike
	verbCalm
	verbGo
	verbHit
	verbPour
	verbEat
	verbDrink
	verbRub
)

// verbFail holds each verb's default refusal message.
var verbFail = [17]int{0, 24, 29, 0, 31, 0, 31, 38, 38, 42, 42, 43, 46, 77, 71, 73, 75}

// startPlace is where each object begins. startFixed marks objects
// that cannot be carried.
var (
	startPlace = [101]int{1: 3, 2: 3, 3: 8, 4: 10, 5: 11, 6: 14, 7: 13, 8: 9,
		9: 15, 10: 18, 11: 19, 12: 17, 13: 27, 14: 28, 15: 29, 16: 30, 19: 3, 20: 3}
	startFixed = [101]int{3: 1, 6: 1, 8: 1, 9: 1, 11: 1, 12: 1}
)

// dwarfPath is the patrol route, indexed by twice the dwarf number
// plus the clock.
var dwarfPath = [16]int{0, 36, 28, 19, 30, 62, 60, 41, 27, 17, 15, 19, 28, 36, 300, 300}

// step names the resume points of the turn loop.
type step int

const (
	stepArrive  step = iota // enter the destination room
	stepTurn                // bookkeeping for a fresh turn: visits, darkness
	stepObjects             // redisplay object descriptions only
	stepInput               // forget the pending verb and object, then read
	stepRead                // read another command, keeping the pending words
	stepRestart             // wipe the world and begin again
)

// Options configures a Game. Console and Rand are required; OnLocation,
// when set, observes every room arrival and is used by the driver's
// debug trace.
type Options struct {
	Console    Console
	Rand       Rand
	OnLocation func(room int)
}

// Game holds the full mutable state of one play-through.
type Game struct {
	tab        *data.Tables
	con        Console
	dice       Rand
	onLocation func(int)

	dest int // room being entered
	loc  int // room the player occupies
	old  int // previous room, for BACK

	place  [101]int // object -> room, -1 carried, 300 destroyed
	fixed  [101]int
	chain  [101]int // object -> next object in the same room
	prop   [101]int
	objAt  [301]int // room -> first object
	visits [301]int // room -> description abbreviation counter
	cond   [301]int // room flags: 1 lit, 2 forced motion

	dwarfClock int
	dwarfLoc   [4]int
	dwarfOld   [4]int
	dwarfSeen  [4]int

	motion int // last resolved keyword, reused by forced-motion rooms
	verb   int
	obj    int
	reply  int // pending verb's default refusal message
	dark   bool
	misses int // unrecognized words since the turn began
	west   int
	looks  int // LOOKs in a row at the current room

	restored bool
}

// New builds a game over the given tables. The world starts in its
// initial state; use Restore to resume a saved one.
func New(tab *data.Tables, opts Options) *Game {
	g := &Game{
		tab:        tab,
		con:        opts.Console,
		dice:       opts.Rand,
		onLocation: opts.OnLocation,
	}
	g.reset()
	return g
}

// reset puts every table back in its starting state.
func (g *Game) reset() {
	g.place = startPlace
	g.fixed = startFixed
	g.chain = [101]int{}
	g.prop = [101]int{}
	g.objAt = [301]int{}
	g.visits = [301]int{}
	g.cond = [301]int{}
	for i := 1; i <= 10; i++ {
		g.cond[i] = 1
	}
	for _, r := range []int{16, 20, 21, 22, 23, 24, 25, 26, 31, 32, 79} {
		g.cond[r] = 2
	}
	g.relink()
	g.dwarfClock = 0
	g.dwarfLoc = [4]int{}
	g.dwarfOld = [4]int{}
	g.dwarfSeen = [4]int{}
	g.dest, g.loc, g.old = 1, 1, 1
	g.motion = 0
	g.west = 0
	g.looks = 0
	g.dark = false
}

// relink rebuilds the per-room object chains from object locations.
// Iterating in object order reproduces the display order the rooms
// started with.
func (g *Game) relink() {
	g.chain = [101]int{}
	g.objAt = [301]int{}
	for i := 1; i <= 100; i++ {
		room := g.place[i]
		if room < 1 || room >= 300 {
			// carried or destroyed, belongs to no chain
			continue
		}
		if g.objAt[room] == 0 {
			g.objAt[room] = i
			continue
		}
		j := g.objAt[room]
		for g.chain[j] != 0 {
			j = g.chain[j]
		}
		g.chain[j] = i
	}
}

// Run plays the game until the input ends, the player terminates at a
// pause, or the tables prove inconsistent. A nil return never happens;
// end of input surfaces as the console's read error.
func (g *Game) Run() error {
	if !g.restored {
		if err := g.welcome(); err != nil {
			return err
		}
	}
	st := stepArrive
	for {
		var err error
		switch st {
		case stepRestart:
			g.reset()
			if err = g.welcome(); err != nil {
				return err
			}
			st = stepArrive
		case stepArrive:
			st, err = g.arrive()
		case stepTurn:
			st, err = g.turn()
		case stepObjects:
			g.describeObjects()
			st = stepInput
		case stepInput:
			g.verb, g.obj, g.reply = 0, 0, 0
			st = stepRead
		case stepRead:
			st, err = g.command()
		}
		if err != nil {
			return err
		}
	}
}

func (g *Game) welcome() error {
	_, err := g.yes(65, 1, 0)
	return err
}

// arrive enters g.dest: dwarves first, then the room description, then
// either forced motion or a fresh turn.
func (g *Game) arrive() (step, error) {
	if g.onLocation != nil {
		g.onLocation(g.dest)
	}
	if g.dest == 26 {
		// The corridor below the pit has no exits. The original fell
		// into an endless description loop here.
		if err := g.pause("GAME OVER"); err != nil {
			return 0, err
		}
		return stepArrive, nil
	}
	for i := 1; i <= 3; i++ {
		if g.dwarfOld[i] == g.dest && g.dwarfSeen[i] != 0 {
			g.dest = g.loc
			g.speak(2)
			break
		}
	}
	if g.dest != g.loc {
		g.looks = 0
	}
	g.loc = g.dest
	if err := g.dwarfPhase(); err != nil {
		return 0, err
	}
	g.describeRoom()
	if g.cond[g.loc] == 2 {
		return g.travel()
	}
	if g.loc == 33 && g.dice.Roll() < 0.25 {
		g.speak(8)
	}
	return stepTurn, nil
}

func (g *Game) describeRoom() {
	kk := g.tab.Short[g.loc]
	if g.visits[g.loc] == 0 || kk == 0 {
		kk = g.tab.Long[g.loc]
	}
	g.printBlock(kk)
}

// turn starts a fresh turn: advance the abbreviation counter and work
// out whether the player can see.
func (g *Game) turn() (step, error) {
	g.misses = 0
	g.visits[g.loc] = (g.visits[g.loc] + 1) % 5
	g.dark = false
	if g.cond[g.loc]%2 != 1 {
		lampHere := g.place[objLamp] == g.loc || g.place[objLamp] == -1
		if !lampHere || g.prop[objLamp] != 1 {
			g.speak(16)
			g.dark = true
		}
	}
	return stepObjects, nil
}

// describeObjects lists the objects in the room. The stone steps stay
// quiet while the player is lugging the gold past them. A nonzero
// property selects the alternate text.
func (g *Game) describeObjects() {
	for i := g.objAt[g.loc]; i != 0; i = g.chain[i] {
		if (i == objSteps || i == objDome) && g.place[objNugget] == -1 {
			continue
		}
		ilk := i
		if g.prop[i] != 0 {
			ilk = i + 100
		}
		g.printBlock(g.tab.Obj[ilk])
	}
}

// unlink removes obj from the current room's chain. A missing object
// is left alone.
func (g *Game) unlink(obj int) {
	if g.objAt[g.loc] == obj {
		g.objAt[g.loc] = g.chain[obj]
		return
	}
	for i := g.objAt[g.loc]; i != 0; i = g.chain[i] {
		if g.chain[i] == obj {
			g.chain[i] = g.chain[obj]
			return
		}
	}
}

// drop links obj into the current room.
func (g *Game) dropAt(obj, room int) {
	g.chain[obj] = g.objAt[room]
	g.objAt[room] = obj
	g.place[obj] = room
}

func (g *Game) fault(format string, args ...any) error {
	return fmt.Errorf("world data inconsistency: "+format, args...)
}
