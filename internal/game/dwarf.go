package game

// dwarfPhase runs the dwarf simulation for one arrival. The clock
// starts on the first visit to the Hall of Mists; one axe throw later
// the three dwarves walk their patrol routes, lock onto the player in
// the deep cave, and throw knives when they catch up.
func (g *Game) dwarfPhase() error {
	if g.dwarfClock == 0 {
		if g.loc == 15 {
			g.dwarfClock = 1
		}
		return nil
	}
	if g.dwarfClock == 1 {
		if g.dice.Roll() > 0.05 {
			return nil
		}
		g.dwarfClock = 2
		for i := 1; i <= 3; i++ {
			g.dwarfLoc[i] = 0
			g.dwarfOld[i] = 0
			g.dwarfSeen[i] = 0
		}
		g.speak(3)
		g.dropAt(objAxe, g.loc)
		return nil
	}

	g.dwarfClock++
	attack, total, stick := 0, 0, 0
	for i := 1; i <= 3; i++ {
		if 2*i+g.dwarfClock < 8 {
			continue
		}
		if 2*i+g.dwarfClock > 23 && g.dwarfSeen[i] == 0 {
			continue
		}
		g.dwarfOld[i] = g.dwarfLoc[i]
		if g.dwarfSeen[i] != 0 && g.loc > 14 {
			// A dwarf that has found the player stays on him below
			// the mists.
		} else {
			g.dwarfLoc[i] = dwarfPath[2*i+g.dwarfClock-8]
			g.dwarfSeen[i] = 0
			if g.dwarfLoc[i] != g.loc && g.dwarfOld[i] != g.loc {
				continue
			}
		}
		g.dwarfSeen[i] = 1
		g.dwarfLoc[i] = g.loc
		total++
		if g.dwarfOld[i] != g.dwarfLoc[i] {
			continue
		}
		attack++
		if g.dice.Roll() < 0.1 {
			stick++
		}
	}
	if total == 0 {
		return nil
	}
	if total == 1 {
		g.speak(4)
	} else {
		g.printf("THERE ARE %d THREATENING LITTLE DWARVES IN THE ROOM WITH YOU.\n", total)
	}
	if attack == 0 {
		return nil
	}
	if attack == 1 {
		g.speak(5)
		g.speak(52 + stick)
		if stick == 0 {
			return nil
		}
		return g.pause("GAMES OVER")
	}
	g.printf(" %d OF THEM THROW KNIVES AT YOU!\n", attack)
	if stick == 0 {
		g.speak(7)
		return nil
	}
	if stick == 1 {
		g.speak(6)
	} else {
		g.printf(" %d OF THEM GET YOU.\n", stick)
	}
	return g.pause("GAMES OVER")
}
