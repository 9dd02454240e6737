package game

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"advent/internal/data"
)

func TestWelcomeInstructions(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"yes", 1, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "WOULD YOU LIKE INSTRUCTIONS?") {
		t.Error("Expected the welcome question")
	}
	if !strings.Contains(out, "SOMEWHERE NEARBY IS COLOSSAL CAVE") {
		t.Error("Expected the instructions after answering yes")
	}
	if !strings.Contains(out, "YOU ARE STANDING AT THE END OF A ROAD") {
		t.Error("Expected the starting room description")
	}
}

// The grate only opens with the keys in hand, and the way down past it
// stays shut until then.
func TestGrateUnlock(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get keys", 0, -1.0},
		{"out", 1, -1.0},
		{"south", 4, -1.0},
		{"south", 7, -1.0},
		{"down", 8, -1.0},
		{"down", 23, -1.0},
		{"", 8, -1.0},
		{"unlock grate", 0, -1.0},
		{"down", 9, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "THE GRATE IS NOW UNLOCKED.") {
		t.Error("Expected the grate to unlock with the keys")
	}
	if !strings.Contains(out, "YOU CAN'T GO IN THROUGH A LOCKED STEEL GRATE!") {
		t.Error("Expected the locked grate to block the way down")
	}
}

func TestUnlockWithoutKeys(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"south", 4, -1.0},
		{"south", 7, -1.0},
		{"down", 8, -1.0},
		{"unlock grate", 0, -1.0},
		{stopScript, 0, -1.0},
	})
	if !strings.Contains(io.out.String(), "YOU HAVE NO KEYS!") {
		t.Error("Expected the unlock to fail without the keys")
	}
}

// XYZZY works between the building and the debris room and nowhere
// else.
func TestMagicWords(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"xyzzy", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"light lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{"xyzzy", 3, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "NOTHING HAPPENS.") {
		t.Error("Expected the magic word to fizzle at the road")
	}
	if !strings.Contains(out, "A NOTE ON THE WALL SAYS 'MAGIC WORD XYZZY'") {
		t.Error("Expected the debris room description")
	}
}

// Wandering around without a lit lamp first warns, then kills.
func TestDarkPassage(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{"east", 0, 0.1},
		{"g", 0, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "IT IS NOW PITCH BLACK") {
		t.Error("Expected the darkness warning in the debris room")
	}
	if !strings.Contains(out, "YOU FELL INTO A PIT AND BROKE EVERY BONE IN YOUR BODY!") {
		t.Error("Expected the fatal fall")
	}
	if !strings.Contains(out, "EXECUTION RESUMED") {
		t.Error("Expected play to resume after typing G at the pause")
	}
}

func TestPauseTerminate(t *testing.T) {
	tab, err := data.Builtin()
	if err != nil {
		t.Fatalf("Unexpected error loading tables: %v", err)
	}
	io := &scriptIO{t: t, rows: []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{"east", 0, 0.1},
		{"x", 0, -1.0},
		{stopScript, 0, -1.0},
	}}
	g := New(tab, Options{Console: io, Rand: io, OnLocation: io.arrived})
	if err := g.Run(); !errors.Is(err, ErrTerminated) {
		t.Errorf("Expected ErrTerminated after typing X at the pause, got %v", err)
	}
}

// Refused directions pick their message by keyword class.
func TestDirectionRefusals(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"up", 1, -1.0},
		{"crawl", 1, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "THERE IS NO WAY TO GO THAT DIRECTION.") {
		t.Error("Expected the compass refusal for up")
	}
	if !strings.Contains(out, "WHICH WAY?") {
		t.Error("Expected the crawl refusal")
	}
}

// Two looks redescribe quietly; the third admits there is no more
// detail to give.
func TestLookRepetition(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"look", 1, -1.0},
		{"look", 1, -1.0},
		{"look", 1, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if n := strings.Count(out, "NOT ALLOWED TO GIVE MORE DETAIL"); n != 1 {
		t.Errorf("Expected exactly one refusal to elaborate, got %d", n)
	}
	if n := strings.Count(out, "YOU ARE STANDING AT THE END OF A ROAD"); n != 4 {
		t.Errorf("Expected the long description four times, got %d", n)
	}
}

func TestTakeFixedGrate(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"south", 4, -1.0},
		{"south", 7, -1.0},
		{"down", 8, -1.0},
		{"get grate", 0, -1.0},
		{stopScript, 0, -1.0},
	})
	if !strings.Contains(io.out.String(), "YOU CAN'T BE SERIOUS!") {
		t.Error("Expected the take of a fixed object to be refused")
	}
}

// The bird will not be caught while the rod is in hand, nor carried
// without the cage.
func TestBirdRefusals(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{"light lamp", 0, -1.0},
		{"get rod", 0, -1.0},
		{"canyon", 12, -1.0},
		{"up", 13, -1.0},
		{"get bird", 0, -1.0},
		{"drop rod", 0, -1.0},
		{"get bird", 0, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "IT BECOMES DISTURBED AND YOU CANNOT CATCH IT") {
		t.Error("Expected the bird to shy away from the rod")
	}
	if !strings.Contains(out, "YOU CAN CATCH THE BIRD, BUT YOU CANNOT CARRY IT.") {
		t.Error("Expected the bird to need the cage")
	}
}

func TestEatAndRubVerbs(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"eat food", 0, -1.0},
		{"rub lamp", 0, -1.0},
		{"rub keys", 0, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "EATEN!") {
		t.Error("Expected the food to be eaten")
	}
	if !strings.Contains(out, "RUBBING THE ELECTRIC LAMP IS NOT PARTICULARLY REWARDING.") {
		t.Error("Expected the lamp rub message")
	}
	if !strings.Contains(out, "PECULIAR.  NOTHING UNEXPECTED HAPPENS.") {
		t.Error("Expected the generic rub message")
	}
}

// The tenth WEST earns the abbreviation hint.
func TestWestHint(t *testing.T) {
	rows := []scriptRow{{"no", 1, -1.0}}
	for i := 0; i < 9; i++ {
		rows = append(rows, scriptRow{"west", 2, -1.0}, scriptRow{"east", 1, -1.0})
	}
	rows = append(rows, scriptRow{"west", 2, -1.0}, scriptRow{stopScript, 0, -1.0})
	io := playScript(t, rows)
	if !strings.Contains(io.out.String(), "IF YOU PREFER, SIMPLY TYPE W RATHER THAN WEST.") {
		t.Error("Expected the abbreviation hint on the tenth WEST")
	}
}

func TestEnterStream(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"enter stream", 0, -1.0},
		{"enter building", 3, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "YOUR FEET ARE NOW WET.") {
		t.Error("Expected wading into the stream to wet the feet")
	}
	if !strings.Contains(out, "YOU ARE INSIDE A BUILDING") {
		t.Error("Expected ENTER BUILDING to walk inside")
	}
}

// Three unrecognized words in one turn at the shut grate turn into an
// offer of help.
func TestUnknownWordHelp(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"south", 4, -1.0},
		{"south", 7, -1.0},
		{"down", 8, -1.0},
		{"frotz", 0, 0.5},
		{"", 0, 0.5},
		{"gronk", 0, 0.5},
		{"", 0, 0.5},
		{"blorple", 0, 0.5},
		{"", 0, 0.5},
		{"yes", 0, -1.0},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "I DON'T KNOW THAT WORD.") {
		t.Error("Expected the unknown word message")
	}
	if !strings.Contains(out, "ARE YOU TRYING TO GET INTO THE CAVE?") {
		t.Error("Expected the hint question after three unknown words")
	}
	if !strings.Contains(out, "THE GRATE IS VERY SOLID AND HAS A HARDENED STEEL LOCK.") {
		t.Error("Expected the grate hint after answering yes")
	}
}

// One unlucky throw wakes the dwarves: the axe lands at the player's
// feet, and a few turns later a knife-throwing dwarf catches up.
func TestDwarfEncounter(t *testing.T) {
	io := playScript(t, []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{"light lamp", 0, -1.0},
		{"pit", 14, -1.0},
		{"down", 15, -1.0},
		{"stair", 19, 0.01},
		{"get axe", 0, -1.0},
		{"look", 19, -1.0},
		{"look", 19, -1.0},
		{"look", 19, -1.0},
		{"look", 19, 0.5},
		{"attack", 19, 0.6},
		{"", 0, 0.5},
		{"attack", 19, 0.2},
		{"", 0, 0.5},
		{stopScript, 0, -1.0},
	})
	out := io.out.String()
	if !strings.Contains(out, "A LITTLE AXE AT YOU WHICH MISSED") {
		t.Error("Expected the axe throw when the dwarves wake")
	}
	if !strings.Contains(out, "THERE IS A THREATENING LITTLE DWARF IN THE ROOM WITH YOU!") {
		t.Error("Expected a dwarf to catch up with the player")
	}
	if !strings.Contains(out, "ONE SHARP NASTY KNIFE IS THROWN AT YOU!") {
		t.Error("Expected the knife throw")
	}
	if !strings.Contains(out, "IT MISSES!") {
		t.Error("Expected the knife to miss")
	}
	if !strings.Contains(out, "HE DODGES OUT OF THE WAY.") {
		t.Error("Expected the first attack to be dodged")
	}
	if !strings.Contains(out, "YOU KILLED A LITTLE DWARF.") {
		t.Error("Expected the second attack to land")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tab, err := data.Builtin()
	if err != nil {
		t.Fatalf("Unexpected error loading tables: %v", err)
	}
	io1 := &scriptIO{t: t, rows: []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"light lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{stopScript, 0, -1.0},
	}}
	g1 := New(tab, Options{Console: io1, Rand: io1, OnLocation: io1.arrived})
	if err := g1.Run(); !errors.Is(err, errScriptEnd) {
		t.Fatalf("Run returned %v, want script end", err)
	}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := g1.SaveFile(path); err != nil {
		t.Fatalf("Unexpected error saving: %v", err)
	}

	io2 := &scriptIO{t: t, rows: []scriptRow{
		{"canyon", 12, -1.0},
		{stopScript, 0, -1.0},
	}}
	io2.locs = []int{11} // the restored game re-enters the saved room
	g2 := New(tab, Options{Console: io2, Rand: io2, OnLocation: io2.arrived})
	if err := g2.RestoreFile(path); err != nil {
		t.Fatalf("Unexpected error restoring: %v", err)
	}
	if g2.loc != 11 {
		t.Errorf("Expected restored location 11, got %d", g2.loc)
	}
	if g2.place[objLamp] != -1 {
		t.Errorf("Expected the lamp to still be carried, got place %d", g2.place[objLamp])
	}
	if g2.prop[objLamp] != 1 {
		t.Errorf("Expected the lamp to still be lit, got prop %d", g2.prop[objLamp])
	}
	if err := g2.Run(); !errors.Is(err, errScriptEnd) {
		t.Fatalf("Run returned %v, want script end", err)
	}
	if !strings.Contains(io2.out.String(), "DEBRIS") {
		t.Error("Expected the restored game to redescribe the debris room")
	}
}

// checkChains walks every room chain and verifies it agrees with the
// location table: an object hangs off room R exactly when its place is
// R, and carried or destroyed objects hang off no room.
func checkChains(t *testing.T, g *Game) {
	t.Helper()
	linked := make(map[int]int)
	for r := range g.objAt {
		steps := 0
		for o := g.objAt[r]; o != 0; o = g.chain[o] {
			if prev, dup := linked[o]; dup {
				t.Fatalf("Object %d chained in rooms %d and %d", o, prev, r)
			}
			linked[o] = r
			if g.place[o] != r {
				t.Errorf("Object %d chained in room %d but placed at %d", o, r, g.place[o])
			}
			if steps++; steps > len(g.chain) {
				t.Fatalf("Chain for room %d does not terminate", r)
			}
		}
	}
	for o := 1; o < len(g.place); o++ {
		p := g.place[o]
		if p >= 1 && p < 300 {
			if linked[o] != p {
				t.Errorf("Object %d placed at %d but not chained there", o, p)
			}
		} else if r, ok := linked[o]; ok {
			t.Errorf("Object %d placed at %d but chained in room %d", o, p, r)
		}
	}
}

// Taking pulls an object off its room chain, dropping hangs it back
// on, and killing the bird removes it for good. The chains and the
// location table have to agree after each, and again after a snapshot
// round trip.
func TestObjectChainConsistency(t *testing.T) {
	tab, err := data.Builtin()
	if err != nil {
		t.Fatalf("Unexpected error loading tables: %v", err)
	}
	io := &scriptIO{t: t, rows: []scriptRow{
		{"no", 1, -1.0},
		{"in", 3, -1.0},
		{"get lamp", 0, -1.0},
		{"xyzzy", 11, -1.0},
		{"light lamp", 0, -1.0},
		{"low", 10, -1.0},
		{"get cage", 0, -1.0},
		{"drop cage", 0, -1.0},
		{"get cage", 0, -1.0},
		{"pit", 14, -1.0},
		{"east", 13, -1.0},
		{"attack bird", 0, -1.0},
		{stopScript, 0, -1.0},
	}}
	g := New(tab, Options{Console: io, Rand: io, OnLocation: io.arrived})
	if err := g.Run(); !errors.Is(err, errScriptEnd) {
		t.Fatalf("Run returned %v, want script end", err)
	}
	if g.place[objLamp] != -1 || g.place[objCage] != -1 {
		t.Errorf("Expected the lamp and cage to be carried, got %d and %d",
			g.place[objLamp], g.place[objCage])
	}
	if g.place[objBird] != 300 {
		t.Errorf("Expected the dead bird to be destroyed, got place %d", g.place[objBird])
	}
	checkChains(t, g)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := g.SaveFile(path); err != nil {
		t.Fatalf("Unexpected error saving: %v", err)
	}
	io2 := &scriptIO{t: t, rows: []scriptRow{{stopScript, 0, -1.0}}}
	io2.locs = []int{13} // the restored game re-enters the saved room
	g2 := New(tab, Options{Console: io2, Rand: io2, OnLocation: io2.arrived})
	if err := g2.RestoreFile(path); err != nil {
		t.Fatalf("Unexpected error restoring: %v", err)
	}
	if err := g2.Run(); !errors.Is(err, errScriptEnd) {
		t.Fatalf("Run returned %v, want script end", err)
	}
	checkChains(t, g2)
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	tab, err := data.Builtin()
	if err != nil {
		t.Fatalf("Unexpected error loading tables: %v", err)
	}
	g := New(tab, Options{Console: nil, Rand: nil})
	if err := g.Restore(strings.NewReader("location: 999\n")); err == nil {
		t.Error("Expected an out-of-range location to be rejected")
	}
	if err := g.Restore(strings.NewReader(":::not yaml")); err == nil {
		t.Error("Expected malformed yaml to be rejected")
	}
}
