package game

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Snapshot is the serialized form of a game in progress. Object chains
// are not stored; Restore rebuilds them from the object locations.
type Snapshot struct {
	Location int `yaml:"location"`
	Previous int `yaml:"previous"`
	Motion   int `yaml:"motion"`

	Places []int `yaml:"places"`
	Fixed  []int `yaml:"fixed"`
	Props  []int `yaml:"props"`
	Visits []int `yaml:"visits"`

	DwarfClock int   `yaml:"dwarf_clock"`
	DwarfLoc   []int `yaml:"dwarf_loc"`
	DwarfOld   []int `yaml:"dwarf_old"`
	DwarfSeen  []int `yaml:"dwarf_seen"`

	West  int `yaml:"west"`
	Looks int `yaml:"looks"`
}

// Save writes the current state to w.
func (g *Game) Save(w io.Writer) error {
	s := Snapshot{
		Location:   g.loc,
		Previous:   g.old,
		Motion:     g.motion,
		Places:     g.place[:],
		Fixed:      g.fixed[:],
		Props:      g.prop[:],
		Visits:     g.visits[:],
		DwarfClock: g.dwarfClock,
		DwarfLoc:   g.dwarfLoc[:],
		DwarfOld:   g.dwarfOld[:],
		DwarfSeen:  g.dwarfSeen[:],
		West:       g.west,
		Looks:      g.looks,
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(&s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the current state to path.
func (g *Game) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Restore replaces the game state with the snapshot read from r. The
// next Run skips the welcome question and re-enters the saved room.
func (g *Game) Restore(r io.Reader) error {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Location < 1 || s.Location > 300 {
		return fmt.Errorf("snapshot location %d out of range", s.Location)
	}
	g.reset()
	copyInto(g.place[:], s.Places)
	copyInto(g.fixed[:], s.Fixed)
	copyInto(g.prop[:], s.Props)
	copyInto(g.visits[:], s.Visits)
	g.relink()
	g.dwarfClock = s.DwarfClock
	copyInto(g.dwarfLoc[:], s.DwarfLoc)
	copyInto(g.dwarfOld[:], s.DwarfOld)
	copyInto(g.dwarfSeen[:], s.DwarfSeen)
	g.dest, g.loc = s.Location, s.Location
	g.old = s.Previous
	g.motion = s.Motion
	g.west = s.West
	g.looks = s.Looks
	g.restored = true
	return nil
}

// RestoreFile replaces the game state with the snapshot at path.
func (g *Game) RestoreFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.Restore(f)
}

func copyInto(dst, src []int) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst, src[:n])
}
