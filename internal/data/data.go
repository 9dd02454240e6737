// Package data loads the world tables from the historical Adventure
// data file. The file is a sequence of sections, each introduced by a
// record kind and closed by a record whose index is -1:
//
//	1  long room descriptions
//	2  short room descriptions
//	3  travel table
//	4  vocabulary
//	5  object descriptions
//	6  event messages
//	0  end of file
//
// Text sections share one line pool. Records with the same index chain
// into multi-line blocks. Travel records pack destination and keyword
// into a single integer and mark the last entry for each source room by
// negation.
package data

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"advent/internal/word"
)

const (
	maxLines  = 1000
	maxTravel = 1000
	maxWords  = 1000
)

// Class partitions the vocabulary by keyword id range.
type Class int

const (
	Motion Class = iota // movement keywords
	Object              // nouns
	Action              // verbs
	Advice              // words that just trigger a canned response
)

// Line is one stored line of text. More marks a line that continues
// into the one that follows it in the pool.
type Line struct {
	Text string
	More bool
}

// VocabEntry maps a packed keyword to its id. Lookups scan entries in
// file order, so earlier synonyms win.
type VocabEntry struct {
	Word word.Code
	ID   int
}

// Tables holds every table read from the data file. Index 0 of each
// array is unused; rooms, objects and messages are numbered from 1 as
// in the file itself.
type Tables struct {
	Lines  []Line   // shared text pool, 1-based
	Long   [301]int // room -> first line of long description
	Short  [301]int // room -> first line of short description
	Obj    [201]int // object or object+100 -> first line of description
	Msg    [101]int // message -> first line
	Key    [301]int // room -> first travel entry
	Travel []int    // dest*1024+keyword, negated on the last entry per room
	Vocab  []VocabEntry
}

//go:embed advdat.txt
var builtin []byte

// Builtin loads the embedded 1977 data file.
func Builtin() (*Tables, error) {
	return Load(bytes.NewReader(builtin))
}

// LoadFile loads a data file from disk.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load reads a complete data file.
func Load(r io.Reader) (*Tables, error) {
	t := &Tables{
		Lines:  make([]Line, 1, 512),
		Travel: make([]int, 1, 512),
	}
	sc := bufio.NewScanner(r)
	ln := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		ln++
		return sc.Text(), true
	}

	for {
		kindLine, ok := next()
		if !ok {
			return nil, fmt.Errorf("line %d: missing end record", ln)
		}
		kind, _, err := splitIndex(kindLine)
		if err != nil {
			return nil, fmt.Errorf("line %d: section kind: %w", ln, err)
		}
		switch kind {
		case 0:
			return t, nil
		case 1, 2, 5, 6:
			if err := t.loadText(kind, next, &ln); err != nil {
				return nil, err
			}
		case 3:
			if err := t.loadTravel(next, &ln); err != nil {
				return nil, err
			}
		case 4:
			if err := t.loadVocab(next, &ln); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("line %d: unknown section kind %d", ln, kind)
		}
	}
}

// loadText reads one text section into the shared line pool. A record
// whose index matches an already filled slot chains off the previously
// read line.
func (t *Tables) loadText(kind int, next func() (string, bool), ln *int) error {
	for {
		raw, ok := next()
		if !ok {
			return fmt.Errorf("line %d: unterminated text section", *ln)
		}
		idx, rest, err := splitIndex(raw)
		if err != nil {
			return fmt.Errorf("line %d: text record: %w", *ln, err)
		}
		if idx == -1 {
			return nil
		}
		text := strings.TrimRight(strings.TrimLeft(rest, " "), " ")
		if len(text) > 100 {
			text = text[:100]
		}
		if text == "" {
			return fmt.Errorf("line %d: blank text record", *ln)
		}
		if len(t.Lines) >= maxLines {
			return fmt.Errorf("line %d: too many lines", *ln)
		}
		t.Lines = append(t.Lines, Line{Text: text})
		i := len(t.Lines) - 1

		slot, err := t.textSlot(kind, idx)
		if err != nil {
			return fmt.Errorf("line %d: %w", *ln, err)
		}
		if *slot != 0 {
			t.Lines[i-1].More = true
			continue
		}
		*slot = i
		if kind == 5 && idx >= 200 {
			t.Obj[idx-200] = i
		}
	}
}

// textSlot picks the table slot for a text record. Object records with
// index 200 and up describe the nonzero property state and fill both
// the idx-100 and idx-200 slots.
func (t *Tables) textSlot(kind, idx int) (*int, error) {
	switch kind {
	case 1:
		if idx < 1 || idx >= len(t.Long) {
			return nil, fmt.Errorf("long description index %d out of range", idx)
		}
		return &t.Long[idx], nil
	case 2:
		if idx < 1 || idx >= len(t.Short) {
			return nil, fmt.Errorf("short description index %d out of range", idx)
		}
		return &t.Short[idx], nil
	case 5:
		j := idx
		if j >= 200 {
			j -= 100
		}
		if j < 1 || j >= len(t.Obj) {
			return nil, fmt.Errorf("object description index %d out of range", idx)
		}
		return &t.Obj[j], nil
	case 6:
		if idx < 1 || idx >= len(t.Msg) {
			return nil, fmt.Errorf("message index %d out of range", idx)
		}
		return &t.Msg[idx], nil
	}
	return nil, fmt.Errorf("no text table for kind %d", kind)
}

// loadTravel reads the travel section. Each record is a source room, a
// destination and up to ten keywords. Entries are stored packed and the
// last entry for each source is negated.
func (t *Tables) loadTravel(next func() (string, bool), ln *int) error {
	for {
		raw, ok := next()
		if !ok {
			return fmt.Errorf("line %d: unterminated travel section", *ln)
		}
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return fmt.Errorf("line %d: empty travel record", *ln)
		}
		src, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: travel source: %w", *ln, err)
		}
		if src == -1 {
			return nil
		}
		if src < 1 || src >= len(t.Key) {
			return fmt.Errorf("line %d: travel source %d out of range", *ln, src)
		}
		if len(fields) < 2 {
			return fmt.Errorf("line %d: travel record for room %d has no destination", *ln, src)
		}
		dest, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("line %d: travel destination: %w", *ln, err)
		}

		if t.Key[src] == 0 {
			t.Key[src] = len(t.Travel)
		} else {
			last := len(t.Travel) - 1
			t.Travel[last] = -t.Travel[last]
		}
		for _, f := range fields[2:] {
			gate, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("line %d: travel keyword: %w", *ln, err)
			}
			if gate == 0 {
				break
			}
			if len(t.Travel) >= maxTravel {
				return fmt.Errorf("line %d: too many travel entries", *ln)
			}
			t.Travel = append(t.Travel, dest*1024+gate)
		}
		last := len(t.Travel) - 1
		t.Travel[last] = -t.Travel[last]
	}
}

func (t *Tables) loadVocab(next func() (string, bool), ln *int) error {
	for {
		raw, ok := next()
		if !ok {
			return fmt.Errorf("line %d: unterminated vocabulary section", *ln)
		}
		id, rest, err := splitIndex(raw)
		if err != nil {
			return fmt.Errorf("line %d: vocabulary record: %w", *ln, err)
		}
		if id == -1 {
			return nil
		}
		if len(t.Vocab) >= maxWords {
			return fmt.Errorf("line %d: too many words", *ln)
		}
		t.Vocab = append(t.Vocab, VocabEntry{
			Word: word.Pack(strings.TrimLeft(rest, " ")),
			ID:   id,
		})
	}
}

// Lookup resolves a keyword to its class and in-class id. Entries are
// scanned in file order.
func (t *Tables) Lookup(w word.Code) (Class, int, bool) {
	for _, e := range t.Vocab {
		if e.Word == w {
			return Class(e.ID / 1000), e.ID % 1000, true
		}
	}
	return 0, 0, false
}

// Block returns the chained lines of the text block starting at pool
// index kk, or nil when kk is zero.
func (t *Tables) Block(kk int) []string {
	if kk <= 0 || kk >= len(t.Lines) {
		return nil
	}
	var out []string
	for {
		out = append(out, t.Lines[kk].Text)
		if !t.Lines[kk].More {
			return out
		}
		kk++
	}
}

// splitIndex parses the leading integer of a record and returns the
// remainder of the line.
func splitIndex(s string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	j := i
	if j < len(s) && (s[j] == '-' || s[j] == '+') {
		j++
	}
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil {
		return 0, "", fmt.Errorf("bad record index %q", s)
	}
	return n, s[j:], nil
}
