// Package word implements the five character keyword codes used by the
// vocabulary and the two word command splitter. A code holds up to five
// uppercase characters padded on the right with spaces, and code
// equality is the unit of all lexical matching in the interpreter.
package word

// Code is a packed keyword: five uppercase characters, space padded.
type Code [5]byte

// Blank is the all-spaces code.
var Blank = Code{' ', ' ', ' ', ' ', ' '}

// Pack uppercases s, truncates it to five characters and pads it on the
// right with spaces.
func Pack(s string) Code {
	c := Blank
	for i := 0; i < len(s) && i < 5; i++ {
		c[i] = upper(s[i])
	}
	return c
}

func (c Code) String() string { return string(c[:]) }

// Trim returns the code without its trailing spaces.
func (c Code) Trim() string {
	n := 5
	for n > 0 && c[n-1] == ' ' {
		n--
	}
	return string(c[:n])
}

// IsBlank reports whether the code is all spaces.
func (c Code) IsBlank() bool { return c == Blank }

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// Split breaks an input line into its first and second keywords.
//
// Only the first twenty characters of the line take part; anything
// beyond them is ignored and missing characters read as spaces.
// Leading spaces are skipped. The first keyword is the first five
// characters with everything from the first embedded space on blanked.
// The second keyword is the five characters starting at the first
// non-space after the first space, so "WHO ARE YOU" splits into
// "WHO  " and "ARE Y". hasSecond reports whether such a character
// exists within the window. tail is characters six through ten of the
// line, used by handlers that re-read an argument in place.
func Split(line string) (first, second Code, hasSecond bool, tail Code) {
	start := 0
	for start < len(line) && line[start] == ' ' {
		start++
	}
	var buf [25]byte
	for i := range buf {
		buf[i] = ' '
	}
	for i := 0; i < 20 && start+i < len(line); i++ {
		buf[i] = upper(line[start+i])
	}

	copy(first[:], buf[:5])
	copy(tail[:], buf[5:10])
	second = Blank

	sp := -1
	for i := 0; i < 20; i++ {
		if buf[i] == ' ' {
			if sp < 0 {
				sp = i
				if i < 5 {
					for j := i; j < 5; j++ {
						first[j] = ' '
					}
				}
			}
			continue
		}
		if sp >= 0 {
			copy(second[:], buf[i:i+5])
			hasSecond = true
			return first, second, hasSecond, tail
		}
	}
	return first, second, false, tail
}
