package dbg

import (
	"fmt"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/logrusorgru/aurora"
)

// This converts arena handles into random readable names. It leaks memory but
// generates the names lazily, so it's not a problem unless you're actually
// using it. Handles are small integers that all look alike in a log, and a name
// like "SillyOtter" is much easier to follow through a sequence of flips.

type key struct {
	kind string
	id   int
}

var (
	mu   sync.Mutex
	memo map[key]string
)

func init() {
	memo = make(map[key]string)
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to the
	// same thing between runs.
	petname.NonDeterministicMode()
}

// Name returns a stable readable name for the handle id of the given kind. A
// negative id is the null handle.
func Name(kind string, id int) string {
	if id < 0 {
		return "Ø"
	}

	mu.Lock()
	defer mu.Unlock()
	k := key{kind, id}
	if r, ok := memo[k]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[k] = r
	return r
}

// Color picks a terminal color for a name.
type Color int

const (
	Plain Color = iota
	Cyan
	Red
	Green
	Yellow
	Gray
)

func Colorize(s string, c Color) string {
	switch c {
	case Cyan:
		return aurora.Cyan(s).String()
	case Red:
		return aurora.Red(s).String()
	case Green:
		return aurora.Green(s).String()
	case Yellow:
		return aurora.Yellow(s).String()
	case Gray:
		return aurora.Gray(12, s).String()
	}
	return s
}
