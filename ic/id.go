package ic

import (
	"fmt"
	"regexp"
	"strings"
)

var icPattern = regexp.MustCompile(`(?i)^\[(([A-Z]{1,3})[0-9]{1,4})\](.*)$`)

var idPattern = regexp.MustCompile(`^[A-Z]{1,3}[0-9]{1,4}$`)

// maxMigrationSteps bounds the legacy rewrites a single line may go
// through. The longest legal chain is MCA0xxx to MC0xxxA to MC1xxxAS.
const maxMigrationSteps = 3

// An Identifier is the bracketed IC ID written on the second line of a sign.
type Identifier struct {
	// ID is the upper case ID without the brackets, for example MC1000.
	ID string

	// Prefix is the leading letters of the ID.
	Prefix string

	// Suffix is whatever follows the closing bracket, for example S.
	Suffix string
}

// ParseIdentifier extracts the IC ID from a sign line. It returns false if
// the line is not shaped like an IC ID.
func ParseIdentifier(line string) (Identifier, bool) {
	m := icPattern.FindStringSubmatch(line)
	if m == nil {
		return Identifier{}, false
	}

	return Identifier{
		ID:     strings.ToUpper(m[1]),
		Prefix: strings.ToUpper(m[2]),
		Suffix: m[3],
	}, true
}

// SelfTriggerRequested returns true if the line asks for an S suffixed, self
// triggered IC.
func SelfTriggerRequested(line string) bool {
	return strings.HasSuffix(strings.ToUpper(strings.TrimSpace(line)), "S")
}

// Migrate applies one legacy rewrite to a sign line. It returns false if the
// line is already canonical.
//
//   - [MCAxxxx] becomes [MCxxxx]A
//   - [MC0420] and [MC0421] become [MC1421]S and [MC1422]S
//   - any other [MC0xxx] becomes [MC1xxx]S
//   - [MCZxxx] becomes [MCXxxx]S
func Migrate(line string) (string, bool) {
	id, ok := ParseIdentifier(line)
	if !ok {
		return line, false
	}

	lower := strings.ToLower(line)

	switch {
	case id.Prefix == "MCA":
		return strings.ToUpper(strings.Replace(lower, "[mca", "[mc", 1) + "a"), true
	case strings.HasPrefix(lower, "[mc0"):
		switch lower {
		case "[mc0420]":
			return "[MC1421]S", true
		case "[mc0421]":
			return "[MC1422]S", true
		}

		return strings.ToUpper(strings.Replace(lower, "[mc0", "[mc1", 1) + "s"), true
	case strings.HasPrefix(lower, "[mcz"):
		return strings.ToUpper(strings.Replace(lower, "[mcz", "[mcx", 1) + "s"), true
	}

	return line, false
}

// Canonicalize applies legacy rewrites until the line is canonical. It
// returns the canonical line and the number of rewrites applied.
func Canonicalize(line string) (string, int, error) {
	for steps := 0; steps <= maxMigrationSteps; steps++ {
		next, changed := Migrate(line)
		if !changed {
			return line, steps, nil
		}

		line = next
	}

	return line, maxMigrationSteps, fmt.Errorf("%w: %q", ErrMigrationUnstable, line)
}

func validID(id string) bool {
	return idPattern.MatchString(id)
}

func prefixOf(id string) string {
	return strings.TrimRight(id, "0123456789")
}
