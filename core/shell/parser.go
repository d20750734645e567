// Package shell turns a raw input line into a Command.
//
// The grammar is deliberately tiny compared to
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html:
//
// 1. The line is broken into words on blanks; there are no quotes, escapes,
// expansions or globs.
//
// 2. A background marker or a single redirection is recognized only in the
// fixed shape of a three word command (see Classify).
//
// 3. Redirection operators and their operands are removed from the argument
// list the program receives, the parent keeps the full word list.
package shell

import "strings"

// Separators holds the characters that split words.
const Separators = " \t\n\r\a"

// Tokenize splits line into words. It never fails; a blank line yields no
// words.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return strings.ContainsRune(Separators, r)
	})
}
