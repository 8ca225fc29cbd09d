package cli

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxNameLen bounds item and heap names, in runes.
const maxNameLen = 200

// normalizeItemName trims an item name and puts it in Unicode NFC form, so
// the same text typed on different terminals displays and stores alike.
func normalizeItemName(s string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(s))
	if name == "" {
		return "", NewExitError(ExitCommandError, CodeInvalidName, "item name is empty")
	}
	if n := len([]rune(name)); n > maxNameLen {
		return "", NewExitError(ExitCommandError, CodeInvalidName,
			fmt.Sprintf("item name is %d characters, limit is %d", n, maxNameLen))
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", NewExitError(ExitCommandError, CodeInvalidName,
				fmt.Sprintf("item name %q contains a control character", name))
		}
	}
	return name, nil
}

// normalizeHeapName validates a heap name. Heap names are identifiers:
// letters, digits, '-', '_' and '.'.
func normalizeHeapName(s string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(s))
	if name == "" {
		return "", NewExitError(ExitCommandError, CodeInvalidName, "heap name is empty")
	}
	if n := len([]rune(name)); n > maxNameLen {
		return "", NewExitError(ExitCommandError, CodeInvalidName,
			fmt.Sprintf("heap name is %d characters, limit is %d", n, maxNameLen))
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("-_.", r) {
			return "", NewExitError(ExitCommandError, CodeInvalidName,
				fmt.Sprintf("heap name %q may only contain letters, digits, '-', '_' and '.'", name))
		}
	}
	return name, nil
}
