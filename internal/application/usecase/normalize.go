package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName recorta, colapsa espacios internos y lleva a NFC, de modo que "Analgésicos"
// escrito con tilde combinada o precompuesta sea el mismo nombre.
func normalizeName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
