package utils

import (
	"encoding/json"

	"github.com/sanity-io/litter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Sprintf with thousands separators for numbers, i.e. 1632326703 becomes "1,632,326,703".
func HumanizedSprintf(format string, a ...any) string {
	return printer.Sprintf(format, a...)
}

// Indented JSON representation of v.
func Prettify(v any) string {
	s, _ := json.MarshalIndent(v, "", "  ")
	return string(s)
}

// Go syntax dump of v, useful for debugging since it shows enum types and nil pointers as they are.
func Dump(v any) string {
	return litter.Options{HidePrivateFields: true, StripPackageNames: false}.Sdump(v)
}
