package translate

import (
	"strings"

	"golang.org/x/text/language"
)

// Auto asks the server to detect the source language.
const Auto = "auto"

// NormalizeCode reduces a BCP 47 tag such as "pt-BR" or "en_US" to the base
// language code LibreTranslate expects. Unparseable input is returned
// lowercased.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.EqualFold(code, Auto) {
		return Auto
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}
