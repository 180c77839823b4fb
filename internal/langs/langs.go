// Package langs turns the MARC language codes Open Library returns ("eng",
// "fre", "ger") into English display names.
package langs

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// bibliographic maps MARC/ISO 639-2/B codes to the terminology codes that
// x/text understands.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"mao": "mri",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

var namer = display.English.Languages()

// Name returns the English name for code, or code itself when it is not a
// known language.
func Name(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if alias, ok := bibliographic[trimmed]; ok {
		trimmed = alias
	}
	base, err := language.ParseBase(trimmed)
	if err != nil {
		return code
	}
	name := namer.Name(base)
	if name == "" {
		return code
	}
	return name
}

// Names maps up to limit codes to display names, keeping order. A limit of
// zero or less keeps all of them.
func Names(codes []string, limit int) []string {
	if limit <= 0 || limit > len(codes) {
		limit = len(codes)
	}
	out := make([]string, 0, limit)
	for _, code := range codes[:limit] {
		if name := Name(code); name != "" {
			out = append(out, name)
		}
	}
	return out
}
