package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reWhitespace   = regexp.MustCompile(`\s+`)
	rePlateInvalid = regexp.MustCompile(`[^A-Z0-9-]+`)
	reMultiHyphen  = regexp.MustCompile(`-+`)
	reTagInvalid   = regexp.MustCompile(`[^0-9\p{L}_-]+`)
	reMultiUnders  = regexp.MustCompile(`_+`)
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func upper(s string) string {
	return strings.ToUpper(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

func collapseHyphens(s string) string {
	s = reMultiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizePlate normalizes a license plate to the stored form: uppercase with
// internal whitespace collapsed to single hyphens. "ab 1234" -> "AB-1234".
func SanitizePlate(input string) string {
	p := Pipeline{
		trim,
		upper,
		func(s string) string { return reWhitespace.ReplaceAllString(s, "-") },
		func(s string) string { return rePlateInvalid.ReplaceAllString(s, "") },
		collapseHyphens,
	}
	return p.Apply(input)
}

// SanitizeTag normalizes one metadata tag: lowercase, spaces to underscores,
// everything else stripped.
func SanitizeTag(input string) string {
	p := Pipeline{
		trim,
		lower,
		func(s string) string { return reWhitespace.ReplaceAllString(s, "_") },
		func(s string) string { return reTagInvalid.ReplaceAllString(s, "") },
		func(s string) string { return strings.Trim(reMultiUnders.ReplaceAllString(s, "_"), "_") },
	}
	return p.Apply(input)
}
