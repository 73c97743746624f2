package money

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used by String and the confirmation projections.
var DefaultLocale = language.AmericanEnglish

type separators struct {
	group   string
	decimal string
}

var separatorCache sync.Map

// separatorsFor derives grouping and decimal separators by formatting a sample
// number with the locale's number rules.
func separatorsFor(tag language.Tag) separators {
	if cached, ok := separatorCache.Load(tag); ok {
		return cached.(separators)
	}

	sample := message.NewPrinter(tag).Sprintf("%v", number.Decimal(1234567.5))
	var marks []string
	for _, r := range sample {
		if unicode.IsDigit(r) {
			continue
		}
		marks = append(marks, string(r))
	}

	seps := separators{group: ",", decimal: "."}
	switch len(marks) {
	case 0:
	case 1:
		seps = separators{group: "", decimal: marks[0]}
	default:
		seps = separators{group: marks[0], decimal: marks[len(marks)-1]}
	}

	separatorCache.Store(tag, seps)
	return seps
}

// normalize turns a localized decimal string into the canonical "-1234.56"
// form. Group marks are accepted only between three-digit groups of the
// integer part; anything else reports false.
func (s separators) normalize(input string) (string, bool) {
	out := strings.TrimFunc(input, unicode.IsSpace)
	sign := ""
	if rest, ok := strings.CutPrefix(out, "-"); ok {
		sign, out = "-", rest
	}

	intPart, fracPart, hasDecimal := strings.Cut(out, s.decimal)
	group := s.group
	if isSpaceMark(group) {
		intPart = strings.Map(func(r rune) rune {
			if isSpaceMark(string(r)) {
				return ' '
			}
			return r
		}, intPart)
		group = " "
	}
	if group != "" && strings.Contains(intPart, group) {
		chunks := strings.Split(intPart, group)
		for i, chunk := range chunks {
			if chunk == "" || len(chunk) > 3 || (i > 0 && len(chunk) != 3) {
				return "", false
			}
		}
		intPart = strings.Join(chunks, "")
	}

	if !hasDecimal {
		return sign + intPart, true
	}
	return sign + intPart + "." + fracPart, true
}

func isSpaceMark(mark string) bool {
	return mark == " " || mark == "\u00a0" || mark == "\u202f"
}

func (s separators) format(intPart, fracPart string) string {
	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(s.group)
		b.WriteString(intPart[i : i+3])
	}
	if fracPart != "" {
		b.WriteString(s.decimal)
		b.WriteString(fracPart)
	}
	return b.String()
}
