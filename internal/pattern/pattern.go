// Package pattern classifies a free-text image request into one of a
// fixed set of prompt patterns.
package pattern

import (
	"regexp"
	"strings"
)

type Pattern string

const (
	Infographic Pattern = "infographic"
	Typography  Pattern = "typography"
	Portrait    Pattern = "portrait"
	General     Pattern = "general"
)

func (p Pattern) String() string {
	return string(p)
}

func Parse(s string) (Pattern, bool) {
	switch Pattern(strings.ToLower(strings.TrimSpace(s))) {
	case Infographic:
		return Infographic, true
	case Typography:
		return Typography, true
	case Portrait:
		return Portrait, true
	case General:
		return General, true
	}
	return "", false
}

func All() []Pattern {
	return []Pattern{Infographic, Typography, Portrait, General}
}

type rule struct {
	pattern Pattern
	cues    *regexp.Regexp
}

// Rules are evaluated in order and the first match wins, so the
// priority among competing cues is infographic > typography > portrait.
// Anything that matches no rule is General.
var rules = []rule{
	{Infographic, regexp.MustCompile(`\b(diagrams?|infographics?|charts?|flowcharts?|timelines?|explain(s|ing|ed)?|steps|process|how\s+.+\s+works?)\b`)},
	{Typography, regexp.MustCompile(`\b(posters?|signs?|signage|logos?|banners?|flyers?|typography|lettering|headlines?|quotes?|that\s+says|with\s+the\s+text|t-shirts?)\b`)},
	{Portrait, regexp.MustCompile(`\b(portraits?|headshots?|selfies?|faces?|person|people|wom[ae]n|m[ae]n|girls?|boys?)\b`)},
}

// Classify maps a request to exactly one pattern. It is pure and total:
// empty or unmatched input yields General.
func Classify(request string) Pattern {
	text := strings.ToLower(request)
	for _, r := range rules {
		if r.cues.MatchString(text) {
			return r.pattern
		}
	}
	return General
}
