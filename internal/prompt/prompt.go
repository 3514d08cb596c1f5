// Package prompt expands a classified request into the prompt string
// sent to the image model.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/manash/nanobanana/internal/pattern"
)

// scaffolds carry the subject/environment/style cues appended per pattern.
var scaffolds = map[pattern.Pattern]string{
	pattern.Infographic: "Clean infographic layout with a clear visual hierarchy, distinct labeled sections, simple iconography, and legible annotations on a light background.",
	pattern.Typography:  "Bold typographic design with balanced composition, strong contrast between lettering and background, and a cohesive limited color palette.",
	pattern.Portrait:    "Photorealistic portrait with natural lighting, shallow depth of field, sharp focus on the eyes, and a softly blurred background.",
	pattern.General:     "High level of detail, professional composition, balanced lighting, and rich color.",
}

var quotedText = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)

// Assemble builds the final prompt from the request and its pattern. It
// is deterministic: the same inputs always produce the same string.
func Assemble(request string, p pattern.Pattern) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(request))
	b.WriteString("\n\n")
	b.WriteString(scaffolds[p])

	if p == pattern.Typography || p == pattern.Infographic {
		b.WriteString("\n")
		b.WriteString(textInstruction(request))
	}

	return b.String()
}

// textInstruction tells the model to reproduce literal text faithfully.
// Quoted segments of the request are named verbatim so the model treats
// them as copy, not as subject matter.
func textInstruction(request string) string {
	literals := QuotedSegments(request)
	if len(literals) == 0 {
		return "Render any text in the image exactly as specified in the request, with correct spelling and no substitutions."
	}

	quoted := make([]string, len(literals))
	for i, lit := range literals {
		quoted[i] = fmt.Sprintf("%q", lit)
	}
	return fmt.Sprintf("Render the text %s exactly as written, with correct spelling and no substitutions.",
		strings.Join(quoted, " and "))
}

// QuotedSegments returns the contents of single- or double-quoted spans
// in the request, in order of appearance.
func QuotedSegments(request string) []string {
	var out []string
	for _, m := range quotedText.FindAllStringSubmatch(request, -1) {
		if m[1] != "" {
			out = append(out, m[1])
		} else if m[2] != "" {
			out = append(out, m[2])
		}
	}
	return out
}
