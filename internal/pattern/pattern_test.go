package pattern

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    Pattern
	}{
		{"diagram keyword", "Create a diagram of the water cycle", Infographic},
		{"how it works", "Show how a jet engine works", Infographic},
		{"flowchart", "A flowchart for user onboarding", Infographic},
		{"explaining", "An image explaining photosynthesis", Infographic},
		{"timeline", "A timeline of the space race", Infographic},
		{"poster", "Make a poster for a jazz night called 'Blue Moon' on Friday", Typography},
		{"sign that says", "A sign that says open 24 hours", Typography},
		{"logo", "A minimalist logo for a coffee shop", Typography},
		{"banner", "Design a banner for the summer sale", Typography},
		{"portrait keyword", "A portrait of an old fisherman", Portrait},
		{"woman with", "A woman with red hair in a forest", Portrait},
		{"headshot", "Professional headshot, studio lighting", Portrait},
		{"men plural", "Two men playing chess in a park", Portrait},
		{"no cues", "Generate an image of a fluffy cat on a cloud", General},
		{"empty input", "", General},
		{"whitespace only", "   ", General},
		{"woman not man substring trap", "A humanoid robot in a garden", General},
		{"case insensitive", "A POSTER for the school play", Typography},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.request); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.request, got, tt.want)
			}
		})
	}
}

// Priority is fixed: infographic beats typography beats portrait.
func TestClassify_Priority(t *testing.T) {
	tests := []struct {
		name    string
		request string
		want    Pattern
	}{
		{"infographic beats typography", "An infographic poster about recycling", Infographic},
		{"typography beats portrait", "A poster of a woman holding flowers", Typography},
		{"infographic beats portrait", "A diagram of a person doing a deadlift", Infographic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.request); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.request, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	request := "A sign that says welcome home"
	first := Classify(request)
	for i := 0; i < 10; i++ {
		if got := Classify(request); got != first {
			t.Fatalf("Classify not deterministic: %v then %v", first, got)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Pattern
		wantOK bool
	}{
		{"infographic", Infographic, true},
		{"typography", Typography, true},
		{"portrait", Portrait, true},
		{"general", General, true},
		{"  Portrait ", Portrait, true},
		{"landscape", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAll(t *testing.T) {
	if got := All(); len(got) != 4 {
		t.Errorf("All() returned %d patterns, want 4", len(got))
	}
}
