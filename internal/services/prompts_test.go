package services

import (
	"strings"
	"testing"
)

func TestNotesPromptContainsRequestFields(t *testing.T) {
	prompt := NotesPrompt("Photosynthesis", "Biology", "beginner", "focus on diagrams")

	for _, want := range []string{
		"Photosynthesis",
		"Biology",
		"beginner",
		"Additional Instructions: focus on diagrams",
		"## 8. Summary & Key Takeaways",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("notes prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestNotesPromptOmitsEmptyInstructions(t *testing.T) {
	prompt := NotesPrompt("Photosynthesis", "Biology", "beginner", "")
	if strings.Contains(prompt, "Additional Instructions") {
		t.Fatalf("notes prompt should not mention instructions when none are given")
	}
}

func TestSlidesPromptContainsCounts(t *testing.T) {
	prompt := SlidesPrompt("Gravity", "Physics", "advanced", 12)

	for _, want := range []string{
		"Create a 12-slide presentation",
		"Gravity",
		"Physics",
		"advanced",
		"- 9 content slides",
		"---",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("slides prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestMCQPromptRequestsJSONShape(t *testing.T) {
	prompt := MCQPrompt("Recursion", "Computer Science", "intermediate", 10)

	for _, want := range []string{
		"Generate 10 high-quality multiple choice questions",
		"Recursion",
		`"correct_answer"`,
		`"explanation"`,
		`"options"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("mcq prompt missing %q:\n%s", want, prompt)
		}
	}
}
