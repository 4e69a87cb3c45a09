package services

import (
	"fmt"
	"strings"
)

// Prompt builders are pure string formatting: no I/O, no failure modes.
// The MCQ template asks the model for a specific JSON shape, but that is
// a request, not a guarantee; the gateway parses defensively.

func NotesPrompt(topic, subject, difficulty, customInstructions string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert %s professor. Create comprehensive study notes for %q.\n\n", subject, topic)
	fmt.Fprintf(&sb, "Difficulty Level: %s\n", difficulty)
	fmt.Fprintf(&sb, "Subject: %s\n", subject)
	if customInstructions != "" {
		fmt.Fprintf(&sb, "Additional Instructions: %s\n", customInstructions)
	}
	fmt.Fprintf(&sb, `
Structure your notes with:
# %s - Study Notes

## 1. Introduction & Overview
## 2. Key Concepts & Definitions
## 3. Detailed Explanations
## 4. Examples & Applications
## 5. Important Formulas/Principles
## 6. Common Misconceptions
## 7. Practice Tips
## 8. Summary & Key Takeaways

Use markdown formatting. Include practical examples and make it engaging for %s level students.`, topic, difficulty)
	return sb.String()
}

func SlidesPrompt(topic, subject, difficulty string, slideCount int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a %d-slide presentation for %q in %s.\n\n", slideCount, topic, subject)
	fmt.Fprintf(&sb, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&sb, "Target Audience: %s level students\n", difficulty)
	fmt.Fprintf(&sb, `
Format each slide as:
---
# Slide X: Title
## Subtitle (if needed)
- Key point 1
- Key point 2
- Key point 3
---

Include:
- Title slide
- Overview/Agenda
- %d content slides
- Conclusion slide

Keep each slide focused and visually appealing. Use examples and analogies appropriate for %s level.`, slideCount-3, difficulty)
	return sb.String()
}

func MCQPrompt(topic, subject, difficulty string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d high-quality multiple choice questions for %q in %s.\n\n", count, topic, subject)
	fmt.Fprintf(&sb, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&sb, "Question Count: %d\n", count)
	sb.WriteString(`
Requirements:
- Test conceptual understanding, not just memorization
- Include application-based questions
- Provide detailed explanations
- Ensure distractors are plausible

Return as valid JSON:
{
  "questions": [
    {
      "id": 1,
      "question": "Question text?",
      "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
      "correct_answer": "A",
      "explanation": "Why A is correct and others are wrong."
    }
  ]
}`)
	return sb.String()
}
