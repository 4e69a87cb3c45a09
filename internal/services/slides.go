package services

import (
	"strings"

	"github.com/studyforge/studyforge-backend/internal/types"
)

// ParseSlides splits slide-delimited markdown into discrete slides.
// Blocks are separated by lines consisting of ---; within a block the
// first non-empty line (leading heading markers stripped) is the title
// and the remaining non-empty lines become bullets. Blocks with no
// content are dropped.
func ParseSlides(markdown string) []types.Slide {
	var slides []types.Slide
	for _, block := range splitBlocks(markdown) {
		lines := contentLines(block)
		if len(lines) == 0 {
			continue
		}
		slide := types.Slide{
			Title:   stripMarkers(lines[0]),
			Bullets: []string{},
		}
		for _, line := range lines[1:] {
			slide.Bullets = append(slide.Bullets, stripMarkers(line))
		}
		slides = append(slides, slide)
	}
	return slides
}

func splitBlocks(markdown string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) == "---" {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}
	blocks = append(blocks, strings.Join(current, "\n"))
	return blocks
}

func contentLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// stripMarkers removes leading heading and list markers, keeping the
// line's text.
func stripMarkers(line string) string {
	s := strings.TrimLeft(line, "#")
	s = strings.TrimSpace(s)
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(s, marker) {
			s = strings.TrimSpace(s[len(marker):])
			break
		}
	}
	return s
}
