package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func writeDeck(t *testing.T, d *Deck) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("package is not a readable zip: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s missing from package", name)
	return ""
}

func TestDeckPackageStructure(t *testing.T) {
	d := NewDeck()
	d.AddSlide("First", []string{"one", "two"})
	d.AddSlide("Second", []string{"three"})

	if d.SlideCount() != 2 {
		t.Fatalf("expected 2 slides, got %d", d.SlideCount())
	}

	zr := writeDeck(t, d)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide2.xml.rels",
	} {
		readPart(t, zr, name)
	}

	pres := readPart(t, zr, "ppt/presentation.xml")
	if strings.Count(pres, "<p:sldId ") != 2 {
		t.Fatalf("presentation must list 2 slides:\n%s", pres)
	}

	types := readPart(t, zr, "[Content_Types].xml")
	if !strings.Contains(types, "/ppt/slides/slide2.xml") {
		t.Fatalf("content types missing second slide override")
	}
}

func TestSlideTextAndEscaping(t *testing.T) {
	d := NewDeck()
	d.AddSlide("Cats & Dogs", []string{"a < b", "plain line"})

	zr := writeDeck(t, d)
	slide := readPart(t, zr, "ppt/slides/slide1.xml")

	if !strings.Contains(slide, "Cats &amp; Dogs") {
		t.Fatalf("title not escaped:\n%s", slide)
	}
	if !strings.Contains(slide, "a &lt; b") {
		t.Fatalf("body line not escaped:\n%s", slide)
	}
	if !strings.Contains(slide, "plain line") {
		t.Fatalf("body line missing:\n%s", slide)
	}
}

func TestSlideWithoutBodyOmitsBodyBox(t *testing.T) {
	d := NewDeck()
	d.AddSlide("Title Only", nil)

	zr := writeDeck(t, d)
	slide := readPart(t, zr, "ppt/slides/slide1.xml")

	if strings.Contains(slide, `name="Body"`) {
		t.Fatalf("empty slide should not carry a body box:\n%s", slide)
	}
	if !strings.Contains(slide, "Title Only") {
		t.Fatalf("title text missing:\n%s", slide)
	}
}

func TestEmptyDeckStillWrites(t *testing.T) {
	zr := writeDeck(t, NewDeck())
	pres := readPart(t, zr, "ppt/presentation.xml")
	if strings.Contains(pres, "<p:sldId ") {
		t.Fatalf("empty deck must not reference slides")
	}
}
