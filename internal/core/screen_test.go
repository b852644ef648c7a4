package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, 'X', ColorRed)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v", got)
	}

	s.Set(5, 5, 'Y')
	if got := s.GetCell(5, 5); got.Rune != 'Y' || got.Color != ColorRed {
		t.Errorf("Set should keep the color, got %+v", got)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetCell(0, -1, 'A', ColorBlue)
	if s.Get(-1, 0) != ' ' || s.Get(0, 100) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(7, 0, "hello", ColorGreen)

	if got := s.Row(0); got != "       hel" {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(7, 0).Color != ColorGreen {
		t.Error("text should carry its color")
	}

	s.DrawTextCentered(1, "ab", ColorDefault)
	if got := s.Row(1); got != "    ab    " {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawBox(NewRect(0, 0, 6, 3), ColorGray)

	expected := strings.Join([]string{
		"┌────┐",
		"│    │",
		"└────┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("box =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd", ColorDefault)
	s.Resize(2, 3)

	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "ab" {
		t.Errorf("Row(0) = %q, expected preserved prefix", got)
	}
	if got := s.Row(2); got != "  " {
		t.Errorf("Row(2) = %q, expected blank", got)
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillRect(NewRect(1, 1, 2, 2), '#', ColorYellow)

	if got := s.String(); got != "    \n ## \n ## \n    " {
		t.Errorf("fill =\n%s", got)
	}
}
