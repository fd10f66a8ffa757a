package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet mismatch")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("unset left %U", c.Grid[0][0])
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(2, 0)
	c.Set(0, 4)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("out of range dot was drawn: %U", c.Grid[0][0])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.Dots()
	if w != 8 || h != 8 {
		t.Fatalf("dots = %dx%d, want 8x8", w, h)
	}

	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot (%d,%d) not set", i, i)
		}
	}
	if c.IsSet(7, 0) {
		t.Error("off-diagonal dot set")
	}

	c.Clear()
	c.DrawLine(5, 2, 0, 2)
	for x := 0; x <= 5; x++ {
		if !c.IsSet(x, 2) {
			t.Errorf("horizontal dot (%d,2) not set", x)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	if got := strings.Count(s, "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d", got)
	}
	if len(c.Rows()[0]) != 3*len(string(rune(brailleBlank))) {
		t.Errorf("row has wrong length: %q", c.Rows()[0])
	}
}
