package xcursor

import "testing"

func TestLeftPtrGlyph(t *testing.T) {
	// XC_left_ptr in X11/cursorfont.h.
	if LeftPtr != 68 {
		t.Fatalf("LeftPtr = %d, want 68", LeftPtr)
	}
}
