package gfx

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPerspective_MatchesGluPerspective(t *testing.T) {
	m := Perspective(45, 800.0/600.0, 0.1, 100)

	f := float32(1 / math.Tan(math.Pi/8))
	want := map[int]float32{
		0:  f / (800.0 / 600.0),
		5:  f,
		10: (100 + 0.1) / (0.1 - 100),
		11: -1,
		14: 2 * 100 * 0.1 / (0.1 - 100),
	}
	for i := range m {
		w := want[i]
		if !near(m[i], w) {
			t.Fatalf("m[%d] = %v, want %v", i, m[i], w)
		}
	}
}

func TestTranslate_MovesPoint(t *testing.T) {
	p := Translate(-1.5, 0, -6).MulVec4(Vec4{0, 1, 0, 1})
	if p != (Vec4{-1.5, 1, -6, 1}) {
		t.Fatalf("unexpected point %v", p)
	}
}

func TestMul_IdentityAndOrder(t *testing.T) {
	a := Translate(1, 2, 3)
	if a.Mul(Identity()) != a || Identity().Mul(a) != a {
		t.Fatalf("identity must not change the matrix")
	}

	// Translations compose additively.
	if got := a.Mul(Translate(1, 1, 1)); got != Translate(2, 3, 4) {
		t.Fatalf("unexpected product %v", got)
	}

	p := Vec4{0, 0, -6, 1}
	proj := Perspective(45, 1, 0.1, 100)
	viaProduct := proj.Mul(Identity()).MulVec4(p)
	direct := proj.MulVec4(p)
	for i := range viaProduct {
		if !near(viaProduct[i], direct[i]) {
			t.Fatalf("component %d: %v != %v", i, viaProduct[i], direct[i])
		}
	}
	if !near(direct[3], 6) {
		t.Fatalf("expected clip w 6, got %v", direct[3])
	}
}
