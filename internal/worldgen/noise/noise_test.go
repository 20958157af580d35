package noise

import "testing"

func TestEval2DNormalization(t *testing.T) {
	n := New(12345)
	for x := 0; x < 50; x++ {
		for y := 0; y < 50; y++ {
			v := n.Eval2D(float64(x)*0.1, float64(y)*0.1)
			if v < 0 || v > 1 {
				t.Fatalf("Eval2D(%d,%d) = %f out of [0,1]", x, y, v)
			}
		}
	}
}

func TestEval3DNormalization(t *testing.T) {
	n := New(12345)
	for i := 0; i < 50; i++ {
		v := n.Eval3D(float64(i)*0.13, float64(i)*0.07, float64(i)*0.21)
		if v < 0 || v > 1 {
			t.Fatalf("Eval3D(%d) = %f out of [0,1]", i, v)
		}
	}
}

func TestOctave3DNormalization(t *testing.T) {
	n := New(42)
	for i := 0; i < 200; i++ {
		v := n.Octave3D(float64(i)*0.05, float64(i)*0.03, float64(i)*0.02, 6, 2.0, 0.5)
		if v < 0 || v > 1 {
			t.Fatalf("Octave3D(%d) = %f out of [0,1]", i, v)
		}
	}
}

func TestDeterministicSameSeed(t *testing.T) {
	a := New(7)
	b := New(7)
	for i := 0; i < 20; i++ {
		x, y, z := float64(i)*0.11, float64(i)*0.17, float64(i)*0.23
		if a.Octave3D(x, y, z, 5, 2.0, 0.5) != b.Octave3D(x, y, z, 5, 2.0, 0.5) {
			t.Fatalf("same seed diverged at sample %d", i)
		}
	}
}

func TestSeamContinuityOnCircle(t *testing.T) {
	// Sampling the same 3-D point twice (as happens at x=0 and x=W on the
	// cylindrical embedding) must be identical: there is no seam because
	// there is no special case, only a shared sample point.
	n := New(1)
	v1 := n.Octave3D(1.0, 2.0, 3.0, 5, 2.0, 0.5)
	v2 := n.Octave3D(1.0, 2.0, 3.0, 5, 2.0, 0.5)
	if v1 != v2 {
		t.Errorf("identical 3D points must produce identical noise: %f != %f", v1, v2)
	}
}
