package spinview

import (
	"testing"
)

var testViewport = RenderOptions{Width: 800, Height: 600}

func TestProjectAllFaces(t *testing.T) {
	s := NewScene(DefaultConfig())
	tris := s.Project(testViewport)
	want := 12 + 16*100*2 + 36
	if len(tris) != want {
		t.Errorf("Project returned %d triangles, want %d", len(tris), want)
	}
}

func TestProjectSortedBackToFront(t *testing.T) {
	s := NewScene(DefaultConfig())
	tris := s.Project(testViewport)
	for i := 1; i < len(tris); i++ {
		if tris[i].Depth > tris[i-1].Depth {
			t.Fatalf("triangle %d depth %v is farther than %d depth %v", i, tris[i].Depth, i-1, tris[i-1].Depth)
		}
	}
}

func TestProjectScreenSide(t *testing.T) {
	s := NewScene(DefaultConfig())
	tris := s.Project(testViewport)

	var sum [EntryCount]float64
	var n [EntryCount]int
	for _, tri := range tris {
		for _, p := range tri.P {
			sum[tri.Entry] += p.X()
			n[tri.Entry]++
		}
	}
	center := testViewport.Width / 2
	if avg := sum[0] / float64(n[0]); !approxEqual(avg, center, 20) {
		t.Errorf("box centered at x=%v, want near %v", avg, center)
	}
	if avg := sum[1] / float64(n[1]); avg <= center {
		t.Errorf("torus at x=%v, want right of center", avg)
	}
	if avg := sum[2] / float64(n[2]); avg >= center {
		t.Errorf("dodecahedron at x=%v, want left of center", avg)
	}
}

func TestProjectSkipsHidden(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Panels()[1].SetVisible(false)
	for _, tri := range s.Project(testViewport) {
		if tri.Entry == 1 {
			t.Fatal("hidden torus produced a triangle")
		}
	}
}

func TestProjectUnlitShade(t *testing.T) {
	s := NewScene(DefaultConfig())
	for _, tri := range s.Project(testViewport) {
		if tri.Shade != 1 {
			t.Fatalf("unlit shade = %v, want 1", tri.Shade)
		}
		if tri.Fill() != ColorHotPink {
			t.Fatalf("unlit fill = %v, want hot pink", tri.Fill())
		}
	}
}

func TestProjectLitShadeRange(t *testing.T) {
	s := NewScene(DefaultConfig())
	opts := testViewport
	opts.Lit = true
	var varied bool
	tris := s.Project(opts)
	for _, tri := range tris {
		if tri.Shade < ambientLight-epsilon || tri.Shade > ambientLight+directLight+epsilon {
			t.Fatalf("lit shade %v outside [%v, %v]", tri.Shade, ambientLight, ambientLight+directLight)
		}
		if tri.Shade != tris[0].Shade {
			varied = true
		}
	}
	if !varied {
		t.Error("lit faces should not all share one shade")
	}
}

func TestProjectEmptyViewport(t *testing.T) {
	s := NewScene(DefaultConfig())
	if tris := s.Project(RenderOptions{}); len(tris) != 0 {
		t.Errorf("empty viewport produced %d triangles", len(tris))
	}
	if len(s.Rendered()) != 0 {
		t.Errorf("Rendered() = %v, want empty", s.Rendered())
	}
}

func TestProjectDropsFacesBehindCamera(t *testing.T) {
	cfg := DefaultConfig()
	// Eye inside the box: most faces straddle the near plane.
	cfg.CameraEye[1] = 0
	cfg.CameraEye[2] = 0.05
	s := NewScene(cfg)
	tris := s.Project(testViewport)
	for _, tri := range tris {
		if tri.Depth < s.Camera().Near {
			t.Fatalf("triangle depth %v in front of the near plane", tri.Depth)
		}
	}
	if len(tris) >= 12+16*100*2+36 {
		t.Error("expected faces behind the camera to be dropped")
	}
}

func TestProjectReusesBuffer(t *testing.T) {
	s := NewScene(DefaultConfig())
	a := s.Project(testViewport)
	b := s.Project(testViewport)
	if len(a) != len(b) || &a[0] != &b[0] {
		t.Error("Project should reuse its triangle buffer")
	}
}
