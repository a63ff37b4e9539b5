package game

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}

	cases := []struct {
		p    Point
		want bool
	}{
		{Point{10, 10}, true},
		{Point{29.9, 29.9}, true},
		{Point{30, 15}, false},
		{Point{15, 30}, false},
		{Point{9, 15}, false},
	}

	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Errorf("%v: expected %v, got %v", c.p, c.want, got)
		}
	}
}

func TestGridLayout(t *testing.T) {
	l := WebLayout()

	if len(l) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(l))
	}

	if l[0] != (Rect{X: 24, Y: 24, W: 150, H: 210}) {
		t.Errorf("unexpected first slot %+v", l[0])
	}
	if l[3].X != 24+3*174 {
		t.Errorf("unexpected fourth slot x %v", l[3].X)
	}
	if l[4].Y != 24+234 || l[4].X != 24 {
		t.Errorf("fifth slot should start the second row: %+v", l[4])
	}

	b := l.Bounds()
	if b.W != 720 || b.H != 492 {
		t.Errorf("unexpected bounds %+v", b)
	}
}
