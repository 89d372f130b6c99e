package layout

import (
	"image"
	"testing"
)

func TestCut(t *testing.T) {
	r := Rectangle(image.Rect(0, 0, 180, 148))
	header, rest := r.CutTop(40)
	logo, date := header.CutStart(45)
	_, steps := rest.CutBottom(40)
	tests := []struct {
		name string
		got  Rectangle
		want image.Rectangle
	}{
		{"header", header, image.Rect(0, 0, 180, 40)},
		{"logo", logo, image.Rect(0, 0, 45, 40)},
		{"date", date, image.Rect(45, 0, 180, 40)},
		{"steps", steps, image.Rect(0, 108, 180, 148)},
		{"band", r.Band(49, 79), image.Rect(0, 49, 180, 128)},
	}
	for _, test := range tests {
		if image.Rectangle(test.got) != test.want {
			t.Errorf("%s: got %v, want %v", test.name, test.got, test.want)
		}
	}
}

func TestCutClamps(t *testing.T) {
	r := Rectangle(image.Rect(0, 0, 30, 30))
	top, bottom := r.CutTop(40)
	if image.Rectangle(top) != image.Rect(0, 0, 30, 30) || !image.Rectangle(bottom).Empty() {
		t.Errorf("CutTop(40) = %v, %v", top, bottom)
	}
	start, end := r.CutEnd(50)
	if !image.Rectangle(start).Empty() || image.Rectangle(end) != image.Rect(0, 0, 30, 30) {
		t.Errorf("CutEnd(50) = %v, %v", start, end)
	}
	if got, want := r.Center(image.Pt(10, 20)), image.Pt(10, 5); got != want {
		t.Errorf("Center = %v, want %v", got, want)
	}
}
