package poster

import (
	"image"
	"image/color"
	"testing"
)

func TestCropFrame(t *testing.T) {
	tests := []struct {
		Width  int
		Height int
		Lo     XY
		Hi     XY
		Want   image.Rectangle
	}{
		{Width: 200, Height: 100, Lo: NewXY(50, 80), Hi: NewXY(150, 20), Want: image.Rect(40, 20, 160, 80)},
		{Width: 100, Height: 200, Lo: NewXY(20, 150), Hi: NewXY(80, 50), Want: image.Rect(20, 40, 80, 160)},
		{Width: 100, Height: 100, Lo: NewXY(10, 10), Hi: NewXY(10, 10), Want: image.Rect(0, 0, 100, 100)},
	}
	for _, tt := range tests {
		got := CropFrame(tt.Width, tt.Height, tt.Lo, tt.Hi)
		if got != tt.Want {
			t.Errorf("%dx%d: frame mismatched! want %s, got %s", tt.Width, tt.Height, tt.Want, got)
		}
	}
}

func TestMapImageSize(t *testing.T) {
	bbox := bboxOf(40, 0, 50, 10)
	w, h := MapImageSize(bbox, NewXY(100, 200), 1024)
	if max(w, h) != 1024 {
		t.Errorf("largest side should be the limit, got %dx%d", w, h)
	}
	if w, h := MapImageSize(bbox, NewXY(0, 200), 1024); w != 0 || h != 0 {
		t.Errorf("empty size should give an empty image, got %dx%d", w, h)
	}
}

func TestCropImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	src.Set(5, 5, color.RGBA{R: 255, A: 255})
	out := CropImage(src, image.Rect(4, 4, 8, 8))
	if b := out.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("size mismatched! got %s", b)
	}
	if r, _, _, _ := out.At(1, 1).RGBA(); r != 0xffff {
		t.Errorf("pixel should be copied from source")
	}
	if _, _, _, a := out.At(0, 0).RGBA(); a != 0 {
		t.Errorf("pixel outside of the marked one should be transparent")
	}
}
