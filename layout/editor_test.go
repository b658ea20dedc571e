package layout

import (
	"image"
	"testing"
)

func newVisibleEditor(t *testing.T) (*Editor, *int) {
	t.Helper()
	e := NewEditor(48)
	e.SetVisible(true)
	calls := 0
	e.SetOnResize(func(*Editor) { calls++ })
	return e, &calls
}

func drag(e *Editor, pointer int64, from, to image.Point) {
	e.HandleTouch(Touch{Pointer: pointer, Action: TouchPress, X: from.X, Y: from.Y})
	e.HandleTouch(Touch{Pointer: pointer, Action: TouchMove, X: to.X, Y: to.Y})
	e.HandleTouch(Touch{Pointer: pointer, Action: TouchRelease, X: to.X, Y: to.Y})
}

func TestEditor_DefaultRect(t *testing.T) {
	e := NewEditor(48)
	if got := e.Rect(); got != DefaultRect {
		t.Fatalf("expected %v, got %v", DefaultRect, got)
	}
	if e.Visible() {
		t.Fatal("new editor should be hidden")
	}
}

func TestEditor_DragTopLeftCorner(t *testing.T) {
	e, _ := newVisibleEditor(t)

	drag(e, 1, image.Pt(0, 0), image.Pt(50, 30))

	want := [4]image.Point{{50, 30}, {500, 30}, {500, 500}, {50, 500}}
	if got := e.Corners(); got != want {
		t.Fatalf("corners mismatch: expected %v, got %v", want, got)
	}
	if got := e.Rect(); got != image.Rect(50, 30, 500, 500) {
		t.Fatalf("rect mismatch: got %v", got)
	}
}

func TestEditor_CornerDragMovesOnlyAdjacent(t *testing.T) {
	tests := []struct {
		name   string
		corner int
		delta  image.Point
	}{
		{"top-left", CornerTopLeft, image.Pt(20, 10)},
		{"top-right", CornerTopRight, image.Pt(-20, 15)},
		{"bottom-right", CornerBottomRight, image.Pt(-30, -40)},
		{"bottom-left", CornerBottomLeft, image.Pt(25, -5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newVisibleEditor(t)
			e.SetRect(image.Rect(100, 100, 300, 300))
			before := e.Corners()

			start := before[tt.corner]
			drag(e, 7, start, start.Add(tt.delta))
			after := e.Corners()

			opposite := (tt.corner + 2) % 4
			if after[opposite] != before[opposite] {
				t.Fatalf("opposite corner moved: %v -> %v", before[opposite], after[opposite])
			}
			moved := start.Add(tt.delta)
			if after[tt.corner] != moved {
				t.Fatalf("grabbed corner: expected %v, got %v", moved, after[tt.corner])
			}
			// Neighbours share exactly one coordinate with the grabbed corner.
			for _, n := range []int{(tt.corner + 1) % 4, (tt.corner + 3) % 4} {
				if after[n].X != moved.X && after[n].Y != moved.Y {
					t.Fatalf("neighbour %d did not follow: %v", n, after[n])
				}
				if after[n] == before[n] && tt.delta.X != 0 && tt.delta.Y != 0 {
					t.Fatalf("neighbour %d unchanged", n)
				}
			}
		})
	}
}

func TestEditor_DragWholeRect(t *testing.T) {
	e, calls := newVisibleEditor(t)
	e.SetRect(image.Rect(100, 100, 200, 150))
	*calls = 0

	drag(e, 3, image.Pt(150, 125), image.Pt(170, 95))

	if got := e.Rect(); got != image.Rect(120, 70, 220, 120) {
		t.Fatalf("rect mismatch: got %v", got)
	}
	if *calls != 1 {
		t.Fatalf("expected 1 notification for one move, got %d", *calls)
	}
}

func TestEditor_DragWholeRectClampsAtZero(t *testing.T) {
	e, _ := newVisibleEditor(t)
	e.SetRect(image.Rect(100, 100, 200, 200))

	drag(e, 1, image.Pt(150, 150), image.Pt(0, 0))

	for _, c := range e.Corners() {
		if c.X < 0 || c.Y < 0 {
			t.Fatalf("negative corner %v", c)
		}
	}
	if got := e.Rect(); got != image.Rect(0, 0, 50, 50) {
		t.Fatalf("rect mismatch: got %v", got)
	}
}

func TestEditor_CornerClampedNonNegative(t *testing.T) {
	e, _ := newVisibleEditor(t)
	e.SetRect(image.Rect(10, 10, 100, 100))

	drag(e, 1, image.Pt(10, 10), image.Pt(-200, -300))

	if got := e.Corners()[CornerTopLeft]; got != image.Pt(0, 0) {
		t.Fatalf("expected top-left clamped to origin, got %v", got)
	}
}

func TestEditor_NoUpperClamp(t *testing.T) {
	e, _ := newVisibleEditor(t)

	drag(e, 1, image.Pt(500, 500), image.Pt(5000, 4000))

	if got := e.Rect(); got != image.Rect(0, 0, 5000, 4000) {
		t.Fatalf("rect mismatch: got %v", got)
	}
}

func TestEditor_CrossedCornersNormalise(t *testing.T) {
	e, _ := newVisibleEditor(t)
	e.SetRect(image.Rect(100, 100, 200, 200))

	drag(e, 1, image.Pt(100, 100), image.Pt(300, 250))

	r := e.Rect()
	if r.Min.X > r.Max.X || r.Min.Y > r.Max.Y {
		t.Fatalf("rect not normalised: %v", r)
	}
	if r != image.Rect(200, 200, 300, 250) {
		t.Fatalf("rect mismatch: got %v", r)
	}
}

func TestEditor_PressOutsideNotClaimed(t *testing.T) {
	e, calls := newVisibleEditor(t)
	e.SetRect(image.Rect(100, 100, 200, 200))
	*calls = 0

	if e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 400, Y: 400}) {
		t.Fatal("press outside rect and handles should pass through")
	}
	if e.Dragging() {
		t.Fatal("no drag should be active")
	}
	if e.HandleTouch(Touch{Pointer: 1, Action: TouchMove, X: 410, Y: 410}) {
		t.Fatal("move without claimed press should pass through")
	}
	if *calls != 0 {
		t.Fatalf("expected no notifications, got %d", *calls)
	}
}

func TestEditor_HandleOutsideRectIsCaptured(t *testing.T) {
	e, _ := newVisibleEditor(t)
	e.SetRect(image.Rect(100, 100, 200, 200))

	// Outside the rect but within the capture radius of the bottom-right handle.
	if !e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 220, Y: 210}) {
		t.Fatal("press near handle should be claimed")
	}
	e.HandleTouch(Touch{Pointer: 1, Action: TouchMove, X: 240, Y: 230})
	if got := e.Rect(); got != image.Rect(100, 100, 220, 220) {
		t.Fatalf("rect mismatch: got %v", got)
	}
}

func TestEditor_ClosestHandleWins(t *testing.T) {
	e, _ := newVisibleEditor(t)
	// Small rect: every handle is within the capture radius of the centre.
	e.SetRect(image.Rect(100, 100, 120, 120))

	e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 118, Y: 103})
	e.HandleTouch(Touch{Pointer: 1, Action: TouchMove, X: 128, Y: 93})

	if got := e.Corners()[CornerTopRight]; got != image.Pt(130, 90) {
		t.Fatalf("expected top-right grabbed, corners %v", e.Corners())
	}
}

func TestEditor_SecondPointerIgnored(t *testing.T) {
	e, _ := newVisibleEditor(t)

	if !e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 0, Y: 0}) {
		t.Fatal("first press should be claimed")
	}
	if e.HandleTouch(Touch{Pointer: 2, Action: TouchPress, X: 250, Y: 250}) {
		t.Fatal("second pointer press should be ignored")
	}
	if e.HandleTouch(Touch{Pointer: 2, Action: TouchMove, X: 300, Y: 300}) {
		t.Fatal("second pointer move should be ignored")
	}
	if e.HandleTouch(Touch{Pointer: 2, Action: TouchRelease, X: 300, Y: 300}) {
		t.Fatal("second pointer release should be ignored")
	}
	if !e.Dragging() {
		t.Fatal("first pointer drag should still be active")
	}
	if got := e.Rect(); got != DefaultRect {
		t.Fatalf("rect changed by ignored pointer: %v", got)
	}
}

func TestEditor_ReleaseDoesNotNotify(t *testing.T) {
	e, calls := newVisibleEditor(t)
	*calls = 0

	e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 0, Y: 0})
	e.HandleTouch(Touch{Pointer: 1, Action: TouchMove, X: 5, Y: 5})
	e.HandleTouch(Touch{Pointer: 1, Action: TouchMove, X: 10, Y: 10})
	e.HandleTouch(Touch{Pointer: 1, Action: TouchRelease, X: 10, Y: 10})

	if *calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", *calls)
	}
	if e.Dragging() {
		t.Fatal("release should end the drag")
	}
}

func TestEditor_CancelEndsDrag(t *testing.T) {
	e, _ := newVisibleEditor(t)

	e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 0, Y: 0})
	if !e.HandleTouch(Touch{Pointer: 1, Action: TouchCancel}) {
		t.Fatal("cancel of tracked pointer should be consumed")
	}
	if e.Dragging() {
		t.Fatal("cancel should end the drag")
	}
}

func TestEditor_HiddenIgnoresTouch(t *testing.T) {
	e := NewEditor(48)
	if e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 0, Y: 0}) {
		t.Fatal("hidden editor should not claim touches")
	}

	e.SetVisible(true)
	e.HandleTouch(Touch{Pointer: 1, Action: TouchPress, X: 0, Y: 0})
	e.SetVisible(false)
	if e.Dragging() {
		t.Fatal("hiding should abandon the drag")
	}
}

func TestEditor_SetRectNotifiesOnlyWhenVisible(t *testing.T) {
	e := NewEditor(48)
	calls := 0
	e.SetOnResize(func(*Editor) { calls++ })

	e.SetRect(image.Rect(1, 2, 3, 4))
	if calls != 0 {
		t.Fatalf("hidden SetRect should not notify, got %d", calls)
	}

	e.SetVisible(true)
	e.SetRect(image.Rect(1, 2, 3, 4))
	if calls != 1 {
		t.Fatalf("visible SetRect should notify once, got %d", calls)
	}
}

func TestEditor_SetRectIdempotent(t *testing.T) {
	e := NewEditor(48)
	r := image.Rect(12, 34, 560, 780)

	e.SetRect(r)
	corners1, rect1 := e.Corners(), e.Rect()
	e.SetRect(r)
	corners2, rect2 := e.Corners(), e.Rect()

	if corners1 != corners2 || rect1 != rect2 {
		t.Fatalf("SetRect not idempotent: %v/%v vs %v/%v", corners1, rect1, corners2, rect2)
	}
}

func TestEditor_Guide(t *testing.T) {
	tests := []struct {
		name  string
		rect  image.Rectangle
		ratio float64
		want  image.Rectangle
		ok    bool
	}{
		{"matching ratio", image.Rect(0, 0, 400, 240), TopRatio, image.Rectangle{}, false},
		{"within tolerance", image.Rect(0, 0, 401, 240), TopRatio, image.Rectangle{}, false},
		{"too wide", image.Rect(0, 0, 600, 200), 2, image.Rect(100, 0, 500, 200), true},
		{"too tall", image.Rect(0, 0, 400, 400), 2, image.Rect(0, 100, 400, 300), true},
		{"zero height", image.Rect(10, 10, 100, 10), TopRatio, image.Rectangle{}, false},
		{"zero area", image.Rect(10, 10, 10, 10), TopRatio, image.Rectangle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(48)
			e.SetDesiredRatio(tt.ratio)
			e.SetRect(tt.rect)
			before := e.Corners()

			got, ok := e.Guide()
			if ok != tt.ok {
				t.Fatalf("ok: expected %v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Fatalf("guide: expected %v, got %v", tt.want, got)
			}
			if e.Corners() != before {
				t.Fatal("guide computation mutated corners")
			}
		})
	}
}

func TestEditor_SetDesiredRatioRejectsInvalid(t *testing.T) {
	e := NewEditor(48)
	e.SetDesiredRatio(BottomRatio)
	e.SetDesiredRatio(0)
	e.SetDesiredRatio(-2)
	if e.DesiredRatio() != BottomRatio {
		t.Fatalf("expected %v, got %v", BottomRatio, e.DesiredRatio())
	}
}

func TestSourceRect(t *testing.T) {
	top := SourceRect(ScreenTop)
	if top != image.Rect(0, 0, 400, 240) {
		t.Fatalf("expected top source (0,0)-(400,240), got %v", top)
	}
	bottom := SourceRect(ScreenBottom)
	if bottom != image.Rect(40, 240, 360, 480) {
		t.Fatalf("expected bottom source (40,240)-(360,480), got %v", bottom)
	}
	if !bottom.In(image.Rect(0, 0, FrameWidth, FrameHeight)) {
		t.Fatal("expected bottom source inside the frame")
	}
}
