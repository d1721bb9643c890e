package recording

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/mortier"
)

var square = []mortier.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func TestNewRecorder(t *testing.T) {
	view := mortier.Viewport{X: 5, Y: 6, Width: 800, Height: 600}
	rec := NewRecorder(view)

	if rec.Viewport() != view {
		t.Errorf("Viewport() = %v, want %v", rec.Viewport(), view)
	}
	if rec.LineWidth() != 1 {
		t.Errorf("LineWidth() = %v, want 1", rec.LineWidth())
	}
	if !rec.Transform().IsIdentity() {
		t.Error("initial transform should be identity")
	}
}

func TestRecorderEmptyPathIsSkipped(t *testing.T) {
	rec := NewRecorder(mortier.Viewport{Width: 10, Height: 10})
	rec.Fill()
	rec.Stroke()
	rec.Clip()

	if n := len(rec.FinishRecording().Commands()); n != 0 {
		t.Errorf("got %d commands, want 0", n)
	}
}

func TestRecorderTransformAppliedAtRecordTime(t *testing.T) {
	rec := NewRecorder(mortier.Viewport{Width: 100, Height: 100})
	rec.SetTransform(mortier.Translate(10, 20).Multiply(mortier.Scale(2, 2)))
	rec.DrawPolygon(square)
	rec.Stroke()

	r := rec.FinishRecording()
	cmd, ok := r.Commands()[0].(StrokePathCommand)
	if !ok {
		t.Fatalf("first command is %T, want StrokePathCommand", r.Commands()[0])
	}
	got := r.Resources().GetPath(cmd.Path).Bounds()
	want := mortier.NewRect(10, 20, 2, 2)
	if got != want {
		t.Errorf("stroked path bounds = %v, want %v", got, want)
	}
}

func TestRecorderSaveRestore(t *testing.T) {
	rec := NewRecorder(mortier.Viewport{Width: 10, Height: 10})
	rec.SetColor(mortier.Color{R: 255})
	rec.SetLineWidth(5)
	rec.SetLineCap(LineCapRound)

	rec.Save()
	rec.SetColor(mortier.Color{G: 255})
	rec.SetLineWidth(1)
	rec.SetLineJoin(LineJoinBevel)
	rec.SetTransform(mortier.Scale(3, 3))
	rec.Restore()

	rec.DrawLine(mortier.Pt(0, 0), mortier.Pt(1, 1))
	rec.Stroke()

	r := rec.FinishRecording()
	cmds := r.Commands()
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	sc := cmds[2].(StrokePathCommand)
	want := Stroke{Width: 5, Cap: LineCapRound, Join: LineJoinMiter}
	if diff := cmp.Diff(want, sc.Stroke); diff != "" {
		t.Errorf("stroke mismatch (-want +got):\n%s", diff)
	}
	if got := BrushColor(r.Resources().GetBrush(sc.Brush)); got != (mortier.Color{R: 255}) {
		t.Errorf("brush color = %v, want red", got)
	}
	if got := r.Resources().GetPath(sc.Path).Bounds(); got != mortier.NewRect(0, 0, 1, 1) {
		t.Errorf("transform not restored: bounds %v", got)
	}
}

func TestRecorderRestoreEmptyStack(t *testing.T) {
	rec := NewRecorder(mortier.Viewport{Width: 10, Height: 10})
	rec.Restore()
	rec.EndGroup()
	if n := len(rec.FinishRecording().Commands()); n != 0 {
		t.Errorf("got %d commands, want 0", n)
	}
}

func TestFinishRecordingBalances(t *testing.T) {
	rec := NewRecorder(mortier.Viewport{Width: 10, Height: 10})
	rec.Save()
	rec.BeginGroup("a")
	rec.BeginGroup("b")

	var got []CommandType
	for _, c := range rec.FinishRecording().Commands() {
		got = append(got, c.Type())
	}
	want := []CommandType{CmdSave, CmdBeginGroup, CmdBeginGroup, CmdEndGroup, CmdEndGroup, CmdRestore}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordingPlayback(t *testing.T) {
	view := mortier.Viewport{Width: 40, Height: 30}
	rec := NewRecorder(view)
	rec.ClipViewport()
	rec.BeginGroup("tile-1")
	rec.SetColor(mortier.Color{R: 255})
	rec.SetLineWidth(2)
	rec.DrawPolygon(square)
	rec.Stroke()
	rec.SetColor(mortier.Color{B: 255})
	rec.DrawCircle(5, 5, 1)
	rec.Fill()
	rec.EndGroup()
	rec.ResetClip()

	b := newMockBackend("mock")
	if err := rec.FinishRecording().Playback(b); err != nil {
		t.Fatalf("Playback: %v", err)
	}

	want := []string{
		"SetClip",
		"BeginGroup tile-1",
		"StrokePath #ff0000 2",
		"FillPath #0000ff",
		"EndGroup",
		"ClearClip",
	}
	if diff := cmp.Diff(want, b.calls); diff != "" {
		t.Errorf("playback mismatch (-want +got):\n%s", diff)
	}
	if b.beginCalls != 1 || b.endCalls != 1 {
		t.Errorf("Begin/End calls = %d/%d, want 1/1", b.beginCalls, b.endCalls)
	}
	if b.view != view {
		t.Errorf("Begin viewport = %v, want %v", b.view, view)
	}
}

func TestClipViewport(t *testing.T) {
	rec := NewRecorder(mortier.Viewport{X: 10, Y: 20, Width: 30, Height: 40})
	rec.SetTransform(mortier.Scale(5, 5))
	rec.ClipViewport()

	r := rec.FinishRecording()
	c := r.Commands()[0].(SetClipCommand)
	if got := r.Resources().GetPath(c.Path).Bounds(); got != mortier.NewRect(10, 20, 30, 40) {
		t.Errorf("clip bounds = %v, want viewport rect", got)
	}
}
