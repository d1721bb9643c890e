// Package recording captures drawing operations as typed commands and plays
// them back into pluggable output backends.
//
// The system follows a command pattern with three parts:
//
//   - Recorder: captures drawing operations as commands
//   - Recording: stores commands and resources for playback
//   - Backend: renders commands to a specific output format
//
// # Basic Usage
//
//	rec := recording.NewRecorder(mortier.Viewport{Width: 800, Height: 600})
//	rec.BeginGroup("tile-0")
//	rec.SetColor(mortier.Color{R: 200})
//	rec.DrawPolygon(outline)
//	rec.Stroke()
//	rec.EndGroup()
//	r := rec.FinishRecording()
//
// # Playback
//
// Backends are looked up by name, following the database/sql driver
// pattern. Importing a backend package registers it:
//
//	import _ "github.com/gogpu/mortier/recording/backends/svg"
//
//	b, err := recording.NewBackend("svg")
//	if err != nil {
//	    return err
//	}
//	if err := r.Playback(b); err != nil {
//	    return err
//	}
//	b.(recording.WriterBackend).WriteTo(w)
//
// Paths reach the backend in output coordinates: the Recorder applies its
// current transform when a path is filled, stroked or used as a clip.
package recording
