package playing

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/seojinpark/blade/internal/application/replay"
	"github.com/seojinpark/blade/internal/application/system"
)

// Recorder captures the button state fed to the world each frame so a
// session can be replayed later. Only held buttons are stored; press and
// release edges fall out of the frame-to-frame diff on playback.
type Recorder struct {
	data      replay.Data
	recording bool
}

// NewRecorder creates a recorder for a session starting on the given
// level.
func NewRecorder(level string) *Recorder {
	return &Recorder{
		data: replay.Data{
			Version:   replay.Version,
			Level:     level,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameData, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame appends one frame of input. No-op once stopped.
func (r *Recorder) RecordFrame(buttons system.Buttons) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, replay.Frame(len(r.data.Frames), buttons))
}

// Save writes the recording as indented JSON.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording. Further RecordFrame calls are ignored.
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording reports whether frames are still being captured.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames.
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording captured so far.
func (r *Recorder) Data() replay.Data {
	return r.data
}

// GenerateFilename creates a timestamped replay filename.
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
