package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seojinpark/blade/internal/application/system"
)

// Replayer hands a recording back one step at a time.
type Replayer struct {
	data  Data
	frame int
}

// NewReplayer creates a replayer over the given recording.
func NewReplayer(data Data) *Replayer {
	return &Replayer{data: data}
}

// Load reads a recorded session from a file.
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Next returns the buttons for the current step and advances. ok is
// false once the recording is exhausted.
func (r *Replayer) Next() (system.Buttons, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.Buttons{}, false
	}

	b := r.data.Frames[r.frame].Buttons()
	r.frame++
	return b, true
}

// Level returns the level the recording started on.
func (r *Replayer) Level() string {
	return r.data.Level
}

// CurrentFrame returns the next frame to be played.
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the length of the recording.
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Done reports whether the recording is exhausted.
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// Reset rewinds the replayer to the first frame.
func (r *Replayer) Reset() {
	r.frame = 0
}
