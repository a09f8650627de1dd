// Package clips turns extracted events into a Dolphin playback queue so
// interesting moments can be replayed back to back.
package clips

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/meleetools/framescan/internal/extract"
)

// Replays cannot seek before the pre-game countdown.
const minStartFrame = -123

// Clip is one playable segment of a replay file.
type Clip struct {
	Path        string `json:"path"`
	StartFrame  int    `json:"start_frame"`
	EndFrame    int    `json:"end_frame"`
	Kind        string `json:"kind,omitempty"`
	Description string `json:"description,omitempty"`
}

// QueueEntry is one item of the Dolphin playback-queue document.
type QueueEntry struct {
	Path       string `json:"path"`
	StartFrame int    `json:"startFrame"`
	EndFrame   int    `json:"endFrame"`
}

// Queue is the playback-queue document Dolphin consumes.
type Queue struct {
	Mode  string       `json:"mode"`
	Queue []QueueEntry `json:"queue"`
}

// Options control the padding added around each clip.
type Options struct {
	// PadBefore is lead-in context in frames.
	PadBefore int
	// PadAfter is trailing context in frames.
	PadAfter int
}

// DefaultOptions pads two seconds before and one after.
func DefaultOptions() Options {
	return Options{PadBefore: 120, PadAfter: 60}
}

// FromEvents builds clips from a match's events, keeping only the named
// kinds (nil keeps all) and pointing every clip at replayPath.
func FromEvents(replayPath string, events []extract.Event, kinds map[string]bool) []Clip {
	var out []Clip
	for _, ev := range events {
		if kinds != nil && !kinds[ev.Kind] {
			continue
		}
		out = append(out, Clip{
			Path:       replayPath,
			StartFrame: ev.StartFrame,
			EndFrame:   ev.EndFrame,
			Kind:       ev.Kind,
		})
	}
	return out
}

// BuildQueue pads each clip and assembles the playback document. Start
// frames are clamped to the earliest seekable frame.
func BuildQueue(clips []Clip, opts Options) Queue {
	q := Queue{Mode: "queue", Queue: make([]QueueEntry, 0, len(clips))}
	for _, c := range clips {
		start := c.StartFrame - opts.PadBefore
		if start < minStartFrame {
			start = minStartFrame
		}
		q.Queue = append(q.Queue, QueueEntry{
			Path:       c.Path,
			StartFrame: start,
			EndFrame:   c.EndFrame + opts.PadAfter,
		})
	}
	return q
}

// Export writes the playback queue as indented JSON.
func Export(path string, clips []Clip, opts Options) error {
	data, err := json.MarshalIndent(BuildQueue(clips, opts), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal clip queue: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write clip queue: %w", err)
	}
	return nil
}
