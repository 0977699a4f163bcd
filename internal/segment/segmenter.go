// Package segment implements the Note Segmenter: the frame-level state
// machine that turns a stream of per-frame pitch estimates into
// finalized note (and silence) events.
package segment

import "github.com/notescribe/notescribed/internal/pitch"

// MaxNotes bounds the number of committed events per session.
const MaxNotes = 1000

// SilenceName tags a committed event as a silence run rather than a
// held pitch.
const SilenceName = "N/A"

const maxVotes = 100

// Event is a finalized segment: a pitch (or silence) held for a number
// of analysis frames.
type Event struct {
	PitchName      string
	MIDINote       int
	LengthInFrames int
}

// Segmenter consumes one pitch.Event per analysis frame and commits
// Events once a note or silence run ends.
type Segmenter struct {
	events []Event

	heardAny   bool // whether the previous frame carried a pitch
	curLen     int
	silenceLen int

	prevPitch string
	prevMIDI  int

	voteBuf [maxVotes]int

	everHeardNote bool
	stopped       bool

	framesProcessed      int
	leadingSilenceFrames int
}

// NewSegmenter creates an empty Segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{prevPitch: SilenceName}
}

// Process consumes one frame's pitch estimate. It returns true once the
// session has hit MaxNotes and must stop accepting further input.
func (s *Segmenter) Process(pe pitch.Event) bool {
	if s.stopped {
		return true
	}
	s.framesProcessed++

	if !pe.Found {
		return s.processSilentFrame()
	}
	return s.processPitchedFrame(pe)
}

func (s *Segmenter) processSilentFrame() bool {
	if !s.everHeardNote {
		// Leading silence before the first note ever heard: discard.
		s.leadingSilenceFrames++
		return false
	}

	if s.silenceLen == 0 {
		// First silent frame after a note: the note just ended.
		if !s.commitNote(s.curLen) {
			return true
		}
		s.prevPitch = SilenceName
		s.prevMIDI = 0
	}
	s.silenceLen++
	s.heardAny = false
	return false
}

func (s *Segmenter) processPitchedFrame(pe pitch.Event) bool {
	isNew := pe.OnsetFlag || !s.heardAny

	if isNew {
		lastNoteLen := s.curLen
		switch {
		case !s.everHeardNote:
			// The very first note ever: nothing precedes it to commit.
		case s.silenceLen > 0:
			if !s.commitSilence() {
				return true
			}
			s.silenceLen = 0
		case lastNoteLen > 0:
			if !s.commitNote(lastNoteLen) {
				return true
			}
		}

		s.prevPitch = pe.PitchName
		s.prevMIDI = pe.MIDINote
		s.voteBuf[0] = pe.MIDINote
		s.curLen = 1
		s.everHeardNote = true
	} else {
		if s.curLen < maxVotes {
			s.voteBuf[s.curLen] = pe.MIDINote
		}
		s.curLen++
	}

	s.heardAny = true
	return false
}

// Finalize commits any pending note still in progress at the end of the
// input stream. A trailing silence run needs no action: the note
// preceding it was already committed the moment the silence began.
func (s *Segmenter) Finalize() {
	if s.stopped {
		return
	}
	if s.heardAny && s.curLen > 0 && s.everHeardNote {
		s.commitNote(s.curLen)
	}
}

func (s *Segmenter) commitNote(length int) bool {
	midi := majorityMIDI(s.voteBuf[:], length)
	return s.append(Event{PitchName: s.prevPitch, MIDINote: midi, LengthInFrames: length})
}

func (s *Segmenter) commitSilence() bool {
	return s.append(Event{PitchName: SilenceName, MIDINote: s.prevMIDI, LengthInFrames: s.silenceLen})
}

func (s *Segmenter) append(ev Event) bool {
	if len(s.events) >= MaxNotes {
		s.stopped = true
		return false
	}
	s.events = append(s.events, ev)
	return true
}

// majorityMIDI picks the most frequently occurring value in buf[:n],
// ties resolved in favor of the earliest occurrence.
func majorityMIDI(buf []int, n int) int {
	if n > len(buf) {
		n = len(buf)
	}
	consumed := make([]bool, n)
	bestMIDI := 0
	bestCount := 0
	for i := 0; i < n; i++ {
		if consumed[i] {
			continue
		}
		count := 0
		for j := i; j < n; j++ {
			if !consumed[j] && buf[j] == buf[i] {
				consumed[j] = true
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestMIDI = buf[i]
		}
	}
	return bestMIDI
}

// Events returns the committed events in order.
func (s *Segmenter) Events() []Event { return s.events }

// FramesProcessed returns the total number of frames consumed by
// Process, including frames trimmed as leading silence.
func (s *Segmenter) FramesProcessed() int { return s.framesProcessed }

// LeadingSilenceFrames returns how many frames were trimmed as leading
// silence before the first note.
func (s *Segmenter) LeadingSilenceFrames() int { return s.leadingSilenceFrames }

// Stopped reports whether the segmenter hit MaxNotes and stopped
// accepting input.
func (s *Segmenter) Stopped() bool { return s.stopped }
