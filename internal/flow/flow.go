// Package flow models which screen of the app is showing. Exactly one screen
// is current at a time and Next is the only way to move between them.
package flow

import "fmt"

// Screen identifies a full-window view.
type Screen int

const (
	// Upload asks for a photo from a file, the clipboard or a screen grab.
	Upload Screen = iota
	// Nickname collects the name used for the download.
	Nickname
	// Editor lets the user drag, zoom and rotate the photo behind the frame.
	Editor
	// Processing is shown while the export renders.
	Processing
	// Preview shows the finished picture with download and copy actions.
	Preview
	// ThankYou confirms the download and plays the confetti.
	ThankYou
)

var screenNames = [...]string{"upload", "nickname", "editor", "processing", "preview", "thank-you"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// Event is something the user or a background task did.
type Event int

const (
	// PhotoLoaded means a new photo decoded successfully.
	PhotoLoaded Event = iota
	// DecodeFailed means the chosen photo could not be decoded.
	DecodeFailed
	// NicknameSubmitted means a non-blank nickname was entered.
	NicknameSubmitted
	// Proceed asks for the export to be rendered.
	Proceed
	// ExportDone delivers the rendered export.
	ExportDone
	// Downloaded means the export was written to disk.
	Downloaded
	// Back returns to the previous step.
	Back
	// StartOver discards the session and returns to Upload.
	StartOver
)

var eventNames = [...]string{"photo-loaded", "decode-failed", "nickname-submitted", "proceed", "export-done", "downloaded", "back", "start-over"}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(e))
	}
	return eventNames[e]
}

// Next returns the screen that follows from applying e on s. Events that make
// no sense on s leave it unchanged and report false.
func Next(s Screen, e Event) (Screen, bool) {
	switch e {
	case StartOver:
		return Upload, true
	case Back:
		switch s {
		case Nickname, Editor:
			return Upload, true
		case Preview:
			return Editor, true
		}
		return s, false
	}
	switch s {
	case Upload:
		switch e {
		case PhotoLoaded:
			return Nickname, true
		case DecodeFailed:
			return Upload, true
		}
	case Nickname:
		switch e {
		case NicknameSubmitted:
			return Editor, true
		case PhotoLoaded:
			return Nickname, true
		}
	case Editor:
		switch e {
		case Proceed:
			return Processing, true
		case PhotoLoaded:
			return Editor, true
		}
	case Processing:
		if e == ExportDone {
			return Preview, true
		}
	case Preview:
		if e == Downloaded {
			return ThankYou, true
		}
	}
	return s, false
}

// Machine holds the current screen.
type Machine struct {
	current Screen
}

// Current returns the visible screen.
func (m *Machine) Current() Screen { return m.current }

// Fire applies e and reports whether the screen changed or the event was
// accepted.
func (m *Machine) Fire(e Event) bool {
	next, ok := Next(m.current, e)
	if ok {
		m.current = next
	}
	return ok
}
