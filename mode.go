package codefence

// Mode is the control state of a Transducer.
type Mode uint8

const (
	// ModeText passes bytes through unchanged.
	ModeText Mode = iota
	// ModeFenceCandidate holds a run of one to three backticks until the
	// next byte decides between an inline span, a fence and literal text.
	ModeFenceCandidate
	// ModeInlineCode is inside a single-backtick span.
	ModeInlineCode
	// ModeBlockCode is inside a fenced block; content is held until the
	// closing fence.
	ModeBlockCode
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeFenceCandidate:
		return "fence-candidate"
	case ModeInlineCode:
		return "inline-code"
	case ModeBlockCode:
		return "block-code"
	default:
		return "unknown"
	}
}
