package wire

import "strings"

// Kind identifies what an event record carries.
type Kind int

const (
	// KindContent is incremental message text.
	KindContent Kind = iota
	// KindStatus is out-of-band progress information, never shown as
	// message text.
	KindStatus
	// KindFinal is the server's last-resort reply, used only when no
	// content was streamed.
	KindFinal
	// KindUnknown is any record with an unrecognized prefix. Unknown
	// records are ignored downstream so new server-side event kinds
	// don't break older clients.
	KindUnknown
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindStatus:
		return "status"
	case KindFinal:
		return "final"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Recognized record prefixes.
const (
	contentPrefix = "data: "
	statusPrefix  = "status: "
	finalPrefix   = "final: "
)

// Event is a classified event record.
type Event struct {
	Kind    Kind
	Payload string
}

// Classify inspects a complete record's prefix and assigns its kind.
// Content and status payloads keep their interior spacing as sent; final
// payloads are additionally trimmed of surrounding whitespace. Records
// with no recognized prefix come back as KindUnknown with the record
// carried verbatim.
func Classify(record string) Event {
	switch {
	case strings.HasPrefix(record, contentPrefix):
		return Event{Kind: KindContent, Payload: strings.TrimPrefix(record, contentPrefix)}
	case strings.HasPrefix(record, statusPrefix):
		return Event{Kind: KindStatus, Payload: strings.TrimPrefix(record, statusPrefix)}
	case strings.HasPrefix(record, finalPrefix):
		return Event{Kind: KindFinal, Payload: strings.TrimSpace(strings.TrimPrefix(record, finalPrefix))}
	default:
		return Event{Kind: KindUnknown, Payload: record}
	}
}

// UnescapeContent converts the wire's literal two-character "\n" escape
// into a real newline. No other escape sequences are interpreted.
func UnescapeContent(payload string) string {
	return strings.ReplaceAll(payload, `\n`, "\n")
}
