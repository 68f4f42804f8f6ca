package wire

import "strings"

// recordDelimiter separates event records on the wire: a blank line,
// i.e. two consecutive newline characters.
const recordDelimiter = "\n\n"

// Splitter turns arbitrarily fragmented transport chunks into complete
// event records. Chunks carry no alignment guarantee, so the trailing
// partial record is buffered between calls until its delimiter arrives.
type Splitter struct {
	remainder string
}

// NewSplitter creates a splitter with an empty buffer.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Feed appends chunk to the buffered remainder and returns every complete
// record found, in order. Records are trimmed of surrounding whitespace;
// records that trim to empty are dropped. The segment after the last
// delimiter is kept as the new remainder.
//
// Feeding a stream chunk by chunk yields the same record sequence as
// feeding it in one call, regardless of where the chunk boundaries fall.
func (s *Splitter) Feed(chunk string) []string {
	combined := s.remainder + chunk

	segments := strings.Split(combined, recordDelimiter)
	s.remainder = segments[len(segments)-1]

	var records []string
	for _, segment := range segments[:len(segments)-1] {
		record := strings.TrimSpace(segment)
		if record == "" {
			continue
		}
		records = append(records, record)
	}
	return records
}

// Flush force-flushes the buffered remainder at end of stream. It returns
// the trimmed remainder and whether it was non-empty, then resets the
// buffer. A stream that ends mid-record still delivers that record.
func (s *Splitter) Flush() (string, bool) {
	record := strings.TrimSpace(s.remainder)
	s.remainder = ""
	return record, record != ""
}

// Remainder returns the buffered partial record without consuming it.
func (s *Splitter) Remainder() string {
	return s.remainder
}
