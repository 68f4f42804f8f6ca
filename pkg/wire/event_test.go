package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   Event
	}{
		{
			name:   "content record",
			record: "data: Hello there",
			want:   Event{Kind: KindContent, Payload: "Hello there"},
		},
		{
			name:   "content keeps interior and trailing payload spacing",
			record: "data:  spaced out ",
			want:   Event{Kind: KindContent, Payload: " spaced out "},
		},
		{
			name:   "status record",
			record: "status: running node model-1",
			want:   Event{Kind: KindStatus, Payload: "running node model-1"},
		},
		{
			name:   "final record is trimmed",
			record: "final:   fallback reply  ",
			want:   Event{Kind: KindFinal, Payload: "fallback reply"},
		},
		{
			name:   "unrecognized prefix",
			record: "ping: keepalive",
			want:   Event{Kind: KindUnknown, Payload: "ping: keepalive"},
		},
		{
			name:   "prefix requires the trailing space",
			record: "data:no space",
			want:   Event{Kind: KindUnknown, Payload: "data:no space"},
		},
		{
			name:   "empty content payload",
			record: "data: ",
			want:   Event{Kind: KindContent, Payload: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.record))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "content", KindContent.String())
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "final", KindFinal.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestUnescapeContent(t *testing.T) {
	t.Run("should convert literal backslash-n to newline", func(t *testing.T) {
		assert.Equal(t, "line1\nline2", UnescapeContent(`line1\nline2`))
	})

	t.Run("should leave other escapes alone", func(t *testing.T) {
		assert.Equal(t, `tab\there`, UnescapeContent(`tab\there`))
	})

	t.Run("should handle consecutive escapes", func(t *testing.T) {
		assert.Equal(t, "a\n\nb", UnescapeContent(`a\n\nb`))
	})
}
