package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "citation markers removed",
			in:   "Deliberation improves outcomes[1] in most settings[23].",
			want: "Deliberation improves outcomes in most settings.",
		},
		{
			name: "footnote references removed",
			in:   "As noted earlier[note 3] the assembly[ NOTE ] convened.",
			want: "As noted earlier the assembly convened.",
		},
		{
			name: "horizontal whitespace collapsed",
			in:   "spaced\t\tout   text",
			want: "spaced out text",
		},
		{
			name: "blank line runs collapsed",
			in:   "para one\n\n\n\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "leading and trailing whitespace trimmed",
			in:   "  \n body \n ",
			want: "body",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizePreservesSingleBlankLines(t *testing.T) {
	in := "first paragraph\n\nsecond paragraph"
	assert.Equal(t, in, Normalize(in))
}
