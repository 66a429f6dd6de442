package embedder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		maxInputLength int
		want           error
	}{
		{
			name:           "valid input",
			text:           "vegetarian food recommendations",
			maxInputLength: 100,
			want:           nil,
		},
		{
			name:           "empty input",
			text:           "",
			maxInputLength: 100,
			want:           ErrEmptyInput,
		},
		{
			name:           "whitespace only",
			text:           "  \n\t ",
			maxInputLength: 100,
			want:           ErrEmptyInput,
		},
		{
			name:           "too long",
			text:           strings.Repeat("a", 101),
			maxInputLength: 100,
			want:           ErrInputTooLong,
		},
		{
			name:           "no limit configured",
			text:           strings.Repeat("a", 100000),
			maxInputLength: 0,
			want:           nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.text, tc.maxInputLength)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}
