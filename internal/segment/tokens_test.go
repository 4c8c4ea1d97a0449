package segment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{""}},
		{name: "single word", in: "word", want: []string{"word"}},
		{name: "two words", in: "a b", want: []string{"a", " ", "b"}},
		{name: "leading space", in: "  a", want: []string{"", "  ", "a"}},
		{name: "trailing space", in: "a \n", want: []string{"a", " \n", ""}},
		{name: "nbsp is whitespace", in: "a b", want: []string{"a", " ", "b"}},
		{name: "unicode words", in: "naïve café", want: []string{"naïve", " ", "café"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.in, strings.Join(got, ""))
			require.Equal(t, 1, len(got)%2, "tokens alternate and end with a word")
		})
	}
}

func TestGeometry_Degenerate(t *testing.T) {
	require.True(t, Geometry{Width: 0, Height: 16}.Degenerate())
	require.True(t, Geometry{Width: 8, Height: 0}.Degenerate())
	require.False(t, Geometry{Width: 8, Height: 16}.Degenerate())
}

func TestNew_ClampsStride(t *testing.T) {
	s := New(nil, Options{Stride: 0}, nil)
	require.Equal(t, 1, s.Options().Stride)
}
