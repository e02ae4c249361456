package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDotted(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    int
		wantErr bool
	}{
		"three groups":   {in: "6.3.7", want: 637},
		"padded":         {in: "0.0.9", want: 9},
		"two groups":     {in: "1.0", want: 10},
		"trailing dot":   {in: "7.1.2.", want: 712},
		"no dots":        {in: "712", want: 712},
		"empty":          {in: "", wantErr: true},
		"only dots":      {in: "..", wantErr: true},
		"letters":        {in: "7.a.2", wantErr: true},
		"negative":       {in: "-7.1", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDotted(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDotted(t *testing.T) {
	tests := map[string]struct {
		n, width int
		want     string
	}{
		"three digits":   {n: 712, width: 3, want: "7.1.2"},
		"padded":         {n: 9, width: 3, want: "0.0.9"},
		"wider than pad": {n: 1234, width: 3, want: "1.2.3.4"},
		"no padding":     {n: 9, width: 0, want: "9"},
		"zero":           {n: 0, width: 3, want: "0.0.0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDotted(tt.n, tt.width))
		})
	}
}

func TestDotted_RoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.1", "0.0.9", "0.1.0", "6.3.7", "7.1.2", "9.9.9"} {
		n, err := ParseDotted(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatDotted(n, DefaultVersionWidth), s)
	}
	for n := range 1000 {
		got, err := ParseDotted(FormatDotted(n, DefaultVersionWidth))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}
