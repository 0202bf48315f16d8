package slugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "trailing number",
			title: "Hello World 2",
			want:  "hello-world-2",
		},
		{
			name:  "mixed case and punctuation",
			title: "Go 1.25: What's New?",
			want:  "go-1-25-what-s-new",
		},
		{
			name:  "surrounding whitespace",
			title: "  Spaced Out  ",
			want:  "spaced-out",
		},
		{
			name:  "accented characters fold to ascii",
			title: "Café Culture in Martinique",
			want:  "cafe-culture-in-martinique",
		},
		{
			name:  "repeated separators collapse",
			title: "one -- two...three",
			want:  "one-two-three",
		},
		{
			name:  "non latin runes are dropped",
			title: "日本語 Title",
			want:  "title",
		},
		{
			name:  "nothing survives folding",
			title: "!!! 日本語 ***",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Make("Deterministic Slugs!")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Make("Deterministic Slugs!"))
	}
}
