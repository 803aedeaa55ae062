package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraphs",
			html: "<html><body><p>Breaking news</p><p>today.</p></body></html>",
			want: "Breaking news today.",
		},
		{
			name: "drops scripts and navigation",
			html: `<body><nav>Home | World</nav><script>var x = 1;</script><style>p{}</style><p>Story text</p><footer>Copyright</footer></body>`,
			want: "Story text",
		},
		{
			name: "fragment",
			html: "<div>Line one<br>Line two</div>",
			want: "Line one Line two",
		},
		{
			name: "collapses whitespace",
			html: "<p>  spaced \n\n  out\t text </p>",
			want: "spaced out text",
		},
		{
			name: "plain text passes through",
			html: "no markup here",
			want: "no markup here",
		},
		{
			name: "empty",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.html))
		})
	}
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML("html"))
	assert.True(t, IsHTML(" HTML "))
	assert.False(t, IsHTML("text"))
	assert.False(t, IsHTML(""))
}
