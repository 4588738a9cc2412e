package bias

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "direct object",
			raw:  `{"summary":"fine"}`,
			want: map[string]any{"summary": "fine"},
		},
		{
			name: "prose wrapped",
			raw:  `Sure! Here is the JSON you asked for: {"summary":"fine"} Let me know if you need anything else.`,
			want: map[string]any{"summary": "fine"},
		},
		{
			name: "markdown fenced",
			raw:  "```json\n{\"summary\":\"fine\"}\n```",
			want: map[string]any{"summary": "fine"},
		},
		{
			name: "nested object sliced whole",
			raw:  `Result: {"bias_scores":{"Left":0.2}} done.`,
			want: map[string]any{"bias_scores": map[string]any{"Left": 0.2}},
		},
		{
			name:    "no object at all",
			raw:     "I could not produce JSON.",
			wantErr: true,
		},
		{
			name:    "reversed braces",
			raw:     "} nothing here {",
			wantErr: true,
		},
		{
			name:    "invalid inside braces",
			raw:     "{definitely not json}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModelJSON(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
