package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "default next to input",
			input:   "layouts/dash.json",
			formats: []string{"json", "html"},
			want:    map[string]string{"json": "layouts/dash.grid.json", "html": "layouts/dash.grid.html"},
		},
		{
			name:    "single format uses output verbatim",
			input:   "dash.json",
			output:  "out/preview.txt",
			formats: []string{"text"},
			want:    map[string]string{"text": "out/preview.txt"},
		},
		{
			name:    "known extension stripped for several formats",
			input:   "dash.json",
			output:  "out/grid.svg",
			formats: []string{"svg", "dot"},
			want:    map[string]string{"svg": "out/grid.svg", "dot": "out/grid.dot"},
		},
		{
			name:    "bare base path",
			input:   "dash.toml",
			output:  "out/grid",
			formats: []string{"json", "text"},
			want:    map[string]string{"json": "out/grid.json", "text": "out/grid.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
