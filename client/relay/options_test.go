package relay

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mokiat/gog/opt"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		query string
		want  Options
	}{
		{
			query: "",
			want:  Options{ReloadKey: "r"},
		},
		{
			query: "?continuous=1",
			want:  Options{Continuous: true, ReloadKey: "r"},
		},
		{
			query: "?reload_key=F5&dpr=1.5&reload_interval=250ms",
			want: Options{
				ReloadKey:      "F5",
				PixelRatio:     opt.V(1.5),
				ReloadInterval: 250 * time.Millisecond,
			},
		},
		{
			query: "example=stereo&continuous=false",
			want:  Options{ReloadKey: "r"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got, err := ParseOptions(tc.query)
			if err != nil {
				t.Fatalf("ParseOptions(%q) = %v, want nil error", tc.query, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseOptions(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestParseOptionsErrors(t *testing.T) {
	for _, query := range []string{
		"continuous=maybe",
		"dpr=abc",
		"dpr=0",
		"reload_interval=soon",
		"reload_interval=-1s",
		"%zz",
	} {
		if got, err := ParseOptions(query); err == nil {
			t.Errorf("ParseOptions(%q) = %+v, want error", query, got)
		}
	}
}

func TestOptionsFromQuery(t *testing.T) {
	if diff := cmp.Diff(Options{ReloadKey: "r"}, OptionsFromQuery("?dpr=abc&continuous=1")); diff != "" {
		t.Errorf("OptionsFromQuery() with a bad query mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Options{Continuous: true, ReloadKey: "r"}, OptionsFromQuery("?continuous=1")); diff != "" {
		t.Errorf("OptionsFromQuery() mismatch (-want +got):\n%s", diff)
	}
}
