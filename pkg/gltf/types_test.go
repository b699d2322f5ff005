package gltf

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestSetExtrasMember(t *testing.T) {
	tests := []struct {
		name   string
		extras string
		want   []string
	}{
		{
			name:   "empty extras",
			extras: "",
			want:   []string{`"k":1`},
		},
		{
			name:   "existing members kept",
			extras: `{"note":"x"}`,
			want:   []string{`"k":1`, `"note":"x"`},
		},
		{
			name:   "non-object value superseded",
			extras: `"plain string"`,
			want:   []string{`"k":1`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := setExtrasMember(json.RawMessage(tt.extras), "k", 1)
			if err != nil {
				t.Fatalf("setExtrasMember: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(got), want) {
					t.Errorf("expected %s in %s", want, got)
				}
			}
		})
	}
}

func TestTakeExtrasMember(t *testing.T) {
	member, rest := takeExtrasMember(json.RawMessage(`{"k":{"a":1},"note":"x"}`), "k")
	if string(member) != `{"a":1}` {
		t.Errorf("member: got %s", member)
	}
	if !strings.Contains(string(rest), `"note"`) || strings.Contains(string(rest), `"k"`) {
		t.Errorf("rest should keep only other members, got %s", rest)
	}

	member, rest = takeExtrasMember(json.RawMessage(`{"k":true}`), "k")
	if string(member) != "true" || rest != nil {
		t.Errorf("sole member should leave nil rest, got member=%s rest=%s", member, rest)
	}

	member, rest = takeExtrasMember(json.RawMessage(`"opaque"`), "k")
	if member != nil || string(rest) != `"opaque"` {
		t.Errorf("non-object extras must pass through, got member=%s rest=%s", member, rest)
	}

	member, rest = takeExtrasMember(nil, "k")
	if member != nil || rest != nil {
		t.Errorf("empty extras: got member=%s rest=%s", member, rest)
	}
}
