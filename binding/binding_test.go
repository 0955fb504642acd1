package binding

import "testing"

func testBinder(t *testing.T) *Binder {
	t.Helper()
	b, err := Decode([]byte(`{
		"client": {"name": "Acme", "team": [{"name": "Ada"}, {"name": "Lin"}]},
		"year": 2024,
		"ratio": 0.5,
		"tags": ["a", "b"]
	}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return b
}

func TestTextInterpolation(t *testing.T) {
	b := testBinder(t)
	cases := map[string]string{
		"Case study for ${client.name}":    "Case study for Acme",
		"Lead: ${client.team[1].name}":     "Lead: Lin",
		"${year} / ${ratio}":               "2024 / 0.5",
		"${ tags }":                        `["a","b"]`,
		"missing ${client.budget} stays":   "missing ${client.budget} stays",
		"out of range ${client.team[5]}":   "out of range ${client.team[5]}",
		"plain text":                       "plain text",
		"bad index ${client.team[x].name}": "bad index ${client.team[x].name}",
	}
	for in, want := range cases {
		if got := b.Text(in); got != want {
			t.Errorf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNilBinderIsNoop(t *testing.T) {
	var b *Binder
	if got := b.Text("${a}"); got != "${a}" {
		t.Fatalf("nil binder changed text: %q", got)
	}
	if got := New(nil).Text("${a}"); got != "${a}" {
		t.Fatalf("empty binder changed text: %q", got)
	}
}

func TestLookupNestedIndexes(t *testing.T) {
	b := New(map[string]any{"m": []any{[]any{"x", "y"}}})
	v, ok := b.Lookup("m[0][1]")
	if !ok || v != "y" {
		t.Fatalf("Lookup = %v %v", v, ok)
	}
	if _, ok := b.Lookup("m..x"); ok {
		t.Fatalf("empty segment must not resolve")
	}
}

func TestDecodeError(t *testing.T) {
	if _, err := Decode([]byte("{")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
