package web

import "testing"

func TestURL(t *testing.T) {
	cases := []struct {
		name   string
		params []any
		want   string
	}{
		{"index", nil, "/cats/"},
		{"details", []any{int64(7)}, "/cats/7/"},
		{"assoc_toy", []any{int64(7), int64(3)}, "/cats/7/assoc_toy/3/"},
		{"assoc_toy_delete", []any{int64(7), int64(3)}, "/cats/7/assoc_toy/3/delete/"},
		{"login", nil, "/accounts/login/"},
	}
	for _, tc := range cases {
		if got := URL(tc.name, tc.params...); got != tc.want {
			t.Fatalf("URL(%s)=%q want %q", tc.name, got, tc.want)
		}
	}
}

func TestURLUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	URL("nope")
}
