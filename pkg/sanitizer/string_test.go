package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Bogotá", "Bogotá"},
		{"  Gran   Hotel  ", "Gran Hotel"},
		{"Lima\t Centro", "Lima Centro"},
	}

	for _, c := range cases {
		if got := TrimAndNormalize(c.in); got != c.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeRoomNumber(t *testing.T) {
	if got := NormalizeRoomNumber(" 101a "); got != "101A" {
		t.Errorf("NormalizeRoomNumber(' 101a ') = %q, want 101A", got)
	}
}
