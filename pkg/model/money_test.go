package model

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestMoneyMulIntExact(t *testing.T) {
	cases := []struct {
		price  string
		nights int64
		want   string
	}{
		{"100.00", 3, "300.00"},
		{"50.00", 3, "150.00"},
		{"33.33", 3, "99.99"},
		{"0.10", 10, "1.00"},
		{"99.99", 7, "699.93"},
	}

	for _, c := range cases {
		got := MustMoney(c.price).MulInt(c.nights)
		if !got.Equal(MustMoney(c.want)) {
			t.Errorf("%s * %d = %s, want %s", c.price, c.nights, got.String(), c.want)
		}
	}
}

func TestNewMoneyRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "12.3.4"} {
		if _, err := NewMoney(s); err == nil {
			t.Errorf("NewMoney(%q) accepted invalid input", s)
		}
	}
}

func TestMoneyBSONRoundTrip(t *testing.T) {
	type doc struct {
		Price Money `bson:"price"`
	}

	in := doc{Price: MustMoney("149.95")}
	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out doc
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !out.Price.Equal(in.Price) {
		t.Errorf("round trip changed value: got %s, want %s", out.Price.String(), in.Price.String())
	}
}

func TestMoneyNegativeDetected(t *testing.T) {
	m := MustMoney("-5.00")
	if !m.IsNegative() {
		t.Error("expected -5.00 to report negative")
	}
}
