package util

import "testing"

func TestMoney(t *testing.T) {
	cases := map[float64]string{
		2100:   "2100",
		570.6:  "570.6",
		29.4:   "29.4",
		-893.6: "-893.6",
		33.6:   "33.6",
		0:      "0",
	}
	for in, want := range cases {
		if got := Money(in); got != want {
			t.Errorf("Money(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPtrDeref(t *testing.T) {
	p := Ptr(int64(7))
	if Deref(p) != 7 {
		t.Fatalf("round-trip failed")
	}
	var nilP *int64
	if Deref(nilP) != 0 {
		t.Fatalf("nil pointer should deref to zero")
	}
}
