package internal

import (
	"errors"
	"testing"
)

func TestPickSeparator(t *testing.T) {
	cases := []struct {
		prev  rune
		input string
		want  rune
	}{
		{',', ";", ';'},
		{',', ",;", ';'}, // first differing char wins
		{',', "", ','},   // empty input keeps previous
		{',', ",,,", ','},
		{',', "a|b", 'a'},
		{';', "é", 'é'},
	}
	for _, c := range cases {
		if got := PickSeparator(c.prev, c.input); got != c.want {
			t.Errorf("PickSeparator(%q, %q) = %q, want %q", c.prev, c.input, got, c.want)
		}
	}
}

func TestScanRequest_Validate(t *testing.T) {
	if err := (ScanRequest{Separator: ','}).Validate(); !errors.Is(err, ErrEmptySearch) {
		t.Fatalf("want ErrEmptySearch, got %v", err)
	}
	if err := (ScanRequest{Search: "x", Separator: ','}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunOptions_ValidateAndPrepare(t *testing.T) {
	o := RunOptions{Search: "x"}
	if err := o.Validate(); err == nil {
		t.Fatal("expected error for missing paths")
	}
	o.Paths = []string{"f.txt"}
	if err := o.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o.Prepare()
	if o.Separator != DefaultSeparator {
		t.Errorf("default separator not applied: %q", o.Separator)
	}
	if o.Threads <= 0 {
		t.Errorf("thread default not applied: %d", o.Threads)
	}
}
