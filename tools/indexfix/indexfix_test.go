package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestRewrite(t *testing.T) {
	in := "10:1:A\n10:B\n20:3:C:D\n"
	var out bytes.Buffer
	if err := run(strings.NewReader(in), &out, false); err != nil {
		t.Fatalf("Error rewriting: %v", err)
	}
	exp := "10:1:A\n20:3:C:D\n"
	if out.String() != exp {
		t.Fatalf("Expected %q, got %q", exp, out.String())
	}
}

func TestSummarize(t *testing.T) {
	in := "10:1:A\n10:2:B\n20:3:C\n"
	var out bytes.Buffer
	if err := run(strings.NewReader(in), &out, true); err != nil {
		t.Fatalf("Error summarizing: %v", err)
	}
	exp := "10\t2\n20\t1\n"
	if out.String() != exp {
		t.Fatalf("Expected %q, got %q", exp, out.String())
	}
}

func TestRewriteKeepsOutputOnError(t *testing.T) {
	disk := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("10:1:A\n"), iotest.ErrReader(disk))
	var out bytes.Buffer
	err := run(r, &out, false)
	if !errors.Is(err, disk) {
		t.Fatalf("Expected the read error, got %v", err)
	}
	if out.String() != "10:1:A\n" {
		t.Fatalf("Expected the entry read before the error, got %q", out.String())
	}
}
