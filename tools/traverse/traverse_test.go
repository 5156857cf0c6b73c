package main

import (
	"reflect"
	"testing"
)

var testNetwork = map[string][]string{
	"A": {"B", "C"},
	"B": {"D"},
	"C": {"D", "E"},
	"D": {"F"},
	"E": {"A"},
}

func TestShortestPath(t *testing.T) {
	tests := []struct {
		from, to string
		depth    int
		exp      []string
	}{
		{"A", "A", 6, []string{"A"}},
		{"A", "B", 6, []string{"A", "B"}},
		{"A", "F", 6, []string{"A", "B", "D", "F"}},
		{"E", "D", 6, []string{"E", "A", "B", "D"}},
		{"A", "F", 2, nil},
		{"F", "A", 6, nil},
		{"A", "Nowhere", 6, nil},
	}

	for _, test := range tests {
		got := shortestPath(testNetwork, test.from, test.to, test.depth)
		if !reflect.DeepEqual(test.exp, got) {
			t.Errorf("%v -> %v: expected %v, got %v", test.from, test.to, test.exp, got)
		}
	}
}
