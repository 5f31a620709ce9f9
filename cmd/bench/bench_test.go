package main

import (
	"testing"

	"github.com/pthm-cable/ballpit/config"
)

func TestParseCounts(t *testing.T) {
	got, err := parseCounts(" 10, 20 ,30,")
	if err != nil {
		t.Fatalf("parseCounts: %v", err)
	}
	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	for _, bad := range []string{"", "x", "10,-1", "0"} {
		if _, err := parseCounts(bad); err == nil {
			t.Errorf("parseCounts(%q) should fail", bad)
		}
	}
}

func TestScenario_GridTestsFewerPairs(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	allPairs := Scenario{Mode: config.CollisionAllPairs, Bodies: 200, Steps: 10, Seed: 1}.Run(cfg)
	grid := Scenario{Mode: config.CollisionGrid, Bodies: 200, Steps: 10, Seed: 1}.Run(cfg)

	if allPairs.PairsPerStep != 200*199 {
		t.Errorf("all pairs tested %.0f per step, want %d", allPairs.PairsPerStep, 200*199)
	}
	if grid.PairsPerStep >= allPairs.PairsPerStep/4 {
		t.Errorf("grid tested %.0f pairs per step, expected far fewer than %.0f", grid.PairsPerStep, allPairs.PairsPerStep)
	}
	if grid.Steps != 10 || grid.Bodies != 200 {
		t.Errorf("unexpected result header %+v", grid)
	}
}
