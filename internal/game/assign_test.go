package game

import (
	"errors"
	"testing"
)

func TestAssignRotatesImpostorEvenly(t *testing.T) {
	pool := []WordPair{{Word: "beach", Decoy: "desert"}}

	// 5 games, 5 participants: everyone is the impostor exactly once.
	counts := make(map[int]int)
	for i := 0; i < 5; i++ {
		asg, err := Assign(i, 5, pool)
		if err != nil {
			t.Fatalf("assign game %d: %v", i, err)
		}
		counts[asg.ImpostorIndex]++
	}
	for idx := 0; idx < 5; idx++ {
		if counts[idx] != 1 {
			t.Fatalf("participant %d was impostor %d times, want 1", idx, counts[idx])
		}
	}
}

func TestAssignBalancedWhenGamesNotMultipleOfRoster(t *testing.T) {
	pool := []WordPair{{Word: "coffee", Decoy: "tea"}}

	counts := make(map[int]int)
	for i := 0; i < 7; i++ {
		asg, err := Assign(i, 3, pool)
		if err != nil {
			t.Fatalf("assign game %d: %v", i, err)
		}
		counts[asg.ImpostorIndex]++
	}
	min, max := counts[0], counts[0]
	for idx := 0; idx < 3; idx++ {
		if counts[idx] < min {
			min = counts[idx]
		}
		if counts[idx] > max {
			max = counts[idx]
		}
	}
	if max-min > 1 {
		t.Fatalf("impostor counts differ by more than 1: %v", counts)
	}
}

func TestAssignIsDeterministic(t *testing.T) {
	pool := []WordPair{
		{Word: "piano", Decoy: "violin"},
		{Word: "moon", Decoy: "sun"},
		{Word: "pizza", Decoy: "pasta"},
	}
	first, err := Assign(4, 5, pool)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	second, err := Assign(4, 5, pool)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if first != second {
		t.Fatalf("same game index produced different assignments: %+v vs %+v", first, second)
	}
}

func TestAssignRejectsDegenerateConfig(t *testing.T) {
	pool := []WordPair{{Word: "beach", Decoy: "desert"}}

	if _, err := Assign(0, 1, pool); !errors.Is(err, ErrRosterTooSmall) {
		t.Fatalf("expected ErrRosterTooSmall for roster of 1, got %v", err)
	}
	if _, err := Assign(0, 2, pool); !errors.Is(err, ErrRosterTooSmall) {
		t.Fatalf("expected ErrRosterTooSmall for roster of 2, got %v", err)
	}
	if _, err := Assign(0, 4, nil); !errors.Is(err, ErrEmptyWordPool) {
		t.Fatalf("expected ErrEmptyWordPool, got %v", err)
	}
}
