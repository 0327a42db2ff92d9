// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"reflect"
	"testing"
)

func cents(v int) *int { return &v }

func TestSmartSelectDropsVetoedAndNegative(t *testing.T) {
	candidates := slate("good", "vetoed", "disliked")
	votes := []Vote{
		vote("alice", "good", Like),
		vote("alice", "vetoed", Veto),
		vote("bob", "vetoed", SuperLike),
		vote("alice", "disliked", Dislike),
	}

	got := ids(SmartSelect(candidates, votes, 3, DefaultOptions()))
	want := []string{"good"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SmartSelect = %v, want %v", got, want)
	}
}

func TestSmartSelectBudgetRespected(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", CostCents: cents(1000)},
		{ID: "b", CostCents: cents(900)},
		{ID: "c", CostCents: cents(100)},
	}
	votes := []Vote{
		vote("alice", "a", SuperLike), vote("bob", "a", Like), // 3
		vote("alice", "b", SuperLike), // 2
		vote("alice", "c", Like),      // 1
	}

	opts := DefaultOptions()
	opts.BudgetCents = cents(1100)

	// a (1000) is accepted, b (would be 1900) is skipped, and the scan
	// continues: c (total 1100) still fits.
	got := ids(SmartSelect(candidates, votes, 3, opts))
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SmartSelect = %v, want %v", got, want)
	}

	total := 0
	for _, id := range got {
		for _, c := range candidates {
			if c.ID == id && c.CostCents != nil {
				total += *c.CostCents
			}
		}
	}
	if total > *opts.BudgetCents {
		t.Errorf("selection cost %d exceeds budget %d", total, *opts.BudgetCents)
	}
}

func TestSmartSelectZeroBudget(t *testing.T) {
	candidates := []Candidate{
		{ID: "paid", CostCents: cents(500)},
		{ID: "free", CostCents: cents(0)},
		{ID: "unknown"}, // no cost estimate, counts as free
	}
	votes := []Vote{
		vote("alice", "paid", SuperLike),
		vote("alice", "free", Like),
		vote("alice", "unknown", Like),
	}

	opts := DefaultOptions()
	opts.BudgetCents = cents(0)

	got := ids(SmartSelect(candidates, votes, 3, opts))
	want := []string{"free", "unknown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SmartSelect = %v, want %v", got, want)
	}
}

func TestSmartSelectBudgetStopsAtCount(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", CostCents: cents(100)},
		{ID: "b", CostCents: cents(100)},
		{ID: "c", CostCents: cents(100)},
	}
	votes := []Vote{
		vote("alice", "a", SuperLike),
		vote("alice", "b", Like),
		vote("alice", "c", OK),
	}

	opts := DefaultOptions()
	opts.BudgetCents = cents(10000)

	got := ids(SmartSelect(candidates, votes, 2, opts))
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SmartSelect = %v, want %v", got, want)
	}
}

func TestSmartSelectCount(t *testing.T) {
	candidates := slate("a", "b", "c")
	votes := []Vote{
		vote("alice", "a", SuperLike),
		vote("alice", "b", Like),
		vote("alice", "c", OK),
	}

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"zero count", 0, 0},
		{"negative count", -5, 0},
		{"truncates", 2, 2},
		{"more than eligible", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SmartSelect(candidates, votes, tt.count, DefaultOptions())
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSmartSelectNoEligible(t *testing.T) {
	candidates := slate("a", "b")
	votes := []Vote{
		vote("alice", "a", Veto),
		vote("alice", "b", Dislike),
	}

	if got := SmartSelect(candidates, votes, 3, DefaultOptions()); len(got) != 0 {
		t.Errorf("SmartSelect = %v, want empty", ids(got))
	}
}

func TestVarietyPassParity(t *testing.T) {
	// The default variety pass tracks spread but must not change the
	// output: PreferVariety on and off produce identical selections.
	candidates := []Candidate{
		{ID: "a", Cuisine: "italian", Difficulty: "easy"},
		{ID: "b", Cuisine: "italian", Difficulty: "easy"},
		{ID: "c", Cuisine: "mexican", Difficulty: "hard"},
		{ID: "d", Cuisine: "thai", Difficulty: "medium"},
	}
	votes := []Vote{
		vote("alice", "a", SuperLike), vote("bob", "a", SuperLike),
		vote("alice", "b", SuperLike), vote("bob", "b", Like),
		vote("alice", "c", Like),
		vote("alice", "d", OK),
	}

	with := SmartSelect(candidates, votes, 3, Options{PreferVariety: true})
	without := SmartSelect(candidates, votes, 3, Options{PreferVariety: false})

	if !reflect.DeepEqual(ids(with), ids(without)) {
		t.Errorf("variety pass changed the selection: with=%v without=%v", ids(with), ids(without))
	}
}

func TestWeightedVarietyReorders(t *testing.T) {
	// With the bonus applied, a slightly lower-scored candidate from an
	// unrepresented cuisine overtakes a same-cuisine runner-up.
	candidates := []Candidate{
		{ID: "a", Cuisine: "italian", Difficulty: "easy"},
		{ID: "b", Cuisine: "italian", Difficulty: "easy"},
		{ID: "c", Cuisine: "mexican", Difficulty: "easy"},
	}
	votes := []Vote{
		vote("alice", "a", SuperLike), vote("bob", "a", SuperLike), vote("carol", "a", Like), // 5
		vote("alice", "b", SuperLike), vote("bob", "b", SuperLike), // 4
		vote("alice", "c", SuperLike), vote("bob", "c", Like), // 3
	}

	opts := Options{PreferVariety: true, WeightedVariety: true}
	got := ids(SmartSelect(candidates, votes, 2, opts))
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("weighted selection = %v, want %v", got, want)
	}

	// Unweighted keeps pure score order.
	got = ids(SmartSelect(candidates, votes, 2, Options{PreferVariety: true}))
	want = []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unweighted selection = %v, want %v", got, want)
	}
}

func TestSmartSelectDeterminism(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Cuisine: "italian", Difficulty: "easy", CostCents: cents(800)},
		{ID: "b", Cuisine: "thai", Difficulty: "hard", CostCents: cents(1200)},
		{ID: "c", Cuisine: "mexican", Difficulty: "medium"},
		{ID: "d", Cuisine: "italian", Difficulty: "medium", CostCents: cents(400)},
	}
	votes := []Vote{
		vote("alice", "a", SuperLike),
		vote("bob", "b", Like),
		vote("carol", "c", Like),
		vote("dave", "d", OK),
	}

	opts := DefaultOptions()
	opts.BudgetCents = cents(2000)

	first := SmartSelect(candidates, votes, 3, opts)
	for i := 0; i < 10; i++ {
		if got := SmartSelect(candidates, votes, 3, opts); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}
