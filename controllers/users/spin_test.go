package users

import (
	"math/rand"
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/models"
)

func catalog(probs ...float64) []models.Prize {
	prizes := make([]models.Prize, len(probs))
	for i, p := range probs {
		prizes[i] = models.Prize{
			ID:          uint(i + 1),
			Name:        string(rune('A' + i)),
			Probability: p,
			Type:        models.PrizePhysical,
			Active:      true,
		}
	}
	return prizes
}

func TestPickPrizeBands(t *testing.T) {
	// Cumulative bands: A [0,0.05), B [0.05,0.20), C [0.20,1.00).
	prizes := catalog(0.05, 0.15, 0.8)

	cases := []struct {
		r    float64
		want string
	}{
		{0.0, "A"},
		{0.049, "A"},
		{0.05, "B"},
		{0.19, "B"},
		{0.2, "C"},
		{0.5, "C"},
		{0.999, "C"},
	}
	for _, c := range cases {
		idx := pickPrize(prizes, c.r)
		if idx < 0 || prizes[idx].Name != c.want {
			t.Errorf("r=%v: expected %s, got index %d", c.r, c.want, idx)
		}
	}
}

func TestPickPrizeSkipsZeroWeight(t *testing.T) {
	prizes := catalog(0, 1.0, 0)
	for _, r := range []float64{0, 0.5, 0.999} {
		idx := pickPrize(prizes, r)
		if idx != 1 {
			t.Fatalf("r=%v: zero-weight prize must never win, got index %d", r, idx)
		}
	}
}

func TestPickPrizeEmpty(t *testing.T) {
	if idx := pickPrize(nil, 0.5); idx != -1 {
		t.Fatalf("expected -1 on empty catalog, got %d", idx)
	}
	if idx := pickPrize(catalog(0, 0), 0.5); idx != -1 {
		t.Fatalf("expected -1 when every weight is zero, got %d", idx)
	}
}

func TestPickPrizeUnnormalizedWeights(t *testing.T) {
	// Weights do not have to sum to 1; bands scale with the actual total.
	prizes := catalog(5, 15, 80)
	if idx := pickPrize(prizes, 50); prizes[idx].Name != "C" {
		t.Fatalf("r=50 of 100: expected C, got %s", prizes[idx].Name)
	}
	if idx := pickPrize(prizes, 6); prizes[idx].Name != "B" {
		t.Fatalf("r=6 of 100: expected B, got %s", prizes[idx].Name)
	}
}

func TestPickPrizeFrequencies(t *testing.T) {
	prizes := catalog(0.05, 0.15, 0.8)
	total := 1.0
	const n = 200000
	counts := make([]int, len(prizes))
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < n; i++ {
		idx := pickPrize(prizes, rng.Float64()*total)
		if idx < 0 {
			t.Fatal("draw returned no prize")
		}
		counts[idx]++
	}
	for i, p := range prizes {
		want := p.Probability / total
		got := float64(counts[i]) / n
		if diff := got - want; diff > 0.01 || diff < -0.01 {
			t.Errorf("prize %s: observed frequency %.4f, expected %.4f", p.Name, got, want)
		}
	}
}
