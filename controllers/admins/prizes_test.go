package admins

import (
	"testing"

	"github.com/BronksDEV/luxbrasil-sub000/models"
)

func TestCalculateChancesNormalizesOverActiveTotal(t *testing.T) {
	prizes := []models.Prize{
		{ID: 1, Probability: 5, Active: true},
		{ID: 2, Probability: 15, Active: true},
		{ID: 3, Probability: 80, Active: true},
	}

	resp := calculateChances(prizes)
	if len(resp) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(resp))
	}
	want := []float64{5, 15, 80}
	for i, r := range resp {
		if r.Chance != want[i] {
			t.Errorf("prize %d: chance = %v, want %v", r.ID, r.Chance, want[i])
		}
	}
}

func TestCalculateChancesExcludesInactiveAndZeroWeight(t *testing.T) {
	prizes := []models.Prize{
		{ID: 1, Probability: 25, Active: true},
		{ID: 2, Probability: 25, Active: false},
		{ID: 3, Probability: 0, Active: true},
		{ID: 4, Probability: 75, Active: true},
	}

	resp := calculateChances(prizes)
	// Total is 100 from the two active positive weights only.
	if resp[0].Chance != 25 {
		t.Errorf("active prize chance = %v, want 25", resp[0].Chance)
	}
	if resp[1].Chance != 0 {
		t.Errorf("inactive prize chance = %v, want 0", resp[1].Chance)
	}
	if resp[2].Chance != 0 {
		t.Errorf("zero-weight prize chance = %v, want 0", resp[2].Chance)
	}
	if resp[3].Chance != 75 {
		t.Errorf("active prize chance = %v, want 75", resp[3].Chance)
	}
}

func TestCalculateChancesEmptyCatalog(t *testing.T) {
	resp := calculateChances(nil)
	if len(resp) != 0 {
		t.Fatalf("expected empty response, got %d rows", len(resp))
	}
}
