package progression

import "testing"

func TestCalcZeroXP(t *testing.T) {
	info := Calc(0)
	if info.Level != 1 || info.Tier != "bronze" || info.ProgressPercent != 0 {
		t.Fatalf("expected level 1 bronze 0%%, got %+v", info)
	}
	if info.XPToNextLevel != 700 {
		t.Fatalf("expected 700 xp to next level, got %d", info.XPToNextLevel)
	}
}

func TestCalcExactThreshold(t *testing.T) {
	// 699 stays on level 1, 700 flips to level 2 (threshold met counts).
	if info := Calc(699); info.Level != 1 || info.Tier != "bronze" {
		t.Fatalf("xp=699: expected level 1 bronze, got %+v", info)
	}
	info := Calc(700)
	if info.Level != 2 || info.Tier != "bronze" {
		t.Fatalf("xp=700: expected level 2 bronze, got %+v", info)
	}
	if info.XPIntoLevel != 0 || info.ProgressPercent != 0 {
		t.Fatalf("xp=700: expected fresh level, got %+v", info)
	}
}

func TestCalcTierBoundaries(t *testing.T) {
	cases := []struct {
		xp    int64
		level int
		tier  string
	}{
		{2799, 4, "bronze"},
		{2800, 5, "gold"},
		{7799, 9, "gold"},
		{7800, 10, "platinum"},
		{22799, 19, "platinum"},
		{22800, 20, "master"},
	}
	for _, c := range cases {
		info := Calc(c.xp)
		if info.Level != c.level || info.Tier != c.tier {
			t.Errorf("xp=%d: expected level %d %s, got level %d %s", c.xp, c.level, c.tier, info.Level, info.Tier)
		}
	}
}

func TestCalcMaxLevel(t *testing.T) {
	floor := threshold(MaxLevel)
	info := Calc(floor)
	if info.Level != MaxLevel || info.Tier != "master" {
		t.Fatalf("expected max level master, got %+v", info)
	}
	if info.ProgressPercent != 100 || info.XPToNextLevel != 0 {
		t.Fatalf("max level should report 100%% and 0 to next, got %+v", info)
	}
	// XP past the cap never changes the answer shape.
	past := Calc(floor + 999999)
	if past.Level != MaxLevel || past.XPToNextLevel != 0 || past.ProgressPercent != 100 {
		t.Fatalf("past cap: got %+v", past)
	}
}

func TestCalcDeterministic(t *testing.T) {
	for _, xp := range []int64{0, 1, 699, 700, 12345, 42800} {
		if a, b := Calc(xp), Calc(xp); a != b {
			t.Fatalf("xp=%d: two calls disagree: %+v vs %+v", xp, a, b)
		}
	}
}

func TestCalcProgressMidLevel(t *testing.T) {
	// Level 1, 350 of 700 into the level.
	info := Calc(350)
	if info.Level != 1 || info.XPIntoLevel != 350 || info.ProgressPercent != 50 {
		t.Fatalf("xp=350: got %+v", info)
	}
	if info.XPToNextLevel != 350 {
		t.Fatalf("xp=350: expected 350 to next, got %d", info.XPToNextLevel)
	}
}

func TestCalcNegativeClamped(t *testing.T) {
	if info := Calc(-5); info.Level != 1 || info.XPIntoLevel != 0 {
		t.Fatalf("negative xp should clamp to zero, got %+v", info)
	}
}
