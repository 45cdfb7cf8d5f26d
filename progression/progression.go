// Package progression derives level, tier and progress from accumulated XP.
// Nothing here is persisted: XP is the single source of truth and every call
// recomputes the same answer from it.
package progression

const MaxLevel = 30

type Info struct {
	Level           int    `json:"level"`
	Tier            string `json:"tier"`
	ProgressPercent int    `json:"progress_percent"`
	XPIntoLevel     int64  `json:"xp_into_level"`
	XPToNextLevel   int64  `json:"xp_to_next_level"`
}

// tierBands are contiguous level ranges with a flat XP cost per level inside
// the band. A band boundary contributes its own cost, not its neighbor's.
var tierBands = []struct {
	name       string
	firstLevel int
	lastLevel  int
	xpPerLevel int64
}{
	{"bronze", 1, 4, 700},
	{"gold", 5, 9, 1000},
	{"platinum", 10, 19, 1500},
	{"master", 20, 30, 2000},
}

// threshold returns the cumulative XP required to reach level.
func threshold(level int) int64 {
	var total int64
	for _, band := range tierBands {
		for l := band.firstLevel; l <= band.lastLevel; l++ {
			if l >= level {
				return total
			}
			total += band.xpPerLevel
		}
	}
	return total
}

func tierOf(level int) (string, int64) {
	for _, band := range tierBands {
		if level >= band.firstLevel && level <= band.lastLevel {
			return band.name, band.xpPerLevel
		}
	}
	last := tierBands[len(tierBands)-1]
	return last.name, last.xpPerLevel
}

// Calc maps XP to level info. The level is the largest one whose cumulative
// threshold is <= xp, capped at MaxLevel.
func Calc(xp int64) Info {
	if xp < 0 {
		xp = 0
	}

	level := 1
	for l := 2; l <= MaxLevel; l++ {
		if threshold(l) <= xp {
			level = l
		} else {
			break
		}
	}

	tier, perLevel := tierOf(level)
	info := Info{Level: level, Tier: tier}

	if level >= MaxLevel {
		info.ProgressPercent = 100
		info.XPIntoLevel = xp - threshold(MaxLevel)
		info.XPToNextLevel = 0
		return info
	}

	info.XPIntoLevel = xp - threshold(level)
	info.XPToNextLevel = threshold(level+1) - xp
	pct := int(100 * info.XPIntoLevel / perLevel)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	info.ProgressPercent = pct
	return info
}
