package leaderboard

import "fmt"

// Placement is a rank used for best-rank comparison. Participated marks a roster
// entrant outside the podium.
type Placement int

const (
	First        Placement = 1
	Second       Placement = 2
	Third        Placement = 3
	Participated Placement = 4
)

// Points is the award table applied by one update pass.
type Points struct {
	FirstPlace    int
	SecondPlace   int
	ThirdPlace    int
	Participation int
}

func DefaultPoints() Points {
	return Points{
		FirstPlace:    10,
		SecondPlace:   7,
		ThirdPlace:    5,
		Participation: 2,
	}
}

func (p Points) Validate() error {
	if p.FirstPlace < 0 || p.SecondPlace < 0 || p.ThirdPlace < 0 || p.Participation < 0 {
		return fmt.Errorf("points must be >= 0")
	}
	return nil
}

// For returns the award for placement, zero for anything unknown.
func (p Points) For(placement Placement) int {
	switch placement {
	case First:
		return p.FirstPlace
	case Second:
		return p.SecondPlace
	case Third:
		return p.ThirdPlace
	case Participated:
		return p.Participation
	default:
		return 0
	}
}
