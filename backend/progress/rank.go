package progress

const (
	PointsPerLesson    = 10
	PointsPerStreakDay = 5
)

type Tier struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
}

// Tiers is ordered by MinPoints ascending.
var Tiers = []Tier{
	{Name: "Beginner", MinPoints: 0},
	{Name: "Bronze Learner", MinPoints: 100},
	{Name: "Silver Learner", MinPoints: 250},
	{Name: "Gold Learner", MinPoints: 500},
	{Name: "Master Learner", MinPoints: 1000},
}

func Points(completedLessons, streakDays int) int {
	return PointsPerLesson*completedLessons + PointsPerStreakDay*streakDays
}

// Rank returns the tier label for points.
func Rank(points int) string {
	return tierFor(points).Name
}

type Standing struct {
	Points       int    `json:"points"`
	Rank         string `json:"rank"`
	NextRank     string `json:"next_rank,omitempty"`
	PointsToNext int    `json:"points_to_next"`
}

// StandingFor is the rank plus the distance to the next tier. At the top
// tier NextRank is empty and PointsToNext is 0.
func StandingFor(points int) Standing {
	s := Standing{Points: points, Rank: tierFor(points).Name}
	for _, t := range Tiers {
		if t.MinPoints > points {
			s.NextRank = t.Name
			s.PointsToNext = t.MinPoints - points
			break
		}
	}
	return s
}

func tierFor(points int) Tier {
	current := Tiers[0]
	for _, t := range Tiers {
		if points >= t.MinPoints {
			current = t
		}
	}
	return current
}
