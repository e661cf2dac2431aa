package domain

// MatchResult — одна строка ранжированного списка.
// Исключённые deal-breaker'ом пары в список не попадают вовсе.
type MatchResult struct {
	CounterpartID   int64
	SimilarityScore float64
	PreferenceScore float64
	BlendedScore    float64
	Rank            int
}
