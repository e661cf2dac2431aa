package converter

type MatchResultRedisModel struct {
	CounterpartID   int64   `json:"counterpart_id"`
	SimilarityScore float64 `json:"similarity_score"`
	PreferenceScore float64 `json:"preference_score"`
	BlendedScore    float64 `json:"blended_score"`
	Rank            int     `json:"rank"`
}
