package usecase

import "context"

type MatchUC interface {
	RankCandidatesForPosition(ctx context.Context, req *RankReq) (*RankRes, error)
	RankPositionsForSeeker(ctx context.Context, req *RankReq) (*RankRes, error)
}

type ProfileUC interface {
	SaveProfile(ctx context.Context, req *SaveProfileReq) error
	RefreshEmbedding(ctx context.Context, req *RefreshEmbeddingReq) error
}
