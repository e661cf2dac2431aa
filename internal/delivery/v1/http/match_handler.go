package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchUsecase usecase.MatchUC
	logger       logger.Logger
}

func NewMatchHandler(matchUsecase usecase.MatchUC, logger logger.Logger) *MatchHandler {
	return &MatchHandler{matchUsecase: matchUsecase, logger: logger}
}

type matchItemPayload struct {
	CounterpartID   int64   `json:"counterpart_id"`
	SimilarityScore float64 `json:"similarity_score"`
	PreferenceScore float64 `json:"preference_score"`
	BlendedScore    float64 `json:"blended_score"`
	Rank            int     `json:"rank"`
}

type rankResponse struct {
	TargetID  int64              `json:"target_id"`
	Results   []matchItemPayload `json:"results"`
	FromCache bool               `json:"from_cache"`
}

// rankCandidates
//
//	@Summary		Кандидаты для вакансии
//	@Description	Возвращает соискателей, ранжированных по смешанной оценке близости и предпочтений
//	@Tags			positions
//	@Produce		json
//	@Param			id		path		int		true	"ID вакансии"
//	@Param			limit	query		int		false	"Максимум строк в ответе"
//	@Param			pool	query		string	false	"Явный пул ID соискателей через запятую"
//	@Success		200		{object}	rankResponse	"Ранжированный список"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Профиль не найден"
//	@Router			/positions/{id}/candidates [get]
func (m *MatchHandler) rankCandidates(w http.ResponseWriter, r *http.Request) {
	m.rank(w, r, m.matchUsecase.RankCandidatesForPosition)
}

// rankPositions
//
//	@Summary		Вакансии для соискателя
//	@Description	Возвращает вакансии, ранжированные по смешанной оценке близости и предпочтений
//	@Tags			seekers
//	@Produce		json
//	@Param			id		path		int		true	"ID соискателя"
//	@Param			limit	query		int		false	"Максимум строк в ответе"
//	@Param			pool	query		string	false	"Явный пул ID вакансий через запятую"
//	@Success		200		{object}	rankResponse	"Ранжированный список"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	ErrorResponse	"Профиль не найден"
//	@Router			/seekers/{id}/positions [get]
func (m *MatchHandler) rankPositions(w http.ResponseWriter, r *http.Request) {
	m.rank(w, r, m.matchUsecase.RankPositionsForSeeker)
}

func (m *MatchHandler) rank(w http.ResponseWriter, r *http.Request, rank func(ctx context.Context, req *usecase.RankReq) (*usecase.RankRes, error)) {
	targetID, err := parseEntityID(chi.URLParam(r, "id"))
	if err != nil {
		m.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		m.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	pool, err := parsePool(r.URL.Query().Get("pool"))
	if err != nil {
		m.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := rank(r.Context(), usecase.NewRankReq(targetID, pool, limit))
	if err != nil {
		m.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toRankResponse(targetID, res))
}

func toRankResponse(targetID int64, res *usecase.RankRes) *rankResponse {
	items := make([]matchItemPayload, 0, len(res.Results))
	for _, result := range res.Results {
		items = append(items, matchItemPayload{
			CounterpartID:   result.CounterpartID,
			SimilarityScore: result.SimilarityScore,
			PreferenceScore: result.PreferenceScore,
			BlendedScore:    result.BlendedScore,
			Rank:            result.Rank,
		})
	}

	return &rankResponse{
		TargetID:  targetID,
		Results:   items,
		FromCache: res.FromCache,
	}
}
