package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUC
	logger         logger.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUC, logger logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase, logger: logger}
}

type saveProfilePayload struct {
	JobCategory     string             `json:"job_category"`
	EducationLevels []string           `json:"education_levels"`
	YearsExperience int                `json:"years_experience"`
	WorkSettings    []string           `json:"work_settings"`
	Travel          string             `json:"travel_requirements"`
	CompanySize     string             `json:"company_size"`
	EmploymentType  string             `json:"employment_type"`
	SalaryMin       string             `json:"salary_min"`
	SalaryMax       string             `json:"salary_max"`
	Summary         string             `json:"summary"`
	Criteria        []criterionPayload `json:"criteria"`
}

// saveSeekerProfile
//
//	@Summary		Сохранение профиля соискателя
//	@Description	Принимает срез атрибутов и набор предпочтений, ставит задание на обновление эмбеддинга
//	@Tags			seekers
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID соискателя"
//	@Param			profile	body		saveProfilePayload	true	"Срез профиля"
//	@Success		200		{object}	map[string]interface{}	"Профиль сохранён"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/seekers/{id} [put]
func (p *ProfileHandler) saveSeekerProfile(w http.ResponseWriter, r *http.Request) {
	p.saveProfile(w, r, domain.EntitySeeker)
}

// savePositionProfile
//
//	@Summary		Сохранение профиля вакансии
//	@Description	Принимает срез атрибутов и набор предпочтений, ставит задание на обновление эмбеддинга
//	@Tags			positions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID вакансии"
//	@Param			profile	body		saveProfilePayload	true	"Срез профиля"
//	@Success		200		{object}	map[string]interface{}	"Профиль сохранён"
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/positions/{id} [put]
func (p *ProfileHandler) savePositionProfile(w http.ResponseWriter, r *http.Request) {
	p.saveProfile(w, r, domain.EntityPosition)
}

func (p *ProfileHandler) saveProfile(w http.ResponseWriter, r *http.Request, entityType domain.EntityType) {
	const maxBodySize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	entityID, err := parseEntityID(chi.URLParam(r, "id"))
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := ensureJSONBody(r); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}

	var payload saveProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.Wrap(err.Error(), e.ErrStatusBadRequest))
		return
	}

	profile, criteria, err := buildSaveProfileReq(entityType, entityID, &payload)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := p.profileUsecase.SaveProfile(r.Context(), usecase.NewSaveProfileReq(profile, criteria)); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"entity_type": entityType,
		"entity_id":   entityID,
		"saved":       true,
	})
}

func buildSaveProfileReq(entityType domain.EntityType, entityID int64, payload *saveProfilePayload) (*domain.MatchProfile, []domain.PreferenceCriterion, error) {
	salaryMin, err := parseSalaryToCents(payload.SalaryMin)
	if err != nil {
		return nil, nil, err
	}

	salaryMax, err := parseSalaryToCents(payload.SalaryMax)
	if err != nil {
		return nil, nil, err
	}

	criteria, err := parseCriteria(payload.Criteria)
	if err != nil {
		return nil, nil, err
	}

	profile := domain.NewMatchProfile(entityType, entityID)
	profile.JobCategory = payload.JobCategory
	profile.EducationLevels = payload.EducationLevels
	profile.YearsExperience = payload.YearsExperience
	profile.WorkSettings = payload.WorkSettings
	profile.Travel = payload.Travel
	profile.CompanySize = payload.CompanySize
	profile.EmploymentType = payload.EmploymentType
	profile.SalaryMinCents = salaryMin
	profile.SalaryMaxCents = salaryMax
	profile.Summary = payload.Summary

	return profile, criteria, nil
}
