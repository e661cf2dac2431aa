package domain

import "time"

// MatchProfile — канонический срез сопоставляемых атрибутов сущности.
// CRUD-слой присылает его при каждом сохранении анкеты или вакансии;
// ядро матчинга само данные не достаёт и не нормализует.
type MatchProfile struct {
	EntityType EntityType
	EntityID   int64

	JobCategory     string
	EducationLevels []string
	YearsExperience int
	WorkSettings    []string // Remote / Hybrid / On-site
	Travel          string
	CompanySize     string
	EmploymentType  string

	// Зарплатные ожидания/вилка в копейках; 0 — открытая граница
	SalaryMinCents int64
	SalaryMaxCents int64

	// Summary — свободный текст, из которого строится эмбеддинг
	Summary string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewMatchProfile(entityType EntityType, entityID int64) *MatchProfile {
	return &MatchProfile{
		EntityType: entityType,
		EntityID:   entityID,
	}
}
