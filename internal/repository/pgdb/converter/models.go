package converter

import "time"

// EmbeddingModel представляет запись таблицы embeddings в PostgreSQL.
// Vector хранится закодированным в little-endian байты.
type EmbeddingModel struct {
	EntityType   string     `db:"entity_type"`
	EntityID     int64      `db:"entity_id"`
	ModelVersion string     `db:"model_version"`
	Vector       []byte     `db:"vector"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// MatchProfileModel представляет запись таблиц seekers/positions в PostgreSQL.
type MatchProfileModel struct {
	ID              int64      `db:"id"`
	JobCategory     string     `db:"job_category"`
	EducationLevels []string   `db:"education_levels"`
	YearsExperience int        `db:"years_experience"`
	WorkSettings    []string   `db:"work_settings"`
	Travel          string     `db:"travel"`
	CompanySize     string     `db:"company_size"`
	EmploymentType  string     `db:"employment_type"`
	SalaryMinCents  int64      `db:"salary_min_cents"`
	SalaryMaxCents  int64      `db:"salary_max_cents"`
	Summary         string     `db:"summary"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// CriterionModel представляет запись таблицы preference_criteria в PostgreSQL.
type CriterionModel struct {
	Kind     string `db:"kind"`
	Value    string `db:"value"`
	Priority string `db:"priority"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	EntityType  string     `db:"entity_type"`
	EntityID    int64      `db:"entity_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
