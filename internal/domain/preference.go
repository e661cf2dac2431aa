package domain

import "github.com/DRSN-tech/match-backend/pkg/e"

// Priority — уровень важности критерия предпочтения.
type Priority string

const (
	// PriorityNone — критерий не участвует ни в фильтрации, ни в оценке
	PriorityNone Priority = "None"
	// PriorityFlexible — критерий влияет на оценку, но не исключает пару
	PriorityFlexible Priority = "Flexible"
	// PriorityDealBreaker — несовпадение критерия полностью исключает пару
	PriorityDealBreaker Priority = "DealBreaker"
)

// ParsePriority валидирует строковое значение приоритета.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityNone, PriorityFlexible, PriorityDealBreaker:
		return Priority(s), nil
	default:
		return "", e.Wrap(s, e.ErrInvalidPriority)
	}
}

// CriterionKind — измерение, по которому сравнивается пара.
type CriterionKind string

const (
	CriterionJobCategory     CriterionKind = "job_category"
	CriterionEducationLevel  CriterionKind = "education_level"
	CriterionYearsExperience CriterionKind = "years_experience_min"
	CriterionWorkSetting     CriterionKind = "work_setting"
	CriterionTravel          CriterionKind = "travel_requirements"
	CriterionCompanySize     CriterionKind = "company_size"
	CriterionEmploymentType  CriterionKind = "employment_type"
	CriterionSalary          CriterionKind = "salary"
)

// PreferenceCriterion — одно сохранённое предпочтение владельца набора.
// Value хранится в сыром строковом виде и разбирается по семантике Kind:
// скаляр, список через запятую, целое число или диапазон "min-max"
// (открытые диапазоны: "120000-" и "-180000").
type PreferenceCriterion struct {
	Kind     CriterionKind
	Value    string
	Priority Priority
}

func NewPreferenceCriterion(kind CriterionKind, value string, priority Priority) PreferenceCriterion {
	return PreferenceCriterion{
		Kind:     kind,
		Value:    value,
		Priority: priority,
	}
}

// CriterionResult — результат проверки одного критерия.
type CriterionResult struct {
	Kind    CriterionKind
	Matched bool
	Skipped bool
}
