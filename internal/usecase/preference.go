package usecase

import (
	"strconv"
	"strings"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
)

// NeutralPreferenceScore присваивается при отсутствии Flexible-критериев,
// чтобы пустой набор предпочтений не занижал кандидата.
const NeutralPreferenceScore = 0.5

// PreferenceEvaluation — итог проверки профиля против набора критериев.
type PreferenceEvaluation struct {
	Excluded     bool
	Score        float64
	PerCriterion []domain.CriterionResult
}

// EvaluatePreferences проверяет профиль против набора критериев владельца.
// None пропускается; несовпавший DealBreaker исключает пару и прерывает оценку;
// Flexible-критерии дают долю совпавших как оценку в [0, 1].
// Неразбираемое значение критерия логируется и пропускается: одна битая
// запись предпочтений не должна ломать матчинг всего пула.
func EvaluatePreferences(profile *domain.MatchProfile, criteria []domain.PreferenceCriterion, log logger.Logger) PreferenceEvaluation {
	eval := PreferenceEvaluation{
		PerCriterion: make([]domain.CriterionResult, 0, len(criteria)),
	}

	var flexTotal, flexMatched int
	for _, c := range criteria {
		if c.Priority == domain.PriorityNone {
			continue
		}

		matched, err := matchCriterion(profile, c)
		if err != nil {
			log.Warnf("skipping malformed criterion %s=%q: %v", c.Kind, c.Value, err)
			eval.PerCriterion = append(eval.PerCriterion, domain.CriterionResult{Kind: c.Kind, Skipped: true})
			continue
		}

		eval.PerCriterion = append(eval.PerCriterion, domain.CriterionResult{Kind: c.Kind, Matched: matched})

		switch c.Priority {
		case domain.PriorityDealBreaker:
			if !matched {
				eval.Excluded = true
				eval.Score = 0
				return eval
			}
		case domain.PriorityFlexible:
			flexTotal++
			if matched {
				flexMatched++
			}
		}
	}

	if flexTotal == 0 {
		eval.Score = NeutralPreferenceScore
	} else {
		eval.Score = float64(flexMatched) / float64(flexTotal)
	}

	return eval
}

// matchCriterion применяет предикат, специфичный для семантики критерия.
func matchCriterion(profile *domain.MatchProfile, c domain.PreferenceCriterion) (bool, error) {
	switch c.Kind {
	case domain.CriterionJobCategory:
		return strings.EqualFold(profile.JobCategory, strings.TrimSpace(c.Value)), nil

	case domain.CriterionTravel:
		return strings.EqualFold(profile.Travel, strings.TrimSpace(c.Value)), nil

	case domain.CriterionCompanySize:
		return strings.EqualFold(profile.CompanySize, strings.TrimSpace(c.Value)), nil

	case domain.CriterionEmploymentType:
		return strings.EqualFold(profile.EmploymentType, strings.TrimSpace(c.Value)), nil

	case domain.CriterionWorkSetting:
		return intersects(profile.WorkSettings, splitSet(c.Value)), nil

	case domain.CriterionEducationLevel:
		return intersects(profile.EducationLevels, splitSet(c.Value)), nil

	case domain.CriterionYearsExperience:
		minYears, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			return false, e.Wrap(c.Value, e.ErrMalformedPreference)
		}
		return profile.YearsExperience >= minYears, nil

	case domain.CriterionSalary:
		prefMin, prefMax, err := parseRangeCents(c.Value)
		if err != nil {
			return false, err
		}
		return rangesOverlap(prefMin, prefMax, profile.SalaryMinCents, profile.SalaryMaxCents), nil

	default:
		return false, e.Wrap(string(c.Kind), e.ErrMalformedPreference)
	}
}

// splitSet разбирает значение-множество вида "Remote,Hybrid".
func splitSet(value string) []string {
	parts := strings.Split(value, ",")
	set := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			set = append(set, trimmed)
		}
	}

	return set
}

// intersects возвращает true при непустом пересечении множеств без учёта регистра.
func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}

	return false
}

// parseRangeCents разбирает диапазон "min-max" в копейках.
// Открытые границы: "120000-" и "-180000"; одиночное число — вырожденный диапазон.
func parseRangeCents(value string) (int64, int64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, 0, e.Wrap(value, e.ErrMalformedPreference)
	}

	minStr, maxStr, found := strings.Cut(s, "-")
	if !found {
		v, err := parseCents(minStr)
		if err != nil {
			return 0, 0, err
		}
		return v, v, nil
	}

	var rangeMin, rangeMax int64
	var err error
	if strings.TrimSpace(minStr) != "" {
		if rangeMin, err = parseCents(minStr); err != nil {
			return 0, 0, err
		}
	}
	if strings.TrimSpace(maxStr) != "" {
		if rangeMax, err = parseCents(maxStr); err != nil {
			return 0, 0, err
		}
	}

	if rangeMin > 0 && rangeMax > 0 && rangeMin > rangeMax {
		return 0, 0, e.Wrap(value, e.ErrMalformedPreference)
	}

	return rangeMin, rangeMax, nil
}

func parseCents(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, e.Wrap(s, e.ErrMalformedPreference)
	}

	return v, nil
}

// rangesOverlap проверяет пересечение зарплатных диапазонов; 0 — открытая граница.
func rangesOverlap(aMin, aMax, bMin, bMax int64) bool {
	if aMax > 0 && bMin > 0 && bMin > aMax {
		return false
	}
	if aMin > 0 && bMax > 0 && bMax < aMin {
		return false
	}

	return true
}
