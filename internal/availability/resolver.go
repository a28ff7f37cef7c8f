package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// ResolveOpenIntervals превращает набор правил расписания в упорядоченный
// список дизъюнктных открытых интервалов для даты и услуги.
//
// Порядок применения:
//  1. Отбираются правила-кандидаты: weekly по дню недели, date_override и
//     block по конкретной дате; фильтр по услуге (nil = все услуги).
//  2. Если на дату есть date_override правила, они полностью замещают
//     weekly (override для конкретной услуги замещает и общие override).
//  3. Победивший набор применяется по возрастанию приоритета: доступные
//     интервалы добавляются, недоступные вычитаются. Внутри одного
//     приоритета закрытие применяется после открытия и побеждает.
//  4. Все block интервалы вычитаются последними - block всегда побеждает
//     независимо от приоритета.
//
// Если ни одно правило не применимо, дата закрыта: результат пустой.
func ResolveOpenIntervals(rules []*domain.AvailabilityRule, date time.Time, serviceID int64) []Interval {
	var weekly, overrides, blocks []*domain.AvailabilityRule

	for _, rule := range rules {
		if !rule.AppliesToDate(date) || !rule.AppliesToService(serviceID) {
			continue
		}
		if ruleInterval(rule).IsEmpty() {
			// Нарушение инварианта startTime < endTime - правило игнорируется
			continue
		}

		switch rule.RuleType {
		case domain.RuleWeekly:
			weekly = append(weekly, rule)
		case domain.RuleDateOverride:
			overrides = append(overrides, rule)
		case domain.RuleBlock:
			blocks = append(blocks, rule)
		}
	}

	winning := pickWinningSet(weekly, overrides)

	open := applyRules(winning)

	for _, block := range blocks {
		open = subtract(open, ruleInterval(block))
	}

	return open
}

// pickWinningSet выбирает набор правил по старшинству:
// override для услуги > общий override > weekly
func pickWinningSet(weekly, overrides []*domain.AvailabilityRule) []*domain.AvailabilityRule {
	if len(overrides) == 0 {
		return weekly
	}

	var serviceSpecific []*domain.AvailabilityRule
	for _, rule := range overrides {
		if rule.IsServiceSpecific() {
			serviceSpecific = append(serviceSpecific, rule)
		}
	}

	if len(serviceSpecific) > 0 {
		return serviceSpecific
	}
	return overrides
}

// applyRules применяет правила как конвейер преобразований множества
// интервалов: сначала сортировка по приоритету, затем последовательное
// добавление доступных и вычитание недоступных окон
func applyRules(rules []*domain.AvailabilityRule) []Interval {
	ordered := make([]*domain.AvailabilityRule, len(rules))
	copy(ordered, rules)

	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].Priority != ordered[b].Priority {
			return ordered[a].Priority < ordered[b].Priority
		}
		// Внутри приоритета: открытия раньше закрытий
		return ordered[a].IsAvailable && !ordered[b].IsAvailable
	})

	open := []Interval{}
	for _, rule := range ordered {
		iv := ruleInterval(rule)
		if rule.IsAvailable {
			open = normalize(append(open, iv))
		} else {
			open = subtract(open, iv)
		}
	}

	return open
}

func ruleInterval(rule *domain.AvailabilityRule) Interval {
	return Interval{
		Start: rule.StartTime.Minutes(),
		End:   rule.EndTime.Minutes(),
	}
}
