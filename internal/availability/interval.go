// Package availability реализует вычисление доступности: преобразование
// правил расписания и существующих бронирований в список доступных слотов.
// Все функции пакета чистые - без состояния и побочных эффектов, поэтому
// могут вызываться параллельно для разных дат и услуг.
package availability

import "sort"

// Минуты в сутках
const dayMinutes = 24 * 60

// Interval полуинтервал времени суток [Start, End) в минутах с полуночи
type Interval struct {
	Start int
	End   int
}

// IsEmpty возвращает true для вырожденного интервала
func (i Interval) IsEmpty() bool {
	return i.Start >= i.End
}

// Overlaps проверяет пересечение двух полуинтервалов.
// Строгие неравенства: граничащие интервалы (End == other.Start) не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// clamp ограничивает интервал пределами суток
func (i Interval) clamp() Interval {
	if i.Start < 0 {
		i.Start = 0
	}
	if i.End > dayMinutes {
		i.End = dayMinutes
	}
	return i
}

// normalize сортирует интервалы и сливает пересекающиеся и смежные
// в дизъюнктное упорядоченное множество
func normalize(intervals []Interval) []Interval {
	filtered := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			filtered = append(filtered, iv)
		}
	}
	if len(filtered) == 0 {
		return []Interval{}
	}

	sort.Slice(filtered, func(a, b int) bool {
		if filtered[a].Start != filtered[b].Start {
			return filtered[a].Start < filtered[b].Start
		}
		return filtered[a].End < filtered[b].End
	})

	merged := []Interval{filtered[0]}
	for _, iv := range filtered[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// subtract вычитает интервал sub из каждого интервала множества.
// Вычитание может полностью удалить, укоротить или расщепить интервал.
// Вход и выход - дизъюнктные упорядоченные множества.
func subtract(intervals []Interval, sub Interval) []Interval {
	if sub.IsEmpty() {
		return intervals
	}

	result := make([]Interval, 0, len(intervals)+1)
	for _, iv := range intervals {
		if !iv.Overlaps(sub) {
			result = append(result, iv)
			continue
		}

		// Левый остаток
		if iv.Start < sub.Start {
			result = append(result, Interval{Start: iv.Start, End: sub.Start})
		}
		// Правый остаток
		if sub.End < iv.End {
			result = append(result, Interval{Start: sub.End, End: iv.End})
		}
	}

	return result
}
