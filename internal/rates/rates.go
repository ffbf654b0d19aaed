package rates

import (
	"errors"
	"fmt"
	"math"
)

// Ставки за полный час и за "хвост" от получаса
const (
	HourlyTotal   = 125
	HourlyTeacher = 100
	HalfTotal     = 63
	HalfTeacher   = 50
)

// ErrUnknownDuration длительность не из сетки 0.5/1/1.5/2 ч
var ErrUnknownDuration = errors.New("unknown session duration")

var canonical = []float64{0.5, 1, 1.5, 2}

// Split разбивка стоимости одного занятия
type Split struct {
	Total   int `json:"total"`
	Teacher int `json:"teacher"`
	Company int `json:"company"`
}

// Add складывает две разбивки
func (s Split) Add(other Split) Split {
	return Split{
		Total:   s.Total + other.Total,
		Teacher: s.Teacher + other.Teacher,
		Company: s.Company + other.Company,
	}
}

// Compute считает стоимость занятия произвольной длительности (в часах).
// Единственная формула расчёта: табличные значения получаются из неё же.
func Compute(hours float64) Split {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return Split{}
	}

	whole, frac := math.Modf(hours)
	total := int(whole) * HourlyTotal
	teacher := int(whole) * HourlyTeacher
	if frac >= 0.5 {
		total += HalfTotal
		teacher += HalfTeacher
	}

	return Split{
		Total:   total,
		Teacher: teacher,
		Company: total - teacher,
	}
}

// Lookup возвращает разбивку только для допустимых длительностей
func Lookup(hours float64) (Split, error) {
	if !IsCanonical(hours) {
		return Split{}, fmt.Errorf("%w: %v", ErrUnknownDuration, hours)
	}
	return Compute(hours), nil
}

// IsCanonical проверяет что длительность из сетки
func IsCanonical(hours float64) bool {
	for _, d := range canonical {
		if hours == d {
			return true
		}
	}
	return false
}

// Canonical возвращает допустимые длительности по возрастанию
func Canonical() []float64 {
	out := make([]float64, len(canonical))
	copy(out, canonical)
	return out
}
