package utils

import (
	"fmt"
	"time"
)

// ParseQueryDate interpreta datas vindas de query params, aceitando
// RFC3339 ou o formato curto "2006-01-02". O resultado é sempre em UTC;
// string vazia devolve o zero value (sem filtro).
func ParseQueryDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("data inválida: %q (use RFC3339 ou YYYY-MM-DD)", raw)
}

// ParseDateRange interpreta o par from/to e valida a ordem
func ParseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := ParseQueryDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseQueryDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("intervalo inválido: from (%s) depois de to (%s)", fromStr, toStr)
	}
	return from, to, nil
}
