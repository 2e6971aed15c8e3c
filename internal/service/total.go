package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

// Line строка формы заказа в том виде, в каком её ввёл пользователь
type Line struct {
	ProductID string
	Quantity  string
	Price     string
}

// RunningTotal Σ quantity×price по строкам формы, с двумя знаками.
// Пустые и нечисловые значения считаются нулём. Итог только для
// подсказки пользователю: сумму заказа определяет сервер.
func RunningTotal(lines []Line) string {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(parseOrZero(l.Quantity).Mul(parseOrZero(l.Price)))
	}
	return total.StringFixed(2)
}

// ItemsTotal то же для уже разобранных позиций
func ItemsTotal(items []domain.OrderItemInput) string {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Price)))
	}
	return total.StringFixed(2)
}

func parseOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
