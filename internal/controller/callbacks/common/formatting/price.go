package formatting

import "fmt"

// FormatAmount форматирует сумму по ставкам агентства
func FormatAmount(amount int) string {
	return fmt.Sprintf("%d", amount)
}

// FormatSplit форматирует разделение суммы между учителем и компанией
func FormatSplit(teacher, company int) string {
	return fmt.Sprintf("👩‍🏫 %s / 🏢 %s", FormatAmount(teacher), FormatAmount(company))
}
