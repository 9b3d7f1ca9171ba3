package storage

import "strconv"

// Tier ширина производного изображения в пикселях. TierOriginal — исходное содержимое.
type Tier int

const (
	TierOriginal Tier = 0
	TierLarge    Tier = 500
	TierMedium   Tier = 250
	TierSmall    Tier = 100
)

// Tiers все поддерживаемые размеры, от большего к меньшему.
func Tiers() []Tier {
	return []Tier{TierLarge, TierMedium, TierSmall}
}

// ParseTier единственная проверка размера: значение из фиксированного набора,
// иначе исходное содержимое.
func ParseTier(s string) Tier {
	n, err := strconv.Atoi(s)
	if err != nil {
		return TierOriginal
	}
	for _, t := range Tiers() {
		if Tier(n) == t {
			return t
		}
	}
	return TierOriginal
}

// VariantLocator локатор производного файла: <locator>_<tier>.
func VariantLocator(locator string, tier Tier) string {
	if tier == TierOriginal {
		return locator
	}
	return locator + "_" + strconv.Itoa(int(tier))
}
