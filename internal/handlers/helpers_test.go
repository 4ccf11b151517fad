package handlers

import (
	"testing"

	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "one thousand rupees", amountInWords(1000))
	assert.Equal(t, "five hundred rupees 50 paise", amountInWords(500.50))
	assert.Equal(t, "zero rupees", amountInWords(0))
}

func TestPackageBonusFormula(t *testing.T) {
	pkg := models.ShiftPackage{Shifts: 60, Price: 399, BonusFormula: "shifts / 4"}
	assert.Equal(t, 15, packageBonus(pkg))
}

func TestPackageBonusConditional(t *testing.T) {
	pkg := models.ShiftPackage{Shifts: 25, Price: 199, BonusFormula: "shifts >= 20 ? 5 : 0"}
	assert.Equal(t, 5, packageBonus(pkg))

	pkg.Shifts = 10
	assert.Equal(t, 0, packageBonus(pkg))
}

func TestPackageBonusBadFormulaYieldsZero(t *testing.T) {
	assert.Equal(t, 0, packageBonus(models.ShiftPackage{Shifts: 10, BonusFormula: "shifts +"}))
	assert.Equal(t, 0, packageBonus(models.ShiftPackage{Shifts: 10, BonusFormula: ""}))
	assert.Equal(t, 0, packageBonus(models.ShiftPackage{Shifts: 10, BonusFormula: "0 - 5"}))
}
