package models

import "gorm.io/gorm"

// ShiftWallet holds a user's balance of Shift credits, the micro-currency
// that gates paid actions such as bidding.
type ShiftWallet struct {
	gorm.Model
	UserID  uint `json:"userId" gorm:"uniqueIndex;not null"`
	Balance int  `json:"balance" gorm:"not null;default:0"`
}

func (ShiftWallet) TableName() string { return "shift_wallets" }

// ShiftTransaction is one movement on a wallet. Amount is positive for
// credits and negative for debits so the ledger sums to the balance.
type ShiftTransaction struct {
	gorm.Model
	UserID    uint   `json:"userId" gorm:"index;not null"`
	Amount    int    `json:"amount" gorm:"not null"`
	Kind      string `json:"kind" gorm:"type:varchar(10);not null"` // 'credit', 'debit'
	Reason    string `json:"reason" gorm:"not null"`                // 'signup_grant', 'purchase', 'bid', 'refund'
	Reference string `json:"reference"`                             // e.g. bid or package id
}

func (ShiftTransaction) TableName() string { return "shift_transactions" }

// ShiftPackage is a purchasable bundle of credits. BonusFormula is an
// admin-editable govaluate expression over {shifts, price} returning extra
// credits, e.g. "shifts >= 20 ? shifts / 4 : 0".
type ShiftPackage struct {
	gorm.Model
	Name         string  `json:"name" gorm:"not null"`
	Shifts       int     `json:"shifts" gorm:"not null"`
	Price        float64 `json:"price" gorm:"type:numeric(10,2);not null"`
	BonusFormula string  `json:"bonusFormula"`
	Active       bool    `json:"active" gorm:"default:true"`
}

func (ShiftPackage) TableName() string { return "shift_packages" }
