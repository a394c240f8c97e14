// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurrence of a budget limit.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether p is a known budget period.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodWeekly || p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// Budget represents a spending limit for a category over a recurring period.
type Budget struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	CategoryID uuid.UUID       `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// NewBudget creates a new active Budget entity.
func NewBudget(userID, categoryID uuid.UUID, amount decimal.Decimal, period BudgetPeriod, startDate time.Time) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Period:     period,
		StartDate:  startDate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// PeriodWindow returns the half-open window [start, end) of the budget period
// containing asOf. Periods are anchored on StartDate; dates before StartDate
// map to the first period. Monthly and yearly periods anchored on a day the
// target month lacks start on that month's last day.
func (b *Budget) PeriodWindow(asOf time.Time) (time.Time, time.Time) {
	anchor := b.StartDate
	if asOf.Before(anchor) {
		asOf = anchor
	}

	step := 1
	switch b.Period {
	case BudgetPeriodWeekly:
		weeks := int(asOf.Sub(anchor).Hours() / (24 * 7))
		start := anchor.AddDate(0, 0, weeks*7)
		if start.After(asOf) {
			weeks--
			start = anchor.AddDate(0, 0, weeks*7)
		}
		return start, anchor.AddDate(0, 0, (weeks+1)*7)
	case BudgetPeriodYearly:
		step = 12
	}

	months := (asOf.Year()-anchor.Year())*12 + int(asOf.Month()-anchor.Month())
	months -= months % step
	start := addMonthsClamped(anchor, months)
	if start.After(asOf) {
		months -= step
		start = addMonthsClamped(anchor, months)
	}
	return start, addMonthsClamped(anchor, months+step)
}

// addMonthsClamped moves t forward by months, keeping its day of month but
// never spilling into the following month.
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	first = first.AddDate(0, months, 0)
	day := min(t.Day(), daysIn(first.Year(), first.Month()))
	return first.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
