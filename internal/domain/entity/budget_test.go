package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBudget_PeriodWindow(t *testing.T) {
	tests := []struct {
		name      string
		period    BudgetPeriod
		startDate time.Time
		asOf      time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "weekly within first week",
			period:    BudgetPeriodWeekly,
			startDate: day(2025, time.January, 6),
			asOf:      day(2025, time.January, 8),
			wantStart: day(2025, time.January, 6),
			wantEnd:   day(2025, time.January, 13),
		},
		{
			name:      "weekly on a period boundary",
			period:    BudgetPeriodWeekly,
			startDate: day(2025, time.January, 6),
			asOf:      day(2025, time.January, 20),
			wantStart: day(2025, time.January, 20),
			wantEnd:   day(2025, time.January, 27),
		},
		{
			name:      "weekly before start maps to first period",
			period:    BudgetPeriodWeekly,
			startDate: day(2025, time.January, 6),
			asOf:      day(2024, time.December, 30),
			wantStart: day(2025, time.January, 6),
			wantEnd:   day(2025, time.January, 13),
		},
		{
			name:      "monthly mid month",
			period:    BudgetPeriodMonthly,
			startDate: day(2025, time.January, 15),
			asOf:      day(2025, time.March, 20),
			wantStart: day(2025, time.March, 15),
			wantEnd:   day(2025, time.April, 15),
		},
		{
			name:      "monthly before the anchor day",
			period:    BudgetPeriodMonthly,
			startDate: day(2025, time.January, 15),
			asOf:      day(2025, time.March, 10),
			wantStart: day(2025, time.February, 15),
			wantEnd:   day(2025, time.March, 15),
		},
		{
			name:      "monthly jan 31 anchor in early march",
			period:    BudgetPeriodMonthly,
			startDate: day(2025, time.January, 31),
			asOf:      day(2025, time.March, 1),
			wantStart: day(2025, time.February, 28),
			wantEnd:   day(2025, time.March, 31),
		},
		{
			name:      "monthly jan 31 anchor in february",
			period:    BudgetPeriodMonthly,
			startDate: day(2025, time.January, 31),
			asOf:      day(2025, time.February, 10),
			wantStart: day(2025, time.January, 31),
			wantEnd:   day(2025, time.February, 28),
		},
		{
			name:      "monthly jan 31 anchor in april",
			period:    BudgetPeriodMonthly,
			startDate: day(2025, time.January, 31),
			asOf:      day(2025, time.April, 30),
			wantStart: day(2025, time.April, 30),
			wantEnd:   day(2025, time.May, 31),
		},
		{
			name:      "monthly jan 31 anchor in a leap february",
			period:    BudgetPeriodMonthly,
			startDate: day(2024, time.January, 31),
			asOf:      day(2024, time.March, 15),
			wantStart: day(2024, time.February, 29),
			wantEnd:   day(2024, time.March, 31),
		},
		{
			name:      "yearly feb 29 anchor in a common year",
			period:    BudgetPeriodYearly,
			startDate: day(2024, time.February, 29),
			asOf:      day(2025, time.March, 1),
			wantStart: day(2025, time.February, 28),
			wantEnd:   day(2026, time.February, 28),
		},
		{
			name:      "yearly feb 29 anchor just before the anniversary",
			period:    BudgetPeriodYearly,
			startDate: day(2024, time.February, 29),
			asOf:      day(2025, time.February, 27),
			wantStart: day(2024, time.February, 29),
			wantEnd:   day(2025, time.February, 28),
		},
		{
			name:      "yearly feb 29 anchor in the next leap year",
			period:    BudgetPeriodYearly,
			startDate: day(2024, time.February, 29),
			asOf:      day(2028, time.March, 1),
			wantStart: day(2028, time.February, 29),
			wantEnd:   day(2029, time.February, 28),
		},
		{
			name:      "yearly jan 31 anchor",
			period:    BudgetPeriodYearly,
			startDate: day(2024, time.January, 31),
			asOf:      day(2025, time.January, 30),
			wantStart: day(2024, time.January, 31),
			wantEnd:   day(2025, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(100), tt.period, tt.startDate)

			start, end := budget.PeriodWindow(tt.asOf)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("PeriodWindow(%s) = [%s, %s), want [%s, %s)", tt.asOf.Format(time.DateOnly),
					start.Format(time.DateOnly), end.Format(time.DateOnly),
					tt.wantStart.Format(time.DateOnly), tt.wantEnd.Format(time.DateOnly))
			}

			asOf := tt.asOf
			if asOf.Before(tt.startDate) {
				asOf = tt.startDate
			}
			if asOf.Before(start) || !asOf.Before(end) {
				t.Errorf("window [%s, %s) does not contain %s", start, end, asOf)
			}
		})
	}
}
