package calculation

import (
	"github.com/rgehrsitz/mawc/internal/domain"
	"github.com/shopspring/decimal"
)

// AggregateEntitlements folds a ledger into weeks used, weeks remaining and
// dollars remaining for every benefit type, plus the two combined pools.
//
// Types that draw on a shared pool report the pool's figures as their own,
// so TPD and TPD_EC both show the full remaining §35 pool. Summing their
// WeeksRemaining double-counts; Combined35Usage is the true pool position.
func AggregateEntitlements(ledger []domain.LedgerEntry, current CurrentRates) domain.EntitlementSummary {
	weeksUsedByType := WeeksUsedByType(ledger)

	usage := make(map[PoolID]domain.CombinedUsage, len(pools))
	for _, pool := range pools {
		usage[pool.ID] = poolUsage(pool, weeksUsedByType)
	}

	perType := make([]domain.RemainingEntitlement, 0, len(domain.AllBenefitTypes))
	for _, bt := range domain.AllBenefitTypes {
		perType = append(perType, entitlementFor(bt, weeksUsedByType, usage, current))
	}

	totalPaid := decimal.Zero
	for _, entry := range ledger {
		totalPaid = totalPaid.Add(entry.DollarsPaid)
	}

	return domain.EntitlementSummary{
		PerType:               perType,
		CombinedUsage:         usage[PoolSevenYear],
		Combined35Usage:       usage[PoolSection35],
		TotalDollarsPaid:      totalPaid,
		TotalDollarsRemaining: totalDollarsRemaining(perType, current),
	}
}

// WeeksUsedByType sums ledger weeks per benefit type. Every known type is
// present, defaulting to zero.
func WeeksUsedByType(ledger []domain.LedgerEntry) map[domain.BenefitType]decimal.Decimal {
	used := make(map[domain.BenefitType]decimal.Decimal, len(domain.AllBenefitTypes))
	for _, bt := range domain.AllBenefitTypes {
		used[bt] = decimal.Zero
	}
	for _, entry := range ledger {
		used[entry.Type] = used[entry.Type].Add(entry.Weeks)
	}
	return used
}

func poolUsage(pool CombinedPool, weeksUsedByType map[domain.BenefitType]decimal.Decimal) domain.CombinedUsage {
	used := decimal.Zero
	for _, m := range pool.Members {
		used = used.Add(weeksUsedByType[m])
	}
	return domain.CombinedUsage{
		WeeksUsed:      used,
		WeeksRemaining: remaining(pool.MaxWeeks, used),
		MaxWeeks:       pool.MaxWeeks,
	}
}

func entitlementFor(bt domain.BenefitType, weeksUsedByType map[domain.BenefitType]decimal.Decimal, usage map[PoolID]domain.CombinedUsage, current CurrentRates) domain.RemainingEntitlement {
	entry := schedule[bt]
	rate, hasRate := current[bt]

	ent := domain.RemainingEntitlement{
		Type:            bt,
		WeeksUsed:       weeksUsedByType[bt],
		FinalWeekly:     rate.FinalWeekly,
		SharesLimitWith: SharesLimitWith(bt),
	}

	if entry.MaxWeeks == nil {
		ent.IsLifeBenefit = true
		return ent
	}

	maxWeeks := *entry.MaxWeeks
	weeksRemaining := remaining(maxWeeks, ent.WeeksUsed)
	if entry.SharedPool != "" {
		shared := usage[entry.SharedPool]
		maxWeeks = shared.MaxWeeks
		ent.WeeksUsed = shared.WeeksUsed
		weeksRemaining = shared.WeeksRemaining
	}

	dollars := decimal.Zero
	if hasRate {
		dollars = weeksRemaining.Mul(rate.FinalWeekly)
	}

	ent.StatutoryMaxWeeks = intPtr(maxWeeks)
	ent.WeeksRemaining = &weeksRemaining
	ent.DollarsRemaining = &dollars
	return ent
}

// totalDollarsRemaining sums the finite dollar exposure across types. A shared
// pool is counted once, priced at the highest current rate among its members.
func totalDollarsRemaining(perType []domain.RemainingEntitlement, current CurrentRates) decimal.Decimal {
	total := decimal.Zero
	counted := make(map[PoolID]bool)
	for _, ent := range perType {
		if ent.IsLifeBenefit || ent.WeeksRemaining == nil {
			continue
		}
		pool := schedule[ent.Type].SharedPool
		if pool == "" {
			total = total.Add(*ent.DollarsRemaining)
			continue
		}
		if counted[pool] {
			continue
		}
		counted[pool] = true

		p, _ := Pool(pool)
		highest := decimal.Zero
		for _, m := range p.Members {
			if r, ok := current[m]; ok && r.FinalWeekly.GreaterThan(highest) {
				highest = r.FinalWeekly
			}
		}
		total = total.Add(ent.WeeksRemaining.Mul(highest))
	}
	return total
}

func remaining(maxWeeks int, used decimal.Decimal) decimal.Decimal {
	left := decimal.NewFromInt(int64(maxWeeks)).Sub(used)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
