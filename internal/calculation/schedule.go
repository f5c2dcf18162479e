package calculation

import (
	"github.com/rgehrsitz/mawc/internal/domain"
)

// PoolID names a group of benefit types that draw on one combined cap.
type PoolID string

const (
	// PoolSection35 is the 4-year cap shared by both §35 variants.
	PoolSection35 PoolID = "section35"
	// PoolSevenYear is the 7-year ceiling over §34 and §35 combined.
	PoolSevenYear PoolID = "seven_year"
)

const (
	ttdMaxWeeks       = 156 // 3 years
	section35MaxWeeks = 208 // 4 years
	combinedMaxWeeks  = 364 // 7 years
)

// ScheduleEntry is the statutory data for one benefit type.
type ScheduleEntry struct {
	Type    domain.BenefitType `json:"type" yaml:"type"`
	Formula string             `json:"formula" yaml:"formula"`
	// MaxWeeks is nil for life benefits.
	MaxWeeks *int `json:"max_weeks" yaml:"max_weeks"`
	// SharedPool, when set, is the pool whose figures the type reports as its
	// own entitlement.
	SharedPool PoolID `json:"shared_pool,omitempty" yaml:"shared_pool,omitempty"`
}

// CombinedPool is a cap shared by several benefit types.
type CombinedPool struct {
	ID       PoolID               `json:"id" yaml:"id"`
	Members  []domain.BenefitType `json:"members" yaml:"members"`
	MaxWeeks int                  `json:"max_weeks" yaml:"max_weeks"`
}

var schedule = map[domain.BenefitType]ScheduleEntry{
	domain.BenefitTTD: {
		Type:     domain.BenefitTTD,
		Formula:  "AWW × 60%",
		MaxWeeks: intPtr(ttdMaxWeeks),
	},
	domain.BenefitTPD: {
		Type:       domain.BenefitTPD,
		Formula:    "clamped §34 rate × 75%",
		MaxWeeks:   intPtr(section35MaxWeeks),
		SharedPool: PoolSection35,
	},
	domain.BenefitTPDEC: {
		Type:       domain.BenefitTPDEC,
		Formula:    "(AWW − earning capacity) × 60%",
		MaxWeeks:   intPtr(section35MaxWeeks),
		SharedPool: PoolSection35,
	},
	domain.BenefitPermanentTotal: {
		Type:    domain.BenefitPermanentTotal,
		Formula: "AWW × 2/3",
	},
	domain.BenefitDependent: {
		Type:    domain.BenefitDependent,
		Formula: "AWW × 2/3",
	},
}

// Pools are ordered innermost first. The seven-year pool is a ceiling over the
// sum of its members and is independent of the section 35 pool.
var pools = []CombinedPool{
	{
		ID:       PoolSection35,
		Members:  []domain.BenefitType{domain.BenefitTPD, domain.BenefitTPDEC},
		MaxWeeks: section35MaxWeeks,
	},
	{
		ID:       PoolSevenYear,
		Members:  []domain.BenefitType{domain.BenefitTTD, domain.BenefitTPD, domain.BenefitTPDEC},
		MaxWeeks: combinedMaxWeeks,
	},
}

func intPtr(v int) *int { return &v }

// Schedule returns every entry in display order.
func Schedule() []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(domain.AllBenefitTypes))
	for _, bt := range domain.AllBenefitTypes {
		entries = append(entries, schedule[bt])
	}
	return entries
}

// GetStatutoryMaxWeeks returns the type's own cap in weeks, or nil for life
// benefits and unknown types.
func GetStatutoryMaxWeeks(bt domain.BenefitType) *int {
	entry, ok := schedule[bt]
	if !ok || entry.MaxWeeks == nil {
		return nil
	}
	return intPtr(*entry.MaxWeeks)
}

// GetCombinedMaxWeeks returns the 7-year ceiling over §34 and §35.
func GetCombinedMaxWeeks() int {
	return combinedMaxWeeks
}

// IsLifeBenefit reports whether bt has no statutory week limit.
func IsLifeBenefit(bt domain.BenefitType) bool {
	entry, ok := schedule[bt]
	return ok && entry.MaxWeeks == nil
}

// CombinedPools returns the shared caps, innermost first.
func CombinedPools() []CombinedPool {
	out := make([]CombinedPool, len(pools))
	for i, p := range pools {
		out[i] = CombinedPool{ID: p.ID, MaxWeeks: p.MaxWeeks, Members: append([]domain.BenefitType(nil), p.Members...)}
	}
	return out
}

// Pool returns the combined pool with the given id.
func Pool(id PoolID) (CombinedPool, bool) {
	for _, p := range CombinedPools() {
		if p.ID == id {
			return p, true
		}
	}
	return CombinedPool{}, false
}

// SharesLimitWith lists the other benefit types drawing on bt's shared pool.
func SharesLimitWith(bt domain.BenefitType) []domain.BenefitType {
	entry, ok := schedule[bt]
	if !ok || entry.SharedPool == "" {
		return []domain.BenefitType{}
	}
	pool, _ := Pool(entry.SharedPool)
	others := make([]domain.BenefitType, 0, len(pool.Members)-1)
	for _, m := range pool.Members {
		if m != bt {
			others = append(others, m)
		}
	}
	return others
}
