package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/yourname/savecircle/internal"
)

// UserPatch is a shallow update. Nil fields are left alone; set fields
// replace the stored value outright.
type UserPatch struct {
	Name             *string          `json:"name,omitempty"`
	Avatar           *string          `json:"avatar,omitempty"`
	Streak           *int             `json:"streak,omitempty"`
	DailyGoal        *decimal.Decimal `json:"dailyGoal,omitempty"`
	Currency         *string          `json:"currency,omitempty"`
	SavedThisMonth   *decimal.Decimal `json:"savedThisMonth,omitempty"`
	TotalSaved       *decimal.Decimal `json:"totalSaved,omitempty"`
	SavedToday       *decimal.Decimal `json:"savedToday,omitempty"`
	ConsistencyScore *int             `json:"consistencyScore,omitempty"`
	Level            *int             `json:"level,omitempty"`
	XP               *int             `json:"xp,omitempty"`
	NextLevelXP      *int             `json:"nextLevelXp,omitempty"`
	Gems             *int             `json:"gems,omitempty"`
}

func (p UserPatch) validate() error {
	for _, d := range []*decimal.Decimal{p.DailyGoal, p.SavedThisMonth, p.TotalSaved, p.SavedToday} {
		if d != nil && d.IsNegative() {
			return internal.ErrInvalidAmount
		}
	}
	for _, n := range []*int{p.Streak, p.XP, p.Gems, p.Level, p.NextLevelXP} {
		if n != nil && *n < 0 {
			return internal.ErrInvalidInput
		}
	}
	if p.ConsistencyScore != nil && (*p.ConsistencyScore < 0 || *p.ConsistencyScore > 100) {
		return internal.ErrInvalidInput
	}
	return nil
}

func (p UserPatch) apply(u *internal.User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Streak != nil {
		u.Streak = *p.Streak
	}
	if p.DailyGoal != nil {
		u.DailyGoal = *p.DailyGoal
	}
	if p.Currency != nil {
		u.Currency = *p.Currency
	}
	if p.SavedThisMonth != nil {
		u.SavedThisMonth = *p.SavedThisMonth
	}
	if p.TotalSaved != nil {
		u.TotalSaved = *p.TotalSaved
	}
	if p.SavedToday != nil {
		u.SavedToday = *p.SavedToday
	}
	if p.ConsistencyScore != nil {
		u.ConsistencyScore = *p.ConsistencyScore
	}
	if p.Level != nil {
		u.Level = *p.Level
	}
	if p.XP != nil {
		u.XP = *p.XP
	}
	if p.NextLevelXP != nil {
		u.NextLevelXP = *p.NextLevelXP
	}
	if p.Gems != nil {
		u.Gems = *p.Gems
	}
}

// CirclePatch is a shallow update of a circle. List fields replace the
// whole stored list. A JSON null leaves a field alone; to clear an optional
// field send "" for strings or 0 for targetAmount and contribution.
type CirclePatch struct {
	Name             *string                  `json:"name,omitempty"`
	MembersCount     *int                     `json:"membersCount,omitempty"`
	Streak           *int                     `json:"streak,omitempty"`
	Consistency      *int                     `json:"consistency,omitempty"`
	PoolTotal        *decimal.Decimal         `json:"poolTotal,omitempty"`
	IsUserMember     *bool                    `json:"isUserMember,omitempty"`
	Theme            *string                  `json:"theme,omitempty"`
	InviteCode       *string                  `json:"inviteCode,omitempty"`
	Members          *[]internal.CircleMember `json:"members,omitempty"`
	Activity         *[]internal.ActivityItem `json:"activity,omitempty"`
	Messages         *[]internal.ChatMessage  `json:"messages,omitempty"`
	TargetAmount     *decimal.Decimal         `json:"targetAmount,omitempty"`
	TargetDate       *string                  `json:"targetDate,omitempty"`
	Contribution     *decimal.Decimal         `json:"contribution,omitempty"`
	Frequency        *string                  `json:"frequency,omitempty"`
	Icon             *string                  `json:"icon,omitempty"`
	IconType         *string                  `json:"iconType,omitempty"`
	IconColor        *string                  `json:"iconColor,omitempty"`
	InvestedAmount   *decimal.Decimal         `json:"investedAmount,omitempty"`
	InvestmentPlanID *string                  `json:"investmentPlanId,omitempty"`
}

func (p CirclePatch) validate() error {
	for _, d := range []*decimal.Decimal{p.PoolTotal, p.InvestedAmount, p.TargetAmount, p.Contribution} {
		if d != nil && d.IsNegative() {
			return internal.ErrInvalidAmount
		}
	}
	if p.MembersCount != nil && *p.MembersCount < 0 {
		return internal.ErrInvalidInput
	}
	return nil
}

func (p CirclePatch) apply(c *internal.Circle) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.MembersCount != nil {
		c.MembersCount = *p.MembersCount
	}
	if p.Streak != nil {
		c.Streak = *p.Streak
	}
	if p.Consistency != nil {
		c.Consistency = *p.Consistency
	}
	if p.PoolTotal != nil {
		c.PoolTotal = *p.PoolTotal
	}
	if p.IsUserMember != nil {
		c.IsUserMember = *p.IsUserMember
	}
	if p.Theme != nil {
		c.Theme = *p.Theme
	}
	if p.InviteCode != nil {
		c.InviteCode = *p.InviteCode
	}
	if p.Members != nil {
		c.Members = *p.Members
	}
	if p.Activity != nil {
		c.Activity = *p.Activity
	}
	if p.Messages != nil {
		c.Messages = *p.Messages
	}
	if p.TargetAmount != nil {
		c.TargetAmount = optionalAmount(p.TargetAmount)
	}
	if p.TargetDate != nil {
		c.TargetDate = *p.TargetDate
	}
	if p.Contribution != nil {
		c.Contribution = optionalAmount(p.Contribution)
	}
	if p.Frequency != nil {
		c.Frequency = *p.Frequency
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.IconType != nil {
		c.IconType = *p.IconType
	}
	if p.IconColor != nil {
		c.IconColor = *p.IconColor
	}
	if p.InvestedAmount != nil {
		c.InvestedAmount = *p.InvestedAmount
	}
	if p.InvestmentPlanID != nil {
		c.InvestmentPlanID = *p.InvestmentPlanID
	}
}

func optionalAmount(d *decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	v := *d
	return &v
}
