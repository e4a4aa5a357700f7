package internal

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as plain JSON numbers, the way the UI stores them.
	decimal.MarshalJSONWithoutQuotes = true
}

// VaultID is the reserved id of the Vault pseudo-circle.
const VaultID = "vault"

// SelfID identifies the device owner in member lists and messages.
const SelfID = "me"

type User struct {
	Name             string          `json:"name"`
	Avatar           string          `json:"avatar"`
	Streak           int             `json:"streak"`
	DailyGoal        decimal.Decimal `json:"dailyGoal"`
	Currency         string          `json:"currency"`
	SavedThisMonth   decimal.Decimal `json:"savedThisMonth"`
	TotalSaved       decimal.Decimal `json:"totalSaved"`
	SavedToday       decimal.Decimal `json:"savedToday"`
	ConsistencyScore int             `json:"consistencyScore"` // 0–100
	Level            int             `json:"level"`
	XP               int             `json:"xp"`
	NextLevelXP      int             `json:"nextLevelXp"`
	Gems             int             `json:"gems"`
}

type CircleMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Consistency int    `json:"consistency"`
	HasPaid     *bool  `json:"hasPaid,omitempty"`
}

type ActivityItem struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Action    string           `json:"action"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Timestamp string           `json:"timestamp"`
}

type MessageType string

const (
	MessageTypeMsg   MessageType = "msg"
	MessageTypeEvent MessageType = "event"
)

type ChatMessage struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"`
	Type      MessageType `json:"type"`
}

type Circle struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	MembersCount     int              `json:"membersCount"`
	Streak           int              `json:"streak"`
	Consistency      int              `json:"consistency"`
	PoolTotal        decimal.Decimal  `json:"poolTotal"`
	IsUserMember     bool             `json:"isUserMember"`
	Theme            string           `json:"theme"`
	InviteCode       string           `json:"inviteCode,omitempty"`
	Members          []CircleMember   `json:"members"`
	Activity         []ActivityItem   `json:"activity"`
	Messages         []ChatMessage    `json:"messages"`
	TargetAmount     *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetDate       string           `json:"targetDate,omitempty"`
	Contribution     *decimal.Decimal `json:"contribution,omitempty"`
	Frequency        string           `json:"frequency,omitempty"` // daily, weekly, monthly
	Icon             string           `json:"icon,omitempty"`
	IconType         string           `json:"iconType,omitempty"`
	IconColor        string           `json:"iconColor,omitempty"`
	InvestedAmount   decimal.Decimal  `json:"investedAmount"`
	InvestmentPlanID string           `json:"investmentPlanId,omitempty"`
}

// IsVault reports whether c is the Vault pseudo-circle.
func (c *Circle) IsVault() bool { return c.ID == VaultID }

// TotalValue is the liquid pool plus the invested amount.
func (c *Circle) TotalValue() decimal.Decimal {
	return c.PoolTotal.Add(c.InvestedAmount)
}

// Hearts is the lesson-attempt allowance, reset once per calendar day.
type Hearts struct {
	Count     int    `json:"count"`
	Max       int    `json:"max"`
	ResetDate string `json:"resetDate"`
}
