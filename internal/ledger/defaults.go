package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/yourname/savecircle/internal"
)

func boolPtr(b bool) *bool { return &b }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func defaultUser() *internal.User {
	return &internal.User{
		Name:             "Aarav",
		Avatar:           "https://i.pravatar.cc/150?u=aarav",
		Streak:           12,
		DailyGoal:        decimal.NewFromInt(200),
		Currency:         "₹",
		SavedThisMonth:   decimal.NewFromInt(4200),
		TotalSaved:       decimal.NewFromInt(6400),
		SavedToday:       decimal.NewFromInt(150),
		ConsistencyScore: 85,
		Level:            4,
		XP:               1250,
		NextLevelXP:      2000,
		Gems:             340,
	}
}

func defaultVault() internal.Circle {
	return internal.Circle{
		ID:           internal.VaultID,
		Name:         "My Vault",
		MembersCount: 1,
		Streak:       12,
		Consistency:  85,
		IsUserMember: true,
		Theme:        "emerald",
		Members: []internal.CircleMember{
			{ID: internal.SelfID, Name: "You", Avatar: "https://i.pravatar.cc/150?u=aarav", Consistency: 85},
		},
		Activity:  []internal.ActivityItem{},
		Messages:  []internal.ChatMessage{},
		Icon:      "vault",
		IconType:  "lucide",
		IconColor: "#10b981",
	}
}

func defaultCircles() []internal.Circle {
	return []internal.Circle{
		defaultVault(),
		{
			ID:           "c1",
			Name:         "Goa Trip 2025",
			MembersCount: 4,
			Streak:       8,
			Consistency:  78,
			PoolTotal:    decimal.NewFromInt(24500),
			IsUserMember: true,
			Theme:        "ocean",
			InviteCode:   "GOA-7F3K",
			Members: []internal.CircleMember{
				{ID: internal.SelfID, Name: "You", Avatar: "https://i.pravatar.cc/150?u=aarav", Consistency: 85, HasPaid: boolPtr(true)},
				{ID: "m2", Name: "Priya", Avatar: "https://i.pravatar.cc/150?u=priya", Consistency: 92, HasPaid: boolPtr(true)},
				{ID: "m3", Name: "Rohan", Avatar: "https://i.pravatar.cc/150?u=rohan", Consistency: 64, HasPaid: boolPtr(false)},
				{ID: "m4", Name: "Meera", Avatar: "https://i.pravatar.cc/150?u=meera", Consistency: 71, HasPaid: boolPtr(false)},
			},
			Activity: []internal.ActivityItem{
				{ID: "a1", UserID: "m2", Action: "added funds", Amount: decPtr(500), Timestamp: "2h ago"},
			},
			Messages: []internal.ChatMessage{
				{ID: "msg1", UserID: "m2", Text: "Paid for this week!", Timestamp: "10:12 AM", Type: internal.MessageTypeMsg},
			},
			Contribution: decPtr(500),
			Frequency:    "weekly",
			Icon:         "plane",
			IconType:     "lucide",
			IconColor:    "#0ea5e9",
		},
		{
			ID:           "c2",
			Name:         "Emergency Fund",
			MembersCount: 1,
			Streak:       21,
			Consistency:  90,
			PoolTotal:    decimal.NewFromInt(12000),
			IsUserMember: true,
			Theme:        "amber",
			Members: []internal.CircleMember{
				{ID: internal.SelfID, Name: "You", Avatar: "https://i.pravatar.cc/150?u=aarav", Consistency: 90},
			},
			Activity:     []internal.ActivityItem{},
			Messages:     []internal.ChatMessage{},
			TargetAmount: decPtr(50000),
			TargetDate:   "2025-12-31",
			Icon:         "shield",
			IconType:     "lucide",
			IconColor:    "#f59e0b",
		},
		{
			ID:           "c3",
			Name:         "Flat 4B Rent Pool",
			MembersCount: 3,
			Streak:       5,
			Consistency:  70,
			PoolTotal:    decimal.NewFromInt(9000),
			IsUserMember: false,
			Theme:        "violet",
			InviteCode:   "RENT-4B9Q",
			Members: []internal.CircleMember{
				{ID: "m5", Name: "Kabir", Avatar: "https://i.pravatar.cc/150?u=kabir", Consistency: 80, HasPaid: boolPtr(true)},
				{ID: "m6", Name: "Ishita", Avatar: "https://i.pravatar.cc/150?u=ishita", Consistency: 60, HasPaid: boolPtr(false)},
				{ID: "m7", Name: "Dev", Avatar: "https://i.pravatar.cc/150?u=dev", Consistency: 70, HasPaid: boolPtr(true)},
			},
			Activity:     []internal.ActivityItem{},
			Messages:     []internal.ChatMessage{},
			Contribution: decPtr(3000),
			Frequency:    "monthly",
			Icon:         "home",
			IconType:     "lucide",
			IconColor:    "#8b5cf6",
		},
	}
}
