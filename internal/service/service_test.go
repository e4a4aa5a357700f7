package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/savecircle/internal"
	"github.com/yourname/savecircle/internal/ledger"
	"github.com/yourname/savecircle/internal/storage"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestValidateCreateCircleRequest(t *testing.T) {
	cases := []struct {
		name  string
		req   CreateCircleRequest
		valid bool
	}{
		{"solo goal", CreateCircleRequest{Name: "Laptop", Kind: CircleKindSolo, TargetAmount: dec(60000), TargetDate: "2025-09-01"}, true},
		{"social circle", CreateCircleRequest{Name: "Trip", Kind: CircleKindSocial, Contribution: dec(500), Frequency: "weekly", IconColor: "#0ea5e9"}, true},
		{"missing name", CreateCircleRequest{Kind: CircleKindSolo, TargetAmount: dec(1), TargetDate: "2025-09-01"}, false},
		{"unknown kind", CreateCircleRequest{Name: "X", Kind: "club"}, false},
		{"solo without target", CreateCircleRequest{Name: "Laptop", Kind: CircleKindSolo}, false},
		{"zero target", CreateCircleRequest{Name: "Laptop", Kind: CircleKindSolo, TargetAmount: dec(0), TargetDate: "2025-09-01"}, false},
		{"bad date", CreateCircleRequest{Name: "Laptop", Kind: CircleKindSolo, TargetAmount: dec(5), TargetDate: "01/09/2025"}, false},
		{"social without frequency", CreateCircleRequest{Name: "Trip", Kind: CircleKindSocial, Contribution: dec(500)}, false},
		{"bad frequency", CreateCircleRequest{Name: "Trip", Kind: CircleKindSocial, Contribution: dec(500), Frequency: "hourly"}, false},
		{"bad color", CreateCircleRequest{Name: "Trip", Kind: CircleKindSocial, Contribution: dec(500), Frequency: "daily", IconColor: "blue"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCreateCircleRequest(&tc.req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateMoneyRequests(t *testing.T) {
	assert.NoError(t, ValidateAmountRequest(&AmountRequest{Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, ValidateAmountRequest(&AmountRequest{Amount: decimal.Zero}))
	assert.Error(t, ValidateAmountRequest(&AmountRequest{Amount: decimal.NewFromInt(-3)}))

	assert.NoError(t, ValidateInvestRequest(&InvestRequest{Amount: decimal.NewFromInt(10), PlanID: "plan_med"}))
	assert.Error(t, ValidateInvestRequest(&InvestRequest{Amount: decimal.NewFromInt(10), PlanID: "plan_crypto"}))
	assert.Error(t, ValidateInvestRequest(&InvestRequest{Amount: decimal.Zero, PlanID: "plan_med"}))

	assert.NoError(t, ValidateWithdrawInvestmentRequest(&WithdrawInvestmentRequest{Full: true}))
	assert.NoError(t, ValidateWithdrawInvestmentRequest(&WithdrawInvestmentRequest{Amount: decimal.NewFromInt(5)}))
	assert.Error(t, ValidateWithdrawInvestmentRequest(&WithdrawInvestmentRequest{}))
	assert.Error(t, ValidateWithdrawInvestmentRequest(&WithdrawInvestmentRequest{Amount: decimal.NewFromInt(-5), Full: true}))
}

func TestValidateLessonRequests(t *testing.T) {
	assert.NoError(t, ValidateCompleteLessonRequest(&CompleteLessonRequest{XP: 50, Gems: 5}))
	assert.Error(t, ValidateCompleteLessonRequest(&CompleteLessonRequest{XP: -1}))
	assert.Error(t, ValidateMessageRequest(&MessageRequest{}))
	assert.Error(t, ValidateRefillHeartsRequest(&RefillHeartsRequest{GemCost: -1}))
}

func TestBuildCircle(t *testing.T) {
	user := &internal.User{Name: "Aarav", Avatar: "a.png", ConsistencyScore: 80}

	social := BuildCircle(user, &CreateCircleRequest{Name: " Trip ", Kind: CircleKindSocial, Contribution: dec(500), Frequency: "weekly"})
	assert.True(t, strings.HasPrefix(social.ID, "c_"))
	assert.Equal(t, "Trip", social.Name)
	assert.Len(t, social.InviteCode, 8)
	assert.Equal(t, strings.ToUpper(social.InviteCode), social.InviteCode)
	assert.Equal(t, "emerald", social.Theme)
	require.Len(t, social.Members, 1)
	assert.Equal(t, internal.SelfID, social.Members[0].ID)
	assert.True(t, social.PoolTotal.IsZero())

	solo := BuildCircle(user, &CreateCircleRequest{Name: "Laptop", Kind: CircleKindSolo, TargetAmount: dec(60000), TargetDate: "2025-09-01", Theme: "rose"})
	assert.Empty(t, solo.InviteCode)
	assert.Equal(t, "2025-09-01", solo.TargetDate)
	assert.Equal(t, "rose", solo.Theme)
	assert.NotEqual(t, social.ID, solo.ID)
}

func TestCreateCircle_PrependsToLedger(t *testing.T) {
	l := ledger.New(storage.NewMemoryStorage(), internal.NewNopLogger())
	ctx := context.Background()

	c, err := CreateCircle(ctx, l, &CreateCircleRequest{Name: "Laptop", Kind: CircleKindSolo, TargetAmount: dec(60000), TargetDate: "2025-09-01"})
	require.NoError(t, err)

	circles, err := l.GetCircles(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.ID, circles[0].ID)
	assert.Equal(t, "Aarav", circles[0].Members[0].Name)
}
