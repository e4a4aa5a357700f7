package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourname/savecircle/internal"
)

const (
	CircleKindSolo   = "solo"
	CircleKindSocial = "social"
)

type CreateCircleRequest struct {
	Name         string           `json:"name" validate:"required,max=60"`
	Kind         string           `json:"kind" validate:"required,oneof=solo social"`
	Theme        string           `json:"theme" validate:"omitempty,max=30"`
	TargetAmount *decimal.Decimal `json:"targetAmount" validate:"omitempty,gt=0"`
	TargetDate   string           `json:"targetDate" validate:"omitempty,datetime=2006-01-02"`
	Contribution *decimal.Decimal `json:"contribution" validate:"omitempty,gt=0"`
	Frequency    string           `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
	Icon         string           `json:"icon"`
	IconType     string           `json:"iconType"`
	IconColor    string           `json:"iconColor" validate:"omitempty,hexcolor"`
}

// CircleStore is the part of the ledger circle creation needs.
type CircleStore interface {
	GetUser(ctx context.Context) (*internal.User, error)
	AddCircle(ctx context.Context, c internal.Circle) (*internal.Circle, error)
}

func ValidateCreateCircleRequest(req *CreateCircleRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	switch req.Kind {
	case CircleKindSolo:
		if req.TargetAmount == nil || req.TargetDate == "" {
			return errors.New("solo goals need targetAmount and targetDate")
		}
	case CircleKindSocial:
		if req.Contribution == nil || req.Frequency == "" {
			return errors.New("social circles need contribution and frequency")
		}
	}
	return nil
}

func newCircleID() string { return "c_" + uuid.NewString()[:8] }

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// BuildCircle turns a validated request into a circle owned by user.
func BuildCircle(user *internal.User, req *CreateCircleRequest) internal.Circle {
	theme := req.Theme
	if theme == "" {
		theme = "emerald"
	}
	c := internal.Circle{
		ID:           newCircleID(),
		Name:         strings.TrimSpace(req.Name),
		MembersCount: 1,
		IsUserMember: true,
		Theme:        theme,
		Members: []internal.CircleMember{{
			ID:          internal.SelfID,
			Name:        user.Name,
			Avatar:      user.Avatar,
			Consistency: user.ConsistencyScore,
		}},
		Activity:  []internal.ActivityItem{},
		Messages:  []internal.ChatMessage{},
		Icon:      req.Icon,
		IconType:  req.IconType,
		IconColor: req.IconColor,
	}
	if req.Kind == CircleKindSolo {
		c.TargetAmount = req.TargetAmount
		c.TargetDate = req.TargetDate
	} else {
		c.InviteCode = newInviteCode()
		c.Contribution = req.Contribution
		c.Frequency = req.Frequency
	}
	return c
}

func CreateCircle(ctx context.Context, store CircleStore, req *CreateCircleRequest) (*internal.Circle, error) {
	user, err := store.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	return store.AddCircle(ctx, BuildCircle(user, req))
}
