package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type InvestRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	PlanID string          `json:"planId" validate:"required,oneof=plan_low plan_med plan_high"`
}

type WithdrawInvestmentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Full   bool            `json:"full"`
}

func ValidateAmountRequest(req *AmountRequest) error {
	return validate.Struct(req)
}

func ValidateInvestRequest(req *InvestRequest) error {
	return validate.Struct(req)
}

func ValidateWithdrawInvestmentRequest(req *WithdrawInvestmentRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if !req.Full && !req.Amount.IsPositive() {
		return errors.New("amount must be greater than zero unless full is set")
	}
	return nil
}
