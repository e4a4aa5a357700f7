package service

type CompleteLessonRequest struct {
	XP   int `json:"xp" validate:"gte=0,lte=500"`
	Gems int `json:"gems" validate:"gte=0,lte=100"`
}

type RefillHeartsRequest struct {
	GemCost int `json:"gemCost" validate:"gte=0"`
}

type MessageRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

func ValidateCompleteLessonRequest(req *CompleteLessonRequest) error {
	return validate.Struct(req)
}

func ValidateRefillHeartsRequest(req *RefillHeartsRequest) error {
	return validate.Struct(req)
}

func ValidateMessageRequest(req *MessageRequest) error {
	return validate.Struct(req)
}
