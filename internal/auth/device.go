package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/yourname/savecircle/internal"
)

// DeviceTokenProvider accepts a single token shared with the paired device.
type DeviceTokenProvider struct {
	Token  string
	logger internal.Logger
}

func (a *DeviceTokenProvider) ValidateToken(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) == 1 {
		return nil
	}
	a.logger.Warnf("rejected device token")
	return errors.New("invalid token")
}

func NewDeviceTokenProvider(token string, logger internal.Logger) *DeviceTokenProvider {
	return &DeviceTokenProvider{Token: token, logger: logger}
}
