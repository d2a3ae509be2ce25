// Package otp provides ports.OTPProvider implementations: Twilio Verify for
// production and a Redis-backed local provider for development and tests.
package otp

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

const smsChannel = "sms"

const statusApproved = "approved"

// TwilioProvider delegates challenge lifecycle to the Twilio Verify v2 API.
// Code generation, delivery, expiry, and single-use enforcement all happen on
// Twilio's side; no challenge state is held locally.
type TwilioProvider struct {
	client     *twilio.RestClient
	serviceSID string
}

// NewTwilioProvider builds a provider from account credentials and the Verify
// service identifier.
func NewTwilioProvider(accountSID, authToken, serviceSID string) *TwilioProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioProvider{client: client, serviceSID: serviceSID}
}

// RequestCode asks Twilio to deliver a fresh code to phone over SMS.
// The SDK does not thread contexts through resource calls; callers should
// bound the request with their own deadline around this method.
func (p *TwilioProvider) RequestCode(_ context.Context, phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel(smsChannel)

	if _, err := p.client.VerifyV2.CreateVerification(p.serviceSID, params); err != nil {
		return fmt.Errorf("twilio create verification: %w", err)
	}
	return nil
}

// CheckCode reports whether Twilio approved the code for phone.
func (p *TwilioProvider) CheckCode(_ context.Context, phone, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	check, err := p.client.VerifyV2.CreateVerificationCheck(p.serviceSID, params)
	if err != nil {
		return false, fmt.Errorf("twilio check verification: %w", err)
	}
	return check.Status != nil && *check.Status == statusApproved, nil
}
