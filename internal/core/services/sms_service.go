package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"godavari-scm/internal/config"
)

// SMSService sends customer messages through the Fast2SMS bulk gateway.
// With no API key configured it logs the message instead of sending,
// which is also the behaviour used in tests.
type SMSService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	enabled bool
}

// NewSMSService creates a new SMS service
func NewSMSService(cfg *config.Config) *SMSService {
	return &SMSService{
		apiKey:  cfg.SMS.APIKey,
		baseURL: cfg.SMS.BaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		enabled: cfg.SMS.APIKey != "",
	}
}

// IsEnabled checks if SMS sending is enabled
func (s *SMSService) IsEnabled() bool {
	return s.enabled
}

type smsRequest struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Numbers  string `json:"numbers"`
}

// Send delivers a message to a phone number. Returns an error on gateway
// failure; callers treat SMS as best-effort and must not fail on it.
func (s *SMSService) Send(phone, message string) error {
	if !s.enabled {
		log.Printf("📱 SMS (disabled) to %s: %s", phone, message)
		return nil
	}

	body, err := json.Marshal(smsRequest{
		Route:    "q",
		Message:  message,
		Language: "english",
		Numbers:  phone,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// ============================================================
// Message templates
// ============================================================

// RegistrationMessage confirms a new storage entry
func RegistrationMessage(expiryDate time.Time) string {
	return fmt.Sprintf(`Thanks for trusting us. Ashes are safe with us. Storage registration made for 1 month, renew or collect by "%s".`,
		expiryDate.Format("02 Jan 2006"))
}

// RenewalConfirmationMessage confirms a successful renewal
func RenewalConfirmationMessage(venueName string, months int) string {
	return fmt.Sprintf(`Renewal of "%d" months has been successful at location "%s". Renew again in one month to continue.`,
		months, venueName)
}

// RenewalReminderMessage warns that the storage period is about to expire
func RenewalReminderMessage(venueName string, daysLeft int) string {
	return fmt.Sprintf(`Your storage period at "%s" is close to expire in %d days. Please renew to continue the storage.`,
		venueName, daysLeft)
}

// FinalWarningMessage is the last notice before disposal
func FinalWarningMessage() string {
	return `As we informed multiple times about your storage period expiry and renewal. We haven't heard from you even after multiple reachouts, so we will be mixing these ashes in River Godavari in next 3 days. If you still wish to extend storage period or collect it, we are happy to help. Thanks.`
}

// DeliveryConfirmationMessage confirms collection of the pots
func DeliveryConfirmationMessage(receiverName string) string {
	return fmt.Sprintf(`Ashes safely collected by "%s".`, receiverName)
}

// OTPMessage carries a delivery verification code
func OTPMessage(code string) string {
	return fmt.Sprintf("Your verification code is %s. It is valid for 5 minutes. Do not share it with anyone.", code)
}
