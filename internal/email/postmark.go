package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const postmarkURL = "https://api.postmarkapp.com/email"

type Client struct {
	serverToken string
	fromEmail   string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		apiURL:      postmarkURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendAuthCode sends a 6-digit sign-in code for login, registration, or
// invitation.
func (c *Client) SendAuthCode(toEmail, code, purpose, householdName string) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	var subject, action string
	switch purpose {
	case "login":
		subject = "Sign in to Larder"
		action = "sign in"
	case "register":
		subject = "Welcome to Larder"
		action = "complete your registration"
	case "invite":
		subject = fmt.Sprintf("You've been invited to %s on Larder", householdName)
		action = "accept your invitation"
	default:
		subject = "Your Larder code"
		action = "continue"
	}

	textBody := fmt.Sprintf("Enter this code to %s:\n\n%s\n\nThis code expires in 15 minutes.", action, code)
	htmlBody := fmt.Sprintf(
		`<p>Enter this code to %s:</p><p style="font-size:1.5em;letter-spacing:0.2em"><strong>%s</strong></p><p>This code expires in 15 minutes.</p>`,
		action, code,
	)

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
