package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers the token-carrying emails through Resend. The
// token embedded in the link (or the numeric code in the 2FA mail) is the
// sole credential.
type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	AppBaseURL string
	VerifyPath string
	ResetPath  string
}

func NewResendEmailSender(apiKey string, from string, appBaseURL string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		AppBaseURL: strings.TrimRight(appBaseURL, "/"),
		VerifyPath: "/auth/verify-email",
		ResetPath:  "/auth/reset-password",
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	link := s.buildURL(s.VerifyPath, token)
	return s.send(ctx, email,
		"Verify your email",
		fmt.Sprintf("<p>Click to verify your email:</p><p><a href=\"%s\">Verify Email</a></p>", link),
		fmt.Sprintf("Verify your email: %s", link),
	)
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	link := s.buildURL(s.ResetPath, token)
	return s.send(ctx, email,
		"Reset your password",
		fmt.Sprintf("<p>Click to reset your password:</p><p><a href=\"%s\">Reset Password</a></p>", link),
		fmt.Sprintf("Reset your password: %s", link),
	)
}

func (s *ResendEmailSender) SendTwoFactorCodeEmail(ctx context.Context, email string, code string) error {
	return s.send(ctx, email,
		"Your sign-in code",
		fmt.Sprintf("<p>Your sign-in code is:</p><p><strong>%s</strong></p><p>It expires in a few minutes.</p>", code),
		fmt.Sprintf("Your sign-in code is %s. It expires in a few minutes.", code),
	)
}

func (s *ResendEmailSender) buildURL(path string, token string) string {
	base := strings.TrimRight(s.AppBaseURL, "/")
	if base == "" {
		return token
	}
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, token)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, html string, text string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	_, err := s.Client.Emails.Send(&resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	return err
}
