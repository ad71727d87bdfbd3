package service

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const qrImageSize = 300

// StandardTotpProvider wraps pquerna/otp with the usual defaults: 30 second
// period, six digits, SHA1, one step of clock skew either way.
type StandardTotpProvider struct {
	Period    uint
	Skew      uint
	Digits    otp.Digits
	Algorithm otp.Algorithm
	Clock     Clock
}

func NewTotpProvider() *StandardTotpProvider {
	return &StandardTotpProvider{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

func (p *StandardTotpProvider) Generate(accountEmail string, issuer string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      fallbackIssuer(issuer),
		AccountName: accountEmail,
		Period:      p.period(),
		Digits:      p.digits(),
		Algorithm:   p.algorithm(),
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

func (p *StandardTotpProvider) QRImage(uri string) (string, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", err
	}
	img, err := key.Image(qrImageSize, qrImageSize)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (p *StandardTotpProvider) ValidateCode(secret string, code string) bool {
	now := p.Clock
	if now == nil {
		now = RealClock{}
	}
	ok, err := totp.ValidateCustom(code, secret, now.Now(), totp.ValidateOpts{
		Period:    p.period(),
		Skew:      p.skew(),
		Digits:    p.digits(),
		Algorithm: p.algorithm(),
	})
	if err != nil {
		return false
	}
	return ok
}

func (p *StandardTotpProvider) period() uint {
	if p.Period == 0 {
		return 30
	}
	return p.Period
}

func (p *StandardTotpProvider) skew() uint {
	if p.Skew == 0 {
		return 1
	}
	return p.Skew
}

func (p *StandardTotpProvider) digits() otp.Digits {
	if p.Digits == 0 {
		return otp.DigitsSix
	}
	return p.Digits
}

func (p *StandardTotpProvider) algorithm() otp.Algorithm {
	if p.Algorithm == 0 {
		return otp.AlgorithmSHA1
	}
	return p.Algorithm
}

func fallbackIssuer(issuer string) string {
	if strings.TrimSpace(issuer) == "" {
		return "Authcore"
	}
	return issuer
}
