package auth

import (
	"encoding/base64"
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

const totpIssuer = "CRM Task Manager"

// ProvisioningURI builds the otpauth:// URI an authenticator app enrolls
// from.
func ProvisioningURI(email, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		url.PathEscape(totpIssuer), url.PathEscape(email),
		url.QueryEscape(secret), url.QueryEscape(totpIssuer))
}

// ProvisioningQR renders the provisioning URI as a PNG data URI for inline
// display.
func ProvisioningQR(email, secret string) (string, error) {
	png, err := qrcode.Encode(ProvisioningURI(email, secret), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
