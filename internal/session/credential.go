package session

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dwikikusuma/storefront/pkg/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TTL is how long a login stays valid.
const TTL = 24 * time.Hour

// Credential is what a successful login leaves in short-lived storage.
// LoginTimestamp is in unix milliseconds.
type Credential struct {
	Pin            string `json:"pin"`
	LoginTimestamp int64  `json:"loginTimestamp"`
}

func newCredential(pin string, now time.Time) Credential {
	return Credential{Pin: pin, LoginTimestamp: now.UnixMilli()}
}

func (c Credential) Since() time.Time {
	return time.UnixMilli(c.LoginTimestamp)
}

// ExpiredAt reports whether TTL or more has elapsed by now.
func (c Credential) ExpiredAt(now time.Time) bool {
	return now.Sub(c.Since()) >= TTL
}

func encodeCredential(c Credential) ([]byte, error) {
	return json.Marshal(c)
}

func decodeCredential(raw []byte) (Credential, error) {
	var c Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", apperr.ErrMalformedState, err)
	}
	if strings.TrimSpace(c.Pin) == "" || c.LoginTimestamp <= 0 {
		return Credential{}, fmt.Errorf("%w: incomplete credential", apperr.ErrMalformedState)
	}
	return c, nil
}
