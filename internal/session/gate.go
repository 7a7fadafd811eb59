// Package session implements the admin gate: a login leaves a timestamped
// credential in short-lived storage and every admin flow checks it first.
// Expiry is lazy. Nothing happens at the 24h mark; the next check notices
// and clears the credential.
//
// The gate is advisory. It keeps honest users out of admin screens but
// the gateway itself does not authenticate writes.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	admindomain "github.com/dwikikusuma/storefront/internal/admin/domain"
	"github.com/dwikikusuma/storefront/pkg/apperr"
	"github.com/dwikikusuma/storefront/pkg/clock"
	"github.com/dwikikusuma/storefront/pkg/localstate"
)

// StorageKey is the short-lived slot holding the credential.
const StorageKey = "admin_session"

const minPinDigits = 4

var ErrLoginRequired = errors.New("admin login required")

type Access int

const (
	AccessAbsent Access = iota
	AccessValid
	AccessExpired
)

func (a Access) String() string {
	switch a {
	case AccessValid:
		return "valid"
	case AccessExpired:
		return "expired"
	default:
		return "absent"
	}
}

type PinVerifier interface {
	VerifyPin(ctx context.Context, pin string) (admindomain.AdminUser, error)
}

type Gate struct {
	state    localstate.Storage
	verifier PinVerifier
	clock    clock.Clock
	log      *slog.Logger
}

func NewGate(state localstate.Storage, verifier PinVerifier, clk clock.Clock, log *slog.Logger) *Gate {
	if clk == nil {
		clk = clock.Real()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		state:    state,
		verifier: verifier,
		clock:    clk,
		log:      log,
	}
}

// Login verifies pin with the gateway and, on success, stores a fresh
// credential. A failed login leaves any existing credential untouched.
func (g *Gate) Login(ctx context.Context, pin string) error {
	pin = strings.TrimSpace(pin)
	if err := checkPinFormat(pin); err != nil {
		return err
	}

	if _, err := g.verifier.VerifyPin(ctx, pin); err != nil {
		return err
	}

	raw, err := encodeCredential(newCredential(pin, g.clock.Now()))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := g.state.Set(StorageKey, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func checkPinFormat(pin string) error {
	if len(pin) < minPinDigits {
		return apperr.Invalid("pin", "must be at least 4 digits")
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return apperr.Invalid("pin", "must contain digits only")
		}
	}
	return nil
}

// CheckAccess reports the current session state. Expired and unreadable
// credentials are removed as a side effect.
func (g *Gate) CheckAccess() Access {
	raw, ok, err := g.state.Get(StorageKey)
	if err != nil {
		g.log.Warn("read session", slog.String("err", err.Error()))
		return AccessAbsent
	}
	if !ok {
		return AccessAbsent
	}

	cred, err := decodeCredential(raw)
	if err != nil {
		g.log.Warn("discarding unreadable session", slog.String("err", err.Error()))
		g.clear()
		return AccessAbsent
	}

	if cred.ExpiredAt(g.clock.Now()) {
		g.clear()
		return AccessExpired
	}
	return AccessValid
}

// Require returns ErrLoginRequired unless the session is valid.
func (g *Gate) Require() error {
	switch g.CheckAccess() {
	case AccessValid:
		return nil
	case AccessExpired:
		return fmt.Errorf("%w: session expired", ErrLoginRequired)
	default:
		return ErrLoginRequired
	}
}

func (g *Gate) Logout() error {
	return g.state.Delete(StorageKey)
}

func (g *Gate) clear() {
	if err := g.state.Delete(StorageKey); err != nil {
		g.log.Warn("clear session", slog.String("err", err.Error()))
	}
}
