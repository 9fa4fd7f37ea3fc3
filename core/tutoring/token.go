package tutoring

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oetutor/tutorhub/core"
)

var (
	tokenSalt = []byte("tutorhub.core.tutoring.token")

	// errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// EncodeUID base64 encodes a User ID for inclusion in reset links.
func EncodeUID(usr User) string {
	return base64.RawURLEncoding.EncodeToString([]byte(usr.ID))
}

func decodeUID(uid string) (string, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return "", err
	}
	return string(idBytes), nil
}

// MakeResetToken generates a password reset token for a given User. The
// token is bound to the current password hash, so using it (or changing the
// password any other way) invalidates it.
func MakeResetToken(conf *core.Config, usr User, now time.Time) (string, error) {
	return makeTokenWithTimestamp(conf, usr, numDaysSince2001(now))
}

// verifyResetToken checks that a password reset token for a given User is
// valid and within the configured timeout.
func verifyResetToken(conf *core.Config, usr User, token string, now time.Time) error {
	if token == "" {
		return ErrInvalidToken
	}

	parts := strings.SplitN(token, "-", 2)
	if len(parts) < 2 {
		return ErrInvalidToken
	}

	data, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(parts[0])
	if err != nil {
		return ErrInvalidToken
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return ErrInvalidToken
	}

	// check that token has not been tampered with
	newToken, err := makeTokenWithTimestamp(conf, usr, ts)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(newToken), []byte(token)) == 0 {
		return ErrInvalidToken
	}

	// check that the timestamp is within limit
	if (numDaysSince2001(now) - ts) > int(conf.PasswordResetTimeoutDelta/(24*time.Hour)) {
		return ErrTokenExpired
	}
	return nil
}

func makeTokenWithTimestamp(conf *core.Config, usr User, ts int) (string, error) {
	tsB32 := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(strconv.Itoa(ts)))
	sig, err := sign(conf, hashValue(usr, ts))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", tsB32, sig), nil
}

func numDaysSince2001(t time.Time) int {
	ref := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(t.Sub(ref).Hours() / 24))
}

func sign(conf *core.Config, val []byte) (string, error) {
	key := sha256.Sum256(append(tokenSalt, conf.SecretKey...))
	h := hmac.New(sha256.New, key[:])
	if _, err := h.Write(val); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

func hashValue(usr User, ts int) []byte {
	var val bytes.Buffer
	val.WriteString(usr.ID)
	val.WriteString(usr.PasswordHash)
	val.WriteString(strconv.Itoa(ts))
	return val.Bytes()
}

// RequestPasswordReset emails the user a reset token.
func (svc *Service) RequestPasswordReset(email string) error {
	usr, ok := svc.userByEmail(core.CleanString(email, true /* lower */))
	if !ok {
		return ErrNoAccount
	}
	token, err := MakeResetToken(svc.conf, usr, svc.clock.Now())
	if err != nil {
		return err
	}
	svc.sendMail(usr, "Password reset",
		fmt.Sprintf("Hi %s,\n\nUse this code to reset your password:\n\n  uid:   %s\n  token: %s\n\nIf you did not ask for this, ignore this message.\n", usr.Name, EncodeUID(usr), token))
	return nil
}

// ResetPassword verifies a reset token and sets the new password.
func (svc *Service) ResetPassword(uid, token, password string) error {
	id, err := decodeUID(uid)
	if err != nil {
		return ErrInvalidToken
	}
	usr, ok := svc.UserByID(id)
	if !ok {
		return ErrInvalidToken
	}
	if err := verifyResetToken(svc.conf, usr, token, svc.clock.Now()); err != nil {
		return err
	}
	if len(password) < 6 {
		return core.NewValidationError(nil, core.FieldError{Field: "password", Error: "password must be at least 6 characters"})
	}
	return svc.SetUserPassword(usr.Email, password)
}
