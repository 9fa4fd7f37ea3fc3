package tutoring

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/oetutor/tutorhub/core"
)

var (
	roleTag  = "role"
	roleText = "role must be Student or Tutor"

	// password policy (StrongPasswords mode only)
	pwdMaxSim     = .7
	pwdAttrSimErr = "password cannot be similar to your name or email"
)

func init() {
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

// roleValidation only allows known account roles.
func roleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	for _, r := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

// checkPasswordStrength rejects passwords too similar to the user's own
// attributes. Only consulted when Config.StrongPasswords is on.
func checkPasswordStrength(pwd string, attrs ...string) error {
	lowered := strings.ToLower(pwd)
	matcher := difflib.NewMatcher(nil, strings.Split(lowered, ""))
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}
		for _, part := range strings.FieldsFunc(attr, func(r rune) bool { return r == '@' || r == '.' || r == ' ' || r == '-' || r == '_' }) {
			matcher.SetSeq1(strings.Split(part, ""))
			if matcher.QuickRatio() >= pwdMaxSim {
				return core.NewValidationError(nil, core.FieldError{Field: "password", Error: pwdAttrSimErr})
			}
		}
	}
	return nil
}
