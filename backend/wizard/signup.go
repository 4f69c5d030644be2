package wizard

import (
	"errors"
	"strings"
	"time"

	"coursehub/backend/models"
	"coursehub/backend/session"
	"coursehub/backend/storage"
	"coursehub/backend/validation"
)

const SignupName = "signup"

// Signup builds the three-step account wizard. Submitting from the
// confirmation step creates the user and signs them in.
func Signup(sess *session.Session, delay time.Duration) Definition[models.User] {
	return Definition[models.User]{
		Name: SignupName,
		Steps: []Step{
			{
				Title:    "Account Details",
				Fields:   []string{"email", "password", "confirmPassword"},
				Validate: validateAccount,
			},
			{
				Title:    "Personal Information",
				Fields:   []string{"firstName", "lastName", "phone"},
				Validate: validatePersonal,
			},
			{Title: "Confirmation"},
		},
		Delay:  delay,
		Secret: []string{"password", "confirmPassword"},
		Complete: func(v Values) (models.User, error) {
			hash, err := session.HashPassword(v["password"])
			if err != nil {
				return models.User{}, err
			}
			u, err := sess.Gateway().AddUser(models.User{
				Email:        strings.TrimSpace(v["email"]),
				FirstName:    strings.TrimSpace(v["firstName"]),
				LastName:     strings.TrimSpace(v["lastName"]),
				Phone:        strings.TrimSpace(v["phone"]),
				PasswordHash: hash,
			})
			if errors.Is(err, storage.ErrEmailTaken) {
				return models.User{}, validation.Errors{"email": "An account with this email already exists"}
			}
			if err != nil {
				return models.User{}, err
			}
			if err := sess.SignIn(u); err != nil {
				return models.User{}, err
			}
			return u.Public(), nil
		},
	}
}

func validateAccount(v Values) validation.Errors {
	errs := validation.Errors{}
	if errs.Required(v["email"], "email", "Email address is required") {
		errs.Check(validation.Email(strings.TrimSpace(v["email"])), "email", "Please enter a valid email address")
	}
	if errs.Required(v["password"], "password", "Password is required") {
		errs.Check(validation.Password(v["password"]), "password", "Password must be at least 6 characters long")
		errs.Check(validation.PasswordFits(v["password"]), "password", "Password must be at most 72 bytes long")
	}
	if errs.Required(v["confirmPassword"], "confirmPassword", "Please confirm your password") {
		errs.Check(validation.ConfirmPassword(v["password"], v["confirmPassword"]), "confirmPassword", "Passwords do not match")
	}
	return errs
}

func validatePersonal(v Values) validation.Errors {
	errs := validation.Errors{}
	if errs.Required(v["firstName"], "firstName", "First name is required") {
		errs.Check(validation.Name(v["firstName"]), "firstName", "First name must be at most 50 characters")
	}
	if errs.Required(v["lastName"], "lastName", "Last name is required") {
		errs.Check(validation.Name(v["lastName"]), "lastName", "Last name must be at most 50 characters")
	}
	// phone is optional on signup
	if strings.TrimSpace(v["phone"]) != "" {
		errs.Check(validation.Phone(v["phone"]), "phone", "Please enter a valid phone number")
	}
	return errs
}
