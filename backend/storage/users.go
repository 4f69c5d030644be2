package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"coursehub/backend/models"
)

// Users returns the registry of every account created on this device.
func (g *Gateway) Users() []models.User {
	return readList[models.User](g, KeyUsers)
}

func (g *Gateway) UserByEmail(email string) (*models.User, error) {
	for _, u := range g.Users() {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
}

func (g *Gateway) AddUser(u models.User) (models.User, error) {
	users := g.Users()
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = g.newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = g.now().UTC()
	}
	if err := g.check(u); err != nil {
		return models.User{}, err
	}

	if err := g.write("addUser", KeyUsers, "Error creating account", append(users, u)); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpdateUser applies update to the stored user and keeps the session copy in
// sync when that user is signed in. Id and email uniqueness are preserved.
func (g *Gateway) UpdateUser(id string, update func(*models.User)) (models.User, error) {
	users := g.Users()
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	updated := users[idx]
	update(&updated)
	updated.ID = id
	for i, other := range users {
		if i != idx && strings.EqualFold(other.Email, updated.Email) {
			return models.User{}, ErrEmailTaken
		}
	}
	if err := g.check(updated); err != nil {
		return models.User{}, err
	}
	users[idx] = updated

	if err := g.write("updateUser", KeyUsers, "Update failed", users); err != nil {
		return models.User{}, err
	}
	if current := g.CurrentUser(); current != nil && current.ID == id {
		if err := g.SaveUser(updated.Public()); err != nil {
			return models.User{}, err
		}
	}
	return updated, nil
}

// CurrentUser returns the signed-in user, or nil.
func (g *Gateway) CurrentUser() *models.User {
	if !g.IsLoggedIn() {
		return nil
	}
	return readOne[models.User](g, KeyCurrentUser)
}

// SaveUser makes u the current user and raises the session flag.
// Callers pass the public copy; the session never needs the hash.
func (g *Gateway) SaveUser(u models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = g.now().UTC()
	}
	if err := g.write("saveUser", KeyCurrentUser, "Could not save session", u); err != nil {
		return err
	}
	return g.setRaw("saveUser", KeyLoggedIn, "Could not save session", "true")
}

func (g *Gateway) Logout() error {
	if err := g.remove("logout", KeyCurrentUser, "Logout failed"); err != nil {
		return err
	}
	return g.setRaw("logout", KeyLoggedIn, "Logout failed", "false")
}

func (g *Gateway) IsLoggedIn() bool {
	raw, ok := g.get(KeyLoggedIn)
	return ok && raw == "true"
}

// RememberedEmail is the login convenience value, empty when unset.
func (g *Gateway) RememberedEmail() string {
	raw, ok := g.get(KeyRememberedEmail)
	if !ok {
		return ""
	}
	var email string
	if err := json.Unmarshal([]byte(raw), &email); err != nil {
		return ""
	}
	return email
}

func (g *Gateway) RememberEmail(email string) error {
	return g.write("rememberEmail", KeyRememberedEmail, "Could not remember email", email)
}

func (g *Gateway) ForgetEmail() error {
	return g.remove("forgetEmail", KeyRememberedEmail, "Could not forget email")
}
