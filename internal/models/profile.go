package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the one-per-user row backing both auth and the weekly
// allowance balance.
type Profile struct {
	ID              string          `json:"id"`
	Username        string          `json:"username"`
	FullName        string          `json:"full_name,omitempty"`
	Email           string          `json:"email"`
	PasswordHash    string          `json:"-"`
	WeeklyAllowance decimal.Decimal `json:"weekly_allowance"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Profile) Validate() error {
	if len(strings.TrimSpace(p.Username)) < 3 {
		return errors.New("username too short")
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

// DisplayName picks the name used when a profile row has to be created
// on the fly during a balance upsert: username, then full name, then
// email, then a truncated id.
func (p *Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	if p.FullName != "" {
		return p.FullName
	}
	if p.Email != "" {
		return p.Email
	}
	id := p.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "user_" + id
}

// StorageMode says where a balance value lives for the rest of the
// session: the remote profiles table or the local fallback store.
type StorageMode string

const (
	StorageRemote   StorageMode = "remote"
	StorageFallback StorageMode = "fallback"
)

type Balance struct {
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	StorageMode StorageMode     `json:"storage_mode"`
}
