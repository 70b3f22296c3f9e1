package user

import (
	"time"

	"cleaning-feedback-bot/internal/domain/coupon"
)

// User is keyed by the messenger user id. The row is created on first finalize and only
// changes when a submission is accepted.
type User struct {
	id        int64
	name      string
	lastCheck *time.Time
	coupon    *coupon.Code
}

func NewUser(id int64, name string) (*User, error) {
	if id == 0 {
		return nil, ErrInvalidID
	}
	return &User{id: id, name: name}, nil
}

// Restore rebuilds a user read from the store.
func Restore(id int64, name string, lastCheck *time.Time, code *coupon.Code) *User {
	return &User{id: id, name: name, lastCheck: lastCheck, coupon: code}
}

// RecordSubmission stamps an accepted submission.
func (u *User) RecordSubmission(name string, at time.Time, code coupon.Code) {
	if name != "" {
		u.name = name
	}
	u.lastCheck = &at
	u.coupon = &code
}

func (u *User) ID() int64             { return u.id }
func (u *User) Name() string          { return u.name }
func (u *User) LastCheck() *time.Time { return u.lastCheck }
func (u *User) Coupon() *coupon.Code  { return u.coupon }
