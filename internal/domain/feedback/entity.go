package feedback

import (
	"strings"
	"time"
)

// Record is one completed conversation. It is never changed after it is stored.
type Record struct {
	id             int64
	userID         int64
	name           string
	cleaner        Cleaner
	address        string
	serviceType    ServiceType
	checklist      Checklist
	cleanerRating  Rating
	managerRating  Rating
	recommendation Rating
	suggestions    string
	createdAt      time.Time
}

type RecordInput struct {
	UserID         int64
	Name           string
	Cleaner        string
	Address        string
	ServiceType    string
	Checklist      Checklist
	CleanerRating  int
	ManagerRating  int
	Recommendation int
	Suggestions    string
}

func NewRecord(in RecordInput, now time.Time) (*Record, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	cleaner, err := NewCleaner(in.Cleaner)
	if err != nil {
		return nil, err
	}

	serviceType, err := NewServiceType(in.ServiceType)
	if err != nil {
		return nil, err
	}

	checklist, err := in.Checklist.ForBranch(serviceType)
	if err != nil {
		return nil, err
	}

	ratings := make([]Rating, 0, 3)
	for _, v := range []int{in.CleanerRating, in.ManagerRating, in.Recommendation} {
		r, err := NewRating(v)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}

	return &Record{
		userID:         in.UserID,
		name:           name,
		cleaner:        cleaner,
		address:        strings.TrimSpace(in.Address),
		serviceType:    serviceType,
		checklist:      checklist,
		cleanerRating:  ratings[0],
		managerRating:  ratings[1],
		recommendation: ratings[2],
		suggestions:    in.Suggestions,
		createdAt:      now,
	}, nil
}

// WithID is used by the store after insert.
func (r *Record) WithID(id int64) *Record {
	cp := *r
	cp.id = id
	return &cp
}

func (r *Record) ID() int64                { return r.id }
func (r *Record) UserID() int64            { return r.userID }
func (r *Record) Name() string             { return r.name }
func (r *Record) Cleaner() Cleaner         { return r.cleaner }
func (r *Record) Address() string          { return r.address }
func (r *Record) ServiceType() ServiceType { return r.serviceType }
func (r *Record) Checklist() Checklist     { return r.checklist }
func (r *Record) CleanerRating() Rating    { return r.cleanerRating }
func (r *Record) ManagerRating() Rating    { return r.managerRating }
func (r *Record) Recommendation() Rating   { return r.recommendation }
func (r *Record) Suggestions() string      { return r.suggestions }
func (r *Record) CreatedAt() time.Time     { return r.createdAt }
