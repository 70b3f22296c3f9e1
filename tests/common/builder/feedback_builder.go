//go:build unit || e2e

package builder

import (
	"time"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/infra/db"

	"github.com/jackc/pgx/v5/pgtype"
)

type FeedbackBuilder struct {
	UserID         int64
	Name           string
	Cleaner        string
	Address        string
	ServiceType    string
	Checklist      feedback.Checklist
	CleanerRating  int
	ManagerRating  int
	Recommendation int
	Suggestions    string
	CreatedAt      time.Time
}

// NewFeedbackBuilder starts from a maintenance record with every item done.
func NewFeedbackBuilder() *FeedbackBuilder {
	return &FeedbackBuilder{
		UserID:      42,
		Name:        "Анна",
		Cleaner:     feedback.CleanerIlya.String(),
		Address:     "ул. Ленина, 1",
		ServiceType: feedback.ServiceMaintenance.String(),
		Checklist: feedback.Checklist{
			Surfaces:  true,
			Floor:     true,
			Bathrooms: true,
			Kitchen:   true,
			Trash:     true,
			Mirror:    true,
		},
		CleanerRating:  10,
		ManagerRating:  9,
		Recommendation: 8,
		CreatedAt:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *FeedbackBuilder) With(mutate func(*FeedbackBuilder)) *FeedbackBuilder {
	mutate(b)
	return b
}

// General switches to general cleaning with the three extra items set to v.
func (b *FeedbackBuilder) General(v bool) *FeedbackBuilder {
	b.ServiceType = feedback.ServiceGeneral.String()
	b.Checklist.Windows = ptr(v)
	b.Checklist.Cobweb = ptr(v)
	b.Checklist.Balcony = ptr(v)
	return b
}

func (b *FeedbackBuilder) Input() feedback.RecordInput {
	return feedback.RecordInput{
		UserID:         b.UserID,
		Name:           b.Name,
		Cleaner:        b.Cleaner,
		Address:        b.Address,
		ServiceType:    b.ServiceType,
		Checklist:      b.Checklist,
		CleanerRating:  b.CleanerRating,
		ManagerRating:  b.ManagerRating,
		Recommendation: b.Recommendation,
		Suggestions:    b.Suggestions,
	}
}

// Build methods
func (b *FeedbackBuilder) BuildDomain() (*feedback.Record, error) {
	return feedback.NewRecord(b.Input(), b.CreatedAt)
}

func (b *FeedbackBuilder) MustBuildDomain() *feedback.Record {
	rec, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return rec
}

func (b *FeedbackBuilder) BuildInfra(id int64) db.Feedback {
	c := b.Checklist
	return db.Feedback{
		ID:                   id,
		UserID:               b.UserID,
		Name:                 b.Name,
		CleanerName:          b.Cleaner,
		Address:              b.Address,
		CleaningType:         b.ServiceType,
		Surfaces:             c.Surfaces,
		Floor:                c.Floor,
		Bathrooms:            c.Bathrooms,
		Kitchen:              c.Kitchen,
		Trash:                c.Trash,
		Mirror:               c.Mirror,
		Windows:              optBool(c.Windows),
		Cobweb:               optBool(c.Cobweb),
		Balcony:              optBool(c.Balcony),
		CleanerRating:        int16(b.CleanerRating),
		ManagerRating:        int16(b.ManagerRating),
		RecommendationRating: int16(b.Recommendation),
		Suggestions:          b.Suggestions,
		CreatedAt:            pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
}

func optBool(v *bool) pgtype.Bool {
	if v == nil {
		return pgtype.Bool{}
	}
	return pgtype.Bool{Bool: *v, Valid: true}
}

func ptr[T any](v T) *T { return &v }
