package conversation

import (
	"strings"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/token"
)

// answerFields is the width of the encoded tuple. Fields not collected yet travel as
// zero values.
const answerFields = 17

// Answers is the conversation state carried in the token.
type Answers struct {
	Name        string
	Cleaner     string
	Address     string
	ServiceType string

	// general cleaning only
	Windows *bool
	Cobweb  *bool
	Balcony *bool

	Surfaces  bool
	Floor     bool
	Bathrooms bool
	Kitchen   bool
	Trash     bool
	Mirror    bool

	CleanerRating  int
	ManagerRating  int
	Recommendation int

	Suggestions string
}

func (a Answers) encode() string {
	return token.NewWriter().
		Text(a.Name).
		Text(a.Cleaner).
		Text(a.Address).
		Text(a.ServiceType).
		OptBool(a.Windows).
		OptBool(a.Cobweb).
		OptBool(a.Balcony).
		Bool(a.Surfaces).
		Bool(a.Floor).
		Bool(a.Bathrooms).
		Bool(a.Kitchen).
		Bool(a.Trash).
		Bool(a.Mirror).
		Int(a.CleanerRating).
		Int(a.ManagerRating).
		Int(a.Recommendation).
		Text(a.Suggestions).
		String()
}

func decodeAnswers(payload string) (Answers, error) {
	r, err := token.NewReader(payload, answerFields)
	if err != nil {
		return Answers{}, err
	}

	a := Answers{
		Name:           r.Text(),
		Cleaner:        r.Text(),
		Address:        r.Text(),
		ServiceType:    r.Text(),
		Windows:        r.OptBool(),
		Cobweb:         r.OptBool(),
		Balcony:        r.OptBool(),
		Surfaces:       r.Bool(),
		Floor:          r.Bool(),
		Bathrooms:      r.Bool(),
		Kitchen:        r.Bool(),
		Trash:          r.Bool(),
		Mirror:         r.Bool(),
		CleanerRating:  r.Int(),
		ManagerRating:  r.Int(),
		Recommendation: r.Int(),
		Suggestions:    r.Text(),
	}
	if err := r.Err(); err != nil {
		return Answers{}, err
	}
	return a, nil
}

// consistentAt reports whether a holds exactly what a conversation waiting on step has
// collected: every step on the path to it is answered and the general-only flags are set
// only on the general branch.
func (a Answers) consistentAt(step Step, f flow) error {
	if a.ServiceType == feedback.ServiceMaintenance.String() && (a.Windows != nil || a.Cobweb != nil || a.Balcony != nil) {
		return errs.Wrap(token.ErrMalformed, "general-only answers on maintenance branch")
	}

	s := StepName
	for range f.steps {
		if s == step {
			return nil
		}
		def, ok := f.steps[s]
		if !ok || s == StepFinalize {
			break
		}
		if !def.answered(a) {
			return errs.Wrapf(token.ErrMalformed, "step %s has no answer", s)
		}
		next, err := f.next(s, a)
		if err != nil {
			return errs.Mark(err, token.ErrMalformed)
		}
		s = next
	}
	return errs.Wrapf(token.ErrMalformed, "step %s is not reachable", step)
}

func (a Answers) recordInput(userID int64) feedback.RecordInput {
	return feedback.RecordInput{
		UserID:      userID,
		Name:        a.Name,
		Cleaner:     a.Cleaner,
		Address:     a.Address,
		ServiceType: a.ServiceType,
		Checklist: feedback.Checklist{
			Surfaces:  a.Surfaces,
			Floor:     a.Floor,
			Bathrooms: a.Bathrooms,
			Kitchen:   a.Kitchen,
			Trash:     a.Trash,
			Mirror:    a.Mirror,
			Windows:   a.Windows,
			Cobweb:    a.Cobweb,
			Balcony:   a.Balcony,
		},
		CleanerRating:  a.CleanerRating,
		ManagerRating:  a.ManagerRating,
		Recommendation: a.Recommendation,
		Suggestions:    a.Suggestions,
	}
}

// normalizeSuggestions maps the "no" replies to an empty string.
func normalizeSuggestions(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "нет", "no":
		return ""
	}
	return s
}
