//go:build unit

package conversation

import (
	"testing"

	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/token"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersEncoding(t *testing.T) {
	yes, no := true, false

	a := Answers{
		Name:           "Анна_Мария",
		Cleaner:        "Alexey",
		Address:        "100% ул. Ленина_1",
		ServiceType:    "general",
		Windows:        &yes,
		Cobweb:         &no,
		Surfaces:       true,
		Kitchen:        true,
		CleanerRating:  10,
		ManagerRating:  1,
		Recommendation: 7,
		Suggestions:    "None",
	}

	got, err := decodeAnswers(a.encode())
	require.NoError(t, err)
	if diff := cmp.Diff(a, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.Balcony, "unanswered flag stays absent")
}

func TestConsistentAt(t *testing.T) {
	steps := newFlow()
	yes := true

	collected := Answers{Name: "Анна", Cleaner: "Ilya", Address: "Тверская 3", ServiceType: "maintenance"}

	t.Run("name needs nothing", func(t *testing.T) {
		assert.NoError(t, Answers{}.consistentAt(StepName, steps))
	})

	t.Run("maintenance goes straight to surfaces", func(t *testing.T) {
		assert.NoError(t, collected.consistentAt(StepSurfaces, steps))
	})

	t.Run("windows is not on the maintenance path", func(t *testing.T) {
		err := collected.consistentAt(StepWindows, steps)
		assert.True(t, errs.Is(err, token.ErrMalformed))
	})

	t.Run("general-only flag on maintenance", func(t *testing.T) {
		a := collected
		a.Windows = &yes
		err := a.consistentAt(StepSurfaces, steps)
		assert.True(t, errs.Is(err, token.ErrMalformed))
	})

	t.Run("ratings must be in range before later steps", func(t *testing.T) {
		a := collected
		a.CleanerRating = 10
		assert.True(t, errs.Is(a.consistentAt(StepRecommendRating, steps), token.ErrMalformed))

		a.ManagerRating = 3
		assert.NoError(t, a.consistentAt(StepRecommendRating, steps))
	})

	t.Run("general path requires the extra items", func(t *testing.T) {
		a := collected
		a.ServiceType = "general"
		assert.NoError(t, a.consistentAt(StepWindows, steps))
		assert.True(t, errs.Is(a.consistentAt(StepSurfaces, steps), token.ErrMalformed))

		a.Windows, a.Cobweb, a.Balcony = &yes, &yes, &yes
		assert.NoError(t, a.consistentAt(StepSurfaces, steps))
	})
}

func TestNormalizeSuggestions(t *testing.T) {
	for in, want := range map[string]string{
		"нет":          "",
		" Нет ":        "",
		"no":           "",
		"":             "",
		"нет пыли":     "нет пыли",
		" Всё хорошо ": "Всё хорошо",
	} {
		assert.Equal(t, want, normalizeSuggestions(in), in)
	}
}
