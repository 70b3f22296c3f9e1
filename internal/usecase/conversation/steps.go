package conversation

import (
	"context"
	"strconv"
	"strings"

	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"

	"github.com/looplab/fsm"
)

type Step string

const (
	StepStart           Step = "start"
	StepName            Step = "name"
	StepCleaner         Step = "cleaner"
	StepAddress         Step = "address"
	StepServiceType     Step = "type"
	StepWindows         Step = "windows"
	StepCobweb          Step = "cobweb"
	StepBalcony         Step = "balcony"
	StepSurfaces        Step = "surfaces"
	StepFloor           Step = "floor"
	StepBathrooms       Step = "bathrooms"
	StepKitchen         Step = "kitchen"
	StepTrash           Step = "trash"
	StepMirror          Step = "mirror"
	StepCleanerRating   Step = "cleaner_rating"
	StepManagerRating   Step = "manager_rating"
	StepRecommendRating Step = "recommend_rating"
	StepSuggestions     Step = "suggestions"
	StepFinalize        Step = "finalize"
)

// NoSuggestionsValue is sent by the «Нет» button on the suggestions prompt.
const NoSuggestionsValue = "no"

const ratingColumns = 5

// Input is a reply to the awaited step.
type Input struct {
	Text     string
	Choice   string
	IsChoice bool
}

type stepDef struct {
	prompt shared.Prompt
	// accept stores the reply in a. It returns false when the reply cannot answer the step.
	accept func(a *Answers, in Input) bool
	// event picks the transition fired once the step is answered; nil fires eventAnswer.
	event func(a Answers) string
	// answered reports whether a already holds this step's answer.
	answered func(a Answers) bool
}

func always(Answers) bool { return true }

func freeText(text string, set func(a *Answers, v string), get func(a Answers) string) stepDef {
	return stepDef{
		prompt: shared.Prompt{Text: text, Affordance: shared.FreeText},
		accept: func(a *Answers, in Input) bool {
			v := strings.TrimSpace(in.Text)
			if in.IsChoice || v == "" {
				return false
			}
			set(a, v)
			return true
		},
		answered: func(a Answers) bool { return get(a) != "" },
	}
}

// checklistItem accepts any text: only the done label counts as done.
func checklistItem(text, done, notDone string, set func(a *Answers, v bool), answered func(Answers) bool) stepDef {
	return stepDef{
		prompt: shared.Prompt{
			Text:       text,
			Affordance: shared.ReplyKeyboard,
			Options:    []shared.Option{{Label: done, Value: done}, {Label: notDone, Value: notDone}},
			Columns:    2,
		},
		accept: func(a *Answers, in Input) bool {
			if in.IsChoice {
				return false
			}
			set(a, strings.TrimSpace(in.Text) == done)
			return true
		},
		answered: answered,
	}
}

func optionalItem(text, done, notDone string, field func(a *Answers) **bool) stepDef {
	return checklistItem(text, done, notDone,
		func(a *Answers, v bool) { *field(a) = &v },
		func(a Answers) bool { return *field(&a) != nil },
	)
}

func requiredItem(text, done, notDone string, field func(a *Answers) *bool) stepDef {
	return checklistItem(text, done, notDone,
		func(a *Answers, v bool) { *field(a) = v },
		always,
	)
}

func rating(text string, field func(a *Answers) *int, removeKeyboard bool) stepDef {
	options := make([]shared.Option, 0, feedback.MaxRating)
	for i := feedback.MinRating; i <= feedback.MaxRating; i++ {
		v := strconv.Itoa(i)
		options = append(options, shared.Option{Label: v, Value: v})
	}

	return stepDef{
		prompt: shared.Prompt{
			Text:           text,
			Affordance:     shared.InlineChoices,
			Options:        options,
			Columns:        ratingColumns,
			RemoveKeyboard: removeKeyboard,
		},
		accept: func(a *Answers, in Input) bool {
			if !in.IsChoice {
				return false
			}
			n, err := strconv.Atoi(in.Choice)
			if err != nil {
				return false
			}
			if _, err := feedback.NewRating(n); err != nil {
				return false
			}
			*field(a) = n
			return true
		},
		answered: func(a Answers) bool {
			_, err := feedback.NewRating(*field(&a))
			return err == nil
		},
	}
}

const (
	labelDone       = "Убрали ✅"
	labelNotDone    = "НЕ убрали ❌"
	labelClean      = "Чисто ✅"
	labelTaken      = "Вынесли ✅"
	labelNotTaken   = "НЕ вынесли ❌"
	labelWashed     = "Помыли ✅"
	labelNotWashed  = "НЕ помыли ❌"
	labelNoSuggests = "Нет"
)

// graph holds what each step asks and accepts. Where it leads is in transitions.
func graph() map[Step]stepDef {
	cleanerOptions := make([]shared.Option, 0, len(feedback.Cleaners))
	for _, c := range feedback.Cleaners {
		cleanerOptions = append(cleanerOptions, shared.Option{Label: c.Label(), Value: c.String()})
	}

	return map[Step]stepDef{
		StepStart: {
			accept:   func(*Answers, Input) bool { return true },
			answered: always,
		},
		StepName: freeText(
			"Добро пожаловать в чек-лист бота Rate Cleaning! Как Вас зовут?",
			func(a *Answers, v string) { a.Name = v },
			func(a Answers) string { return a.Name },
		),
		StepCleaner: {
			prompt: shared.Prompt{
				Text:       "Выберите, кто проводил клининг:",
				Affordance: shared.InlineChoices,
				Options:    cleanerOptions,
				Columns:    2,
			},
			accept: func(a *Answers, in Input) bool {
				if !in.IsChoice {
					return false
				}
				c, err := feedback.NewCleaner(in.Choice)
				if err != nil {
					return false
				}
				a.Cleaner = c.String()
				return true
			},
			answered: func(a Answers) bool {
				_, err := feedback.NewCleaner(a.Cleaner)
				return err == nil
			},
		},
		StepAddress: freeText(
			"Теперь укажите ваш адрес",
			func(a *Answers, v string) { a.Address = v },
			func(a Answers) string { return a.Address },
		),
		StepServiceType: {
			prompt: shared.Prompt{
				Text:       "Выберите тип уборки:",
				Affordance: shared.InlineChoices,
				Options: []shared.Option{
					{Label: feedback.ServiceGeneral.Label(), Value: feedback.ServiceGeneral.Short()},
					{Label: feedback.ServiceMaintenance.Label(), Value: feedback.ServiceMaintenance.Short()},
				},
				Columns: 2,
			},
			accept: func(a *Answers, in Input) bool {
				if !in.IsChoice {
					return false
				}
				t, err := feedback.NewServiceType(in.Choice)
				if err != nil {
					return false
				}
				a.ServiceType = t.String()
				if t == feedback.ServiceMaintenance {
					a.Windows, a.Cobweb, a.Balcony = nil, nil, nil
				}
				return true
			},
			event: func(a Answers) string {
				if a.ServiceType == feedback.ServiceGeneral.String() {
					return eventGeneral
				}
				return eventMaintenance
			},
			answered: func(a Answers) bool {
				_, err := feedback.NewServiceType(a.ServiceType)
				return err == nil
			},
		},
		StepWindows: optionalItem("Мойка окон:", labelDone, labelNotDone,
			func(a *Answers) **bool { return &a.Windows }),
		StepCobweb: optionalItem("Удаление паутины:", labelClean, labelNotDone,
			func(a *Answers) **bool { return &a.Cobweb }),
		StepBalcony: optionalItem("Уборка балкона и террасной зоны:", labelDone, labelNotDone,
			func(a *Answers) **bool { return &a.Balcony }),
		StepSurfaces: requiredItem("Пыль и загрязнения на различных поверхностях:", labelDone, labelNotDone,
			func(a *Answers) *bool { return &a.Surfaces }),
		StepFloor: requiredItem("Сухая и влажная уборка полов:", labelDone, labelNotDone,
			func(a *Answers) *bool { return &a.Floor }),
		StepBathrooms: requiredItem("Санузлы (смесители, унитаз):", labelDone, labelNotDone,
			func(a *Answers) *bool { return &a.Bathrooms }),
		StepKitchen: requiredItem("Кухня (плита, столешницы, посуда, раковина, фасады):", labelDone, labelNotDone,
			func(a *Answers) *bool { return &a.Kitchen }),
		StepTrash: requiredItem("Мусор:", labelTaken, labelNotTaken,
			func(a *Answers) *bool { return &a.Trash }),
		StepMirror: requiredItem("Зеркала:", labelWashed, labelNotWashed,
			func(a *Answers) *bool { return &a.Mirror }),
		StepCleanerRating: rating("Оцените работу клинера от 1 до 10:",
			func(a *Answers) *int { return &a.CleanerRating }, true),
		StepManagerRating: rating("Оцените работу менеджера от 1 до 10:",
			func(a *Answers) *int { return &a.ManagerRating }, false),
		StepRecommendRating: rating("Готовы ли вы рекомендовать нас от 1 до 10?",
			func(a *Answers) *int { return &a.Recommendation }, false),
		StepSuggestions: {
			prompt: shared.Prompt{
				Text:       "Есть ли замечания или предложения? Напишите их ниже или нажмите 'Нет':",
				Affordance: shared.InlineChoices,
				Options:    []shared.Option{{Label: labelNoSuggests, Value: NoSuggestionsValue}},
				Columns:    1,
			},
			accept: func(a *Answers, in Input) bool {
				if in.IsChoice {
					if in.Choice != NoSuggestionsValue {
						return false
					}
					a.Suggestions = ""
					return true
				}
				a.Suggestions = normalizeSuggestions(in.Text)
				return true
			},
			answered: always,
		},
	}
}

const (
	eventAnswer      = "answer"
	eventGeneral     = "general"
	eventMaintenance = "maintenance"
)

func linear(src, dst Step) fsm.EventDesc {
	return fsm.EventDesc{Name: eventAnswer, Src: []string{string(src)}, Dst: string(dst)}
}

// transitions is the step graph. The only branch is after the service type.
var transitions = fsm.Events{
	linear(StepStart, StepName),
	linear(StepName, StepCleaner),
	linear(StepCleaner, StepAddress),
	linear(StepAddress, StepServiceType),
	{Name: eventGeneral, Src: []string{string(StepServiceType)}, Dst: string(StepWindows)},
	{Name: eventMaintenance, Src: []string{string(StepServiceType)}, Dst: string(StepSurfaces)},
	linear(StepWindows, StepCobweb),
	linear(StepCobweb, StepBalcony),
	linear(StepBalcony, StepSurfaces),
	linear(StepSurfaces, StepFloor),
	linear(StepFloor, StepBathrooms),
	linear(StepBathrooms, StepKitchen),
	linear(StepKitchen, StepTrash),
	linear(StepTrash, StepMirror),
	linear(StepMirror, StepCleanerRating),
	linear(StepCleanerRating, StepManagerRating),
	linear(StepManagerRating, StepRecommendRating),
	linear(StepRecommendRating, StepSuggestions),
	linear(StepSuggestions, StepFinalize),
}

type flow struct {
	steps  map[Step]stepDef
	events fsm.Events
}

func newFlow() flow {
	return flow{steps: graph(), events: transitions}
}

// next places a throwaway machine at from and fires the step's event. The position
// itself lives in the token, so no machine outlives the call.
func (f flow) next(from Step, a Answers) (Step, error) {
	event := eventAnswer
	if def, ok := f.steps[from]; ok && def.event != nil {
		event = def.event(a)
	}

	m := fsm.NewFSM(string(from), f.events, nil)
	if err := m.Event(context.Background(), event); err != nil {
		return "", errs.Wrapf(err, "no transition from %s on %s", from, event)
	}
	return Step(m.Current()), nil
}
