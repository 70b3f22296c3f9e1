// Package conversation runs the feedback checklist. It keeps no per-user state: the
// answers collected so far travel in the sealed token attached to every prompt.
package conversation

import (
	"context"
	"log/slog"

	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/pkg/metrics"
	"cleaning-feedback-bot/internal/pkg/token"
	"cleaning-feedback-bot/internal/usecase/commands"
	"cleaning-feedback-bot/internal/usecase/report"
	"cleaning-feedback-bot/internal/usecase/shared"
)

const (
	SessionExpiredText = "Сессия устарела или данные повреждены. Нажмите /start, чтобы пройти чек-лист заново."
	CooldownText       = "Вы уже проходили чек-лист после последнего клининга 👾"
)

type TokenSealer interface {
	Seal(env token.Envelope) (string, error)
	Open(raw string, chatID int64) (token.Envelope, error)
}

// ContinuationCloser forgets every token parked for a chat, so a finished
// conversation cannot be resumed by a later reply or an old button.
type ContinuationCloser interface {
	CloseChat(ctx context.Context, chatID int64) (int64, error)
}

// Inbound is one user event: a text reply or a button press, with the token it resumes.
type Inbound struct {
	ChatID int64
	UserID int64
	// MessageID anchors cleanup: the user's reply, or the prompt whose button was pressed.
	MessageID int
	Token     string
	Input
}

type Engine struct {
	messenger     shared.Messenger
	finalize      commands.FinalizeCommands
	users         commands.UserCommands
	continuations ContinuationCloser
	sealer        TokenSealer
	metrics       *metrics.Metrics
	logger        *slog.Logger
	adminID       int64
	flow          flow
}

type EngineDeps struct {
	Messenger     shared.Messenger
	Finalize      commands.FinalizeCommands
	Users         commands.UserCommands
	Continuations ContinuationCloser
	Sealer        TokenSealer
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	AdminID       int64
}

func NewEngine(d EngineDeps) *Engine {
	return &Engine{
		messenger:     d.Messenger,
		finalize:      d.Finalize,
		users:         d.Users,
		continuations: d.Continuations,
		sealer:        d.Sealer,
		metrics:       d.Metrics,
		logger:        d.Logger,
		adminID:       d.AdminID,
		flow:          newFlow(),
	}
}

// Start begins a new conversation. Earlier unfinished ones are left as they are.
func (e *Engine) Start(ctx context.Context, chatID int64) error {
	first, err := e.flow.next(StepStart, Answers{})
	if err != nil {
		return err
	}
	return e.ask(ctx, chatID, first, Answers{})
}

func (e *Engine) Handle(ctx context.Context, in Inbound) error {
	step, answers, err := e.open(in.Token, in.ChatID)
	if err != nil {
		e.metrics.TokensRejected.Inc()
		e.logger.Warn("rejected conversation token",
			slog.Int64("chat_id", in.ChatID),
			slog.String("error", err.Error()))
		if _, err := e.messenger.SendText(ctx, in.ChatID, SessionExpiredText); err != nil {
			return errs.Mark(errs.Wrap(err, "failed to send session expired notice"), errs.ErrTransportFailed)
		}
		return nil
	}

	def := e.flow.steps[step]
	if !def.accept(&answers, in.Input) {
		e.metrics.StepsReprompted.WithLabelValues(string(step)).Inc()
		e.logger.Debug("reply does not answer step, asking again",
			slog.Int64("chat_id", in.ChatID),
			slog.String("step", string(step)))
		return e.send(ctx, in.ChatID, def.prompt, in.Token)
	}
	e.metrics.StepsHandled.WithLabelValues(string(step)).Inc()

	if step == StepName {
		e.register(ctx, in.UserID, answers.Name)
	}

	next, err := e.flow.next(step, answers)
	if err != nil {
		return err
	}
	if next == StepFinalize {
		return e.complete(ctx, in, answers)
	}
	return e.ask(ctx, in.ChatID, next, answers)
}

func (e *Engine) open(raw string, chatID int64) (Step, Answers, error) {
	if raw == "" {
		return "", Answers{}, errs.Wrap(token.ErrMalformed, "no token")
	}

	env, err := e.sealer.Open(raw, chatID)
	if err != nil {
		return "", Answers{}, err
	}

	step := Step(env.Step)
	if _, ok := e.flow.steps[step]; !ok || step == StepStart {
		return "", Answers{}, errs.Wrapf(token.ErrMalformed, "unknown step %q", env.Step)
	}

	answers, err := decodeAnswers(env.Payload)
	if err != nil {
		return "", Answers{}, err
	}
	if err := answers.consistentAt(step, e.flow); err != nil {
		return "", Answers{}, err
	}
	return step, answers, nil
}

func (e *Engine) ask(ctx context.Context, chatID int64, step Step, answers Answers) error {
	sealed, err := e.sealer.Seal(token.Envelope{
		Step:    string(step),
		Payload: answers.encode(),
		Chat:    chatID,
	})
	if err != nil {
		return err
	}
	return e.send(ctx, chatID, e.flow.steps[step].prompt, sealed)
}

func (e *Engine) send(ctx context.Context, chatID int64, p shared.Prompt, sealed string) error {
	p.Token = sealed
	if _, err := e.messenger.SendPrompt(ctx, chatID, p); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to send prompt"), errs.ErrTransportFailed)
	}
	return nil
}

// complete persists the submission, then cleans the chat and notifies. Nothing is sent
// before the commit, so a failure after it leaves the record stored but unannounced.
func (e *Engine) complete(ctx context.Context, in Inbound, answers Answers) error {
	res, err := e.finalize.Finalize(ctx, commands.FinalizeRequest{
		UserID: in.UserID,
		Input:  answers.recordInput(in.UserID),
	})
	if err != nil {
		e.metrics.Finalizations.WithLabelValues(metrics.OutcomeFailed).Inc()
		return errs.Wrap(err, "failed to finalize feedback")
	}
	// Recorded or rejected, the conversation is over either way.
	e.close(ctx, in.ChatID)

	if res.Status == commands.FinalizeRejected {
		e.metrics.Finalizations.WithLabelValues(metrics.OutcomeRejected).Inc()
		e.logger.Info("submission rejected by cooldown", slog.Int64("user_id", in.UserID))
		if _, err := e.messenger.SendText(ctx, in.ChatID, CooldownText); err != nil {
			return errs.Mark(errs.Wrap(err, "failed to send cooldown notice"), errs.ErrTransportFailed)
		}
		return nil
	}

	e.metrics.Finalizations.WithLabelValues(metrics.OutcomeRecorded).Inc()
	rec := res.Record
	e.logger.Info("feedback recorded",
		slog.Int64("user_id", in.UserID),
		slog.Int64("feedback_id", rec.ID()),
		slog.String("service_type", rec.ServiceType().String()))

	// Retract first so the thank-you stays visible.
	count := RetractionCount(rec.ServiceType(), rec.Suggestions())
	skipped, err := Retract(ctx, e.messenger, e.logger, in.ChatID, in.MessageID, count)
	e.metrics.RetractionSkipped.Add(float64(skipped))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to retract conversation"), errs.ErrTransportFailed)
	}

	if _, err := e.messenger.SendText(ctx, in.ChatID, report.ThankYou(rec.Name(), res.Coupon)); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to send thank-you"), errs.ErrTransportFailed)
	}
	if _, err := e.messenger.SendText(ctx, e.adminID, report.RenderAdmin(rec, res.Coupon)); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to send admin report"), errs.ErrTransportFailed)
	}
	return nil
}

// register stores the name as soon as it is known, so users who stop halfway still
// show up in the export. Finalize upserts the row again, so a failure here is only logged.
func (e *Engine) register(ctx context.Context, userID int64, name string) {
	if err := e.users.Register(ctx, userID, name); err != nil {
		e.logger.Warn("failed to register user",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
	}
}

// close runs after the commit, so a failure is only logged.
func (e *Engine) close(ctx context.Context, chatID int64) {
	n, err := e.continuations.CloseChat(ctx, chatID)
	if err != nil {
		e.logger.Error("failed to close conversation",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		return
	}
	e.logger.Debug("conversation closed", slog.Int64("chat_id", chatID), slog.Int64("continuations", n))
}
