package commands

//go:generate go run go.uber.org/mock/mockgen -source=finalize.go -destination=../../../tests/mock/commands/finalize.go -package=commandsmock

import (
	"context"

	"cleaning-feedback-bot/internal/domain/cooldown"
	"cleaning-feedback-bot/internal/domain/coupon"
	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/domain/user"
	"cleaning-feedback-bot/internal/pkg/clock"
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/shared"
)

type FinalizeStatus int

const (
	FinalizeRecorded FinalizeStatus = iota
	// FinalizeRejected means the cooldown is still running; nothing was written.
	FinalizeRejected
)

type FinalizeRequest struct {
	UserID int64
	Input  feedback.RecordInput
}

type FinalizeResult struct {
	Status FinalizeStatus
	Record *feedback.Record
	Coupon coupon.Code
}

type CouponIssuer interface {
	Issue() (coupon.Code, error)
}

type FinalizeCommands interface {
	Finalize(ctx context.Context, req FinalizeRequest) (*FinalizeResult, error)
}

type finalizeUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	guard  *cooldown.Guard
	issuer CouponIssuer
}

func NewFinalizeUseCase(uow shared.UnitOfWork, clk clock.Clock, guard *cooldown.Guard, issuer CouponIssuer) FinalizeCommands {
	return &finalizeUseCaseImpl{
		uow:    uow,
		clock:  clk,
		guard:  guard,
		issuer: issuer,
	}
}

// Finalize checks the cooldown and stores the submission in one transaction. The user row
// is locked first, so two finalizes for the same user run one after the other and the
// second one sees the first one's last check.
func (uc *finalizeUseCaseImpl) Finalize(ctx context.Context, req FinalizeRequest) (*FinalizeResult, error) {
	now := uc.clock.Now().In(uc.guard.Location())

	rec, err := feedback.NewRecord(req.Input, now)
	if err != nil {
		return nil, err
	}

	var result *FinalizeResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().EnsureExists(ctx, tx.DB(), req.UserID, rec.Name()); err != nil {
			return err
		}

		snap, err := tx.Users().LockForUpdate(ctx, tx.DB(), req.UserID)
		if err != nil {
			return err
		}

		allowed, err := uc.guard.Check(now, snap.LastCheck)
		if err != nil {
			return errs.Wrapf(err, "user %d has last_check %q", req.UserID, snap.LastCheck)
		}
		if !allowed {
			result = &FinalizeResult{Status: FinalizeRejected}
			return nil
		}

		code, err := uc.issuer.Issue()
		if err != nil {
			return errs.Wrap(err, "failed to issue coupon")
		}

		u := user.Restore(snap.ID, snap.Name, nil, nil)
		u.RecordSubmission(rec.Name(), now, code)
		if err := tx.Users().SaveSubmission(ctx, tx.DB(), u); err != nil {
			return err
		}

		id, err := tx.Feedback().Create(ctx, tx.DB(), rec)
		if err != nil {
			return err
		}

		result = &FinalizeResult{Status: FinalizeRecorded, Record: rec.WithID(id), Coupon: code}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
