package converter

import (
	"cleaning-feedback-bot/internal/domain/feedback"
	"cleaning-feedback-bot/internal/infra/db"
	"cleaning-feedback-bot/internal/pkg/pgconv"
)

func FeedbackToInsertParams(rec *feedback.Record) db.InsertFeedbackParams {
	cl := rec.Checklist()
	return db.InsertFeedbackParams{
		UserID:               rec.UserID(),
		Name:                 rec.Name(),
		CleanerName:          rec.Cleaner().String(),
		Address:              rec.Address(),
		CleaningType:         rec.ServiceType().String(),
		Surfaces:             cl.Surfaces,
		Floor:                cl.Floor,
		Bathrooms:            cl.Bathrooms,
		Kitchen:              cl.Kitchen,
		Trash:                cl.Trash,
		Mirror:               cl.Mirror,
		Windows:              pgconv.BoolPtrToPgtype(cl.Windows),
		Cobweb:               pgconv.BoolPtrToPgtype(cl.Cobweb),
		Balcony:              pgconv.BoolPtrToPgtype(cl.Balcony),
		CleanerRating:        int16(rec.CleanerRating().Value()),
		ManagerRating:        int16(rec.ManagerRating().Value()),
		RecommendationRating: int16(rec.Recommendation().Value()),
		Suggestions:          rec.Suggestions(),
		CreatedAt:            pgconv.TimeToPgtype(rec.CreatedAt()),
	}
}
