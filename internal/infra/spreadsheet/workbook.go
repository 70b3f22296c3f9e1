// Package spreadsheet writes the administrator dump as an xlsx workbook.
package spreadsheet

import (
	"cleaning-feedback-bot/internal/pkg/errs"
	"cleaning-feedback-bot/internal/usecase/readmodel"

	"github.com/xuri/excelize/v2"
)

const (
	SheetUsers    = "Users"
	SheetFeedback = "Feedback"

	timeLayout = "2006-01-02 15:04:05"
)

var (
	usersHeader = []any{"user_id", "name", "last_check", "coupon"}

	feedbackHeader = []any{
		"id", "user_id", "name", "cleaner_name", "address", "cleaning_type",
		"surfaces", "floor", "bathrooms", "kitchen", "trash", "mirror",
		"windows", "cobweb", "balcony",
		"cleaner_rating", "manager_rating", "recommendation_rating",
		"suggestions", "date",
	}
)

// Writer builds the workbook in memory; nothing touches the filesystem.
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(users []readmodel.UserRow, feedback []readmodel.FeedbackRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetUsers); err != nil {
		return nil, errs.Wrap(err, "failed to name users sheet")
	}
	if _, err := f.NewSheet(SheetFeedback); err != nil {
		return nil, errs.Wrap(err, "failed to add feedback sheet")
	}

	rows := make([][]any, 0, len(users)+1)
	rows = append(rows, usersHeader)
	for _, u := range users {
		rows = append(rows, []any{u.UserID, u.Name, optString(u.LastCheck), optString(u.Coupon)})
	}
	if err := writeRows(f, SheetUsers, rows); err != nil {
		return nil, err
	}

	rows = make([][]any, 0, len(feedback)+1)
	rows = append(rows, feedbackHeader)
	for _, fb := range feedback {
		rows = append(rows, []any{
			fb.ID, fb.UserID, fb.Name, fb.CleanerName, fb.Address, fb.CleaningType,
			flag(fb.Surfaces), flag(fb.Floor), flag(fb.Bathrooms), flag(fb.Kitchen), flag(fb.Trash), flag(fb.Mirror),
			optFlag(fb.Windows), optFlag(fb.Cobweb), optFlag(fb.Balcony),
			fb.CleanerRating, fb.ManagerRating, fb.RecommendationRating,
			fb.Suggestions, fb.CreatedAt.Format(timeLayout),
		})
	}
	if err := writeRows(f, SheetFeedback, rows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errs.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errs.Wrap(err, "failed to address cell")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errs.Wrapf(err, "failed to write %s row %d", sheet, i+1)
		}
	}
	return nil
}

func flag(v bool) int {
	if v {
		return 1
	}
	return 0
}

func optFlag(v *bool) any {
	if v == nil {
		return ""
	}
	return flag(*v)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
