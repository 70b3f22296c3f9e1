// Package report renders the texts sent once a checklist is recorded.
package report

import (
	"fmt"
	"strings"

	"cleaning-feedback-bot/internal/domain/coupon"
	"cleaning-feedback-bot/internal/domain/feedback"
)

const (
	markDone    = "✅"
	markNotDone = "❌"
	markAbsent  = "—"
)

func ThankYou(name string, code coupon.Code) string {
	return fmt.Sprintf("Спасибо, %s! Мы собираем эти данные, чтобы улучшить работу нашего клининга! "+
		"В благодарность мы предлагаем вам купон на скидку 10%% при следующем обращении! Ваш купон: %s", name, code)
}

// RenderAdmin is the administrator's summary of one submission.
func RenderAdmin(rec *feedback.Record, code coupon.Code) string {
	cl := rec.Checklist()

	var b strings.Builder
	b.WriteString("___Новый отчет___\n\n")
	fmt.Fprintf(&b, "Клиент: %s 👤\n", rec.Name())
	fmt.Fprintf(&b, "Купон: %s 💸\n\n", code)
	fmt.Fprintf(&b, "Клиннер: %s 👨🏼‍🚀\n", rec.Cleaner())
	fmt.Fprintf(&b, "Адрес: %s 📍\n", rec.Address())
	fmt.Fprintf(&b, "Тип уборки: %s\n\n", rec.ServiceType().Label())
	fmt.Fprintf(&b, "Поверхности: %s\n", mark(cl.Surfaces))
	fmt.Fprintf(&b, "Пол: %s\n", mark(cl.Floor))
	fmt.Fprintf(&b, "Санузлы: %s\n", mark(cl.Bathrooms))
	fmt.Fprintf(&b, "Кухня: %s\n", mark(cl.Kitchen))
	fmt.Fprintf(&b, "Мусор: %s\n", mark(cl.Trash))
	fmt.Fprintf(&b, "Зеркала: %s\n", mark(cl.Mirror))
	fmt.Fprintf(&b, "Окна: %s (только для генеральной)\n", optMark(cl.Windows))
	fmt.Fprintf(&b, "Паутина: %s (только для генеральной)\n", optMark(cl.Cobweb))
	fmt.Fprintf(&b, "Балкон/Терраса: %s (только для генеральной)\n\n", optMark(cl.Balcony))
	fmt.Fprintf(&b, "Оценка клинера: %d\n", rec.CleanerRating().Value())
	fmt.Fprintf(&b, "Оценка менеджера: %d\n", rec.ManagerRating().Value())
	fmt.Fprintf(&b, "Готовность рекомендовать: %d\n\n", rec.Recommendation().Value())
	fmt.Fprintf(&b, "Замечания/Предложения: %s", rec.Suggestions())
	return b.String()
}

func mark(v bool) string {
	if v {
		return markDone
	}
	return markNotDone
}

func optMark(v *bool) string {
	if v == nil {
		return markAbsent
	}
	return mark(*v)
}
