package trivia

import (
	"net/url"
	"strings"

	"newsdesk/internal/models"
)

// Score считает результат формы. Каждое скрытое поле correct_<name>
// добавляет вопрос к Total; балл засчитывается, только если в поле <name>
// выбран ровно один вариант и он совпадает с правильным.
func Score(form url.Values) models.Score {
	var s models.Score
	for key, values := range form {
		field, ok := strings.CutPrefix(key, models.CorrectPrefix)
		if !ok || field == "" || len(values) == 0 {
			continue
		}
		s.Total++

		selected := form[field]
		if len(selected) == 1 && selected[0] == values[0] {
			s.Score++
		}
	}
	return s
}
