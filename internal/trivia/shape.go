package trivia

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"newsdesk/internal/models"
)

const optionsPerQuestion = 4

// shape превращает результаты Open Trivia DB в вопросы. Варианты ответа
// сортируются лексикографически, поэтому порядок воспроизводим.
// Неполные записи пропускаются, нумерация идёт с 1 по оставшимся.
func shape(results []apiResult) []models.QuizQuestion {
	questions := make([]models.QuizQuestion, 0, len(results))

	for _, r := range results {
		correct := html.UnescapeString(r.CorrectAnswer)
		if strings.TrimSpace(correct) == "" || len(r.IncorrectAnswers)+1 != optionsPerQuestion {
			continue
		}

		options := make([]string, 0, optionsPerQuestion)
		seen := map[string]bool{correct: true}
		for _, a := range r.IncorrectAnswers {
			a = html.UnescapeString(a)
			if seen[a] {
				break
			}
			seen[a] = true
			options = append(options, a)
		}
		// повтор варианта сломал бы «правильный ответ ровно один раз»
		if len(options) != len(r.IncorrectAnswers) {
			continue
		}
		options = append(options, correct)
		sort.Strings(options)

		number := len(questions) + 1
		ids := make(map[string]string, len(options))
		for i, opt := range options {
			ids[opt] = models.OptionID(number, i+1)
		}

		questions = append(questions, models.QuizQuestion{
			Number:        number,
			Text:          html.UnescapeString(r.Question),
			Category:      html.UnescapeString(r.Category),
			Difficulty:    r.Difficulty,
			Options:       options,
			CorrectAnswer: correct,
			OptionIDs:     ids,
		})
	}
	return questions
}
