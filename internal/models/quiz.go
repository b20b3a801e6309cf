package models

// Category - тематическая категория Open Trivia DB.
type Category struct {
	Name string
	ID   int
}

// QuizQuestion - вопрос с четырьмя вариантами ответа.
// Options отсортированы, CorrectAnswer встречается среди них ровно один раз.
// OptionIDs сопоставляет тексту варианта идентификатор поля формы.
type QuizQuestion struct {
	Number        int
	Text          string
	Category      string
	Difficulty    string
	Options       []string
	CorrectAnswer string
	OptionIDs     map[string]string
}

// FieldName - имя группы переключателей вопроса в форме ответа.
func (q QuizQuestion) FieldName() string {
	return QuestionField(q.Number)
}

// Score - итог проверки отправленной формы.
type Score struct {
	Score int
	Total int
}
