package models

import "strconv"

// CorrectPrefix предшествует имени скрытого поля с правильным ответом.
const CorrectPrefix = "correct_"

func QuestionField(number int) string {
	return "q" + strconv.Itoa(number)
}

func OptionID(number, position int) string {
	return QuestionField(number) + "_" + strconv.Itoa(position)
}
