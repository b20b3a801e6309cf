// Package trivia загружает вопросы Open Trivia DB, собирает из них
// вопросы с четырьмя вариантами и считает результат отправленной формы.
package trivia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"newsdesk/internal/fetcher"
	"newsdesk/internal/logger"
	"newsdesk/internal/models"
)

const (
	DefaultBaseURL  = "https://opentdb.com"
	DefaultCategory = 9
	BatchSize       = 5
	UpstreamName    = "trivia"
)

var categories = []models.Category{
	{Name: "General Knowledge", ID: 9},
	{Name: "Science & Nature", ID: 17},
	{Name: "Computers", ID: 18},
	{Name: "Mathematics", ID: 19},
	{Name: "Geography", ID: 22},
	{Name: "History", ID: 23},
}

// Categories возвращает копию фиксированного списка категорий.
func Categories() []models.Category {
	out := make([]models.Category, len(categories))
	copy(out, categories)
	return out
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type Client struct {
	baseURL string
	fetcher *fetcher.Client
}

func NewClient(baseURL string, f *fetcher.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), fetcher: f}
}

// Questions загружает пачку из пяти вопросов категории categoryID.
// При любой ошибке возвращается пустой срез и *fetcher.Error.
func (c *Client) Questions(ctx context.Context, categoryID int) ([]models.QuizQuestion, error) {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(BatchSize))
	q.Set("type", "multiple")
	q.Set("category", strconv.Itoa(categoryID))

	var resp apiResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/api.php?"+q.Encode(), &resp); err != nil {
		return []models.QuizQuestion{}, err
	}
	if resp.ResponseCode != 0 {
		return []models.QuizQuestion{}, fetcher.Upstream(UpstreamName, fmt.Sprintf("response_code %d", resp.ResponseCode))
	}

	questions := shape(resp.Results)
	logger.Log.WithFields(logger.Fields{
		"upstream": UpstreamName,
		"category": categoryID,
		"received": len(resp.Results),
		"kept":     len(questions),
	}).Debug("Quiz batch shaped")
	return questions, nil
}
