package huuto

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// ItemQuestions retrieves an item's questions and the seller's answers.
func (c *Client) ItemQuestions(ctx context.Context, itemID int64) (*QuestionList, error) {
	spec := CallSpec{
		Method:     http.MethodGet,
		Path:       "/items/{itemID}/questions",
		PathParams: itemPath(itemID),
	}
	var out QuestionList
	if err := c.getJSON(ctx, spec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateQuestion posts a question on an item. The text is limited to 255
// characters by the API.
func (c *Client) CreateQuestion(ctx context.Context, itemID int64, question string) (json.RawMessage, error) {
	spec := CallSpec{
		Method:       http.MethodPost,
		Path:         "/items/{itemID}/questions",
		PathParams:   itemPath(itemID),
		Body:         Params{"question": question},
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	return c.Do(ctx, spec)
}

// AnswerQuestion answers a question. Only the seller can post answers.
func (c *Client) AnswerQuestion(ctx context.Context, itemID, questionID int64, answer string) (json.RawMessage, error) {
	spec := CallSpec{
		Method: http.MethodPut,
		Path:   "/items/{itemID}/question/{questionID}",
		PathParams: map[string]string{
			"itemID":     strconv.FormatInt(itemID, 10),
			"questionID": strconv.FormatInt(questionID, 10),
		},
		Body:         Params{"answer": answer},
		RequiresAuth: true,
		Accept:       []int{http.StatusOK, http.StatusCreated},
	}
	return c.Do(ctx, spec)
}
