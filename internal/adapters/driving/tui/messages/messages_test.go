package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/adcheck/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewReview, "review"},
		{ViewKeywords, "keywords"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestReviewCompleted_Fields(t *testing.T) {
	result := &domain.ReviewResult{FileName: "검수결과_a.docx"}
	msg := ReviewCompleted{Path: "a.txt", OutputPath: "out/검수결과_a.docx", Result: result}

	assert.Equal(t, "a.txt", msg.Path)
	assert.Same(t, result, msg.Result)
	assert.NoError(t, msg.Err)

	failed := ReviewCompleted{Path: "b.txt", Err: errors.New("boom")}
	assert.Nil(t, failed.Result)
	assert.Error(t, failed.Err)
}
