package service

import (
	"context"
	"testing"

	"github.com/fjod/chess_academy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveProgress_AppendsRecords(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	user := env.signUp(t, "u1")
	ctx := context.Background()

	_, err := env.svc.SaveProgress(ctx, user.ID, domain.ProgressPuzzle, domain.ProgressRecord{Number: 1, Solved: true})
	require.NoError(t, err)
	records, err := env.svc.SaveProgress(ctx, user.ID, domain.ProgressPuzzle, domain.ProgressRecord{Number: 2})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, testNow, records[1].CompletedAt)

	quiz, err := env.svc.Progress(ctx, user.ID, domain.ProgressQuiz)
	require.NoError(t, err)
	assert.Empty(t, quiz)

	puzzles, err := env.svc.Progress(ctx, user.ID, domain.ProgressPuzzle)
	require.NoError(t, err)
	assert.Len(t, puzzles, 2)
}

func TestProgress_UnknownType(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	_, err := env.svc.Progress(context.Background(), "u1", "chess960")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.svc.SaveProgress(context.Background(), "u1", "chess960", domain.ProgressRecord{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
