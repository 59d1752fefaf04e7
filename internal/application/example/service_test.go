package example

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts-script-api/internal/domain/entity"
	apperrors "shorts-script-api/pkg/errors"
)

type fakeExampleRepo struct {
	examples []*entity.ReferenceExample
}

func (f *fakeExampleRepo) Create(_ context.Context, ex *entity.ReferenceExample) error {
	f.examples = append(f.examples, ex)
	return nil
}

func (f *fakeExampleRepo) ListActive(_ context.Context) ([]*entity.ReferenceExample, error) {
	return f.examples, nil
}

func (f *fakeExampleRepo) ListRecent(_ context.Context, limit int) ([]*entity.ReferenceExample, error) {
	if len(f.examples) > limit {
		return f.examples[len(f.examples)-limit:], nil
	}
	return f.examples, nil
}

func TestAddRejectsContentBelowMinimum(t *testing.T) {
	svc := NewService(&fakeExampleRepo{})

	_, err := svc.Add(context.Background(), strings.Repeat("क", 49), "admin")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeExampleTooShort, appErr.Code)
}

func TestAddAcceptsContentAtExactMinimum(t *testing.T) {
	repo := &fakeExampleRepo{}
	svc := NewService(repo)

	ex, err := svc.Add(context.Background(), strings.Repeat("क", 50), "admin")
	require.NoError(t, err)
	assert.True(t, ex.Active)
	assert.Equal(t, "admin", ex.AddedBy)
	assert.Len(t, repo.examples, 1)
}

func TestAddTrimsWhitespaceBeforeValidation(t *testing.T) {
	svc := NewService(&fakeExampleRepo{})

	// 49 个字符加空白填充仍应拒绝
	_, err := svc.Add(context.Background(), "  "+strings.Repeat("क", 49)+"  ", "admin")
	require.Error(t, err)
}
