package credential

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shorts-script-api/internal/domain/entity"
	apperrors "shorts-script-api/pkg/errors"
)

// fakeCredentialRepo 内存凭证仓储，保持 ListActive 的排序契约
type fakeCredentialRepo struct {
	creds []*entity.Credential
}

func (f *fakeCredentialRepo) Create(_ context.Context, cred *entity.Credential) error {
	cred.CreatedAt = time.Now()
	f.creds = append(f.creds, cred)
	return nil
}

func (f *fakeCredentialRepo) Delete(_ context.Context, value string) (bool, error) {
	for i, c := range f.creds {
		if c.Value == value {
			f.creds = append(f.creds[:i], f.creds[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCredentialRepo) List(_ context.Context, kind entity.CredentialKind) ([]*entity.Credential, error) {
	var out []*entity.Credential
	for _, c := range f.creds {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCredentialRepo) ListActive(_ context.Context, kind entity.CredentialKind) ([]*entity.Credential, error) {
	var out []*entity.Credential
	for _, c := range f.creds {
		if c.Kind == kind && c.Active {
			// 与真实仓储一致：返回独立副本，不与存储记录共享指针
			cp := *c
			out = append(out, &cp)
		}
	}
	// usage 升序，同值保持入库顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsageCount < out[j].UsageCount
	})
	return out, nil
}

func (f *fakeCredentialRepo) CountActive(_ context.Context, kind entity.CredentialKind) (int64, error) {
	var n int64
	for _, c := range f.creds {
		if c.Kind == kind && c.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakeCredentialRepo) IncrementUsage(_ context.Context, value string) error {
	now := time.Now()
	for _, c := range f.creds {
		if c.Value == value {
			c.UsageCount++
			c.LastUsed = &now
			return nil
		}
	}
	return errors.New("credential not found")
}

func newTestRepo(usages ...int64) *fakeCredentialRepo {
	repo := &fakeCredentialRepo{}
	base := time.Now().Add(-time.Hour)
	for i, usage := range usages {
		repo.creds = append(repo.creds, &entity.Credential{
			Value:      "AIzaTestCredential000000000000" + string(rune('A'+i)),
			Kind:       entity.CredentialKindGemini,
			Active:     true,
			UsageCount: usage,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	return repo
}

func TestPoolSelectEmptySet(t *testing.T) {
	pool := NewPool(&fakeCredentialRepo{}, entity.CredentialKindGemini)

	cred, err := pool.Select(context.Background())
	assert.Nil(t, cred)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNoCredentials, appErr.Code)
}

func TestPoolSelectChargesLeastUsedFirst(t *testing.T) {
	// usage [5, 2, 2]：应选中同为 2 中先入库的那个，选中后计数变为 3
	repo := newTestRepo(5, 2, 2)
	pool := NewPool(repo, entity.CredentialKindGemini)

	cred, err := pool.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.creds[1].Value, cred.Value)
	assert.Equal(t, int64(3), cred.UsageCount)
	assert.Equal(t, int64(3), repo.creds[1].UsageCount)
	assert.NotNil(t, repo.creds[1].LastUsed)
}

func TestPoolSelectVisitsDistinctCredentials(t *testing.T) {
	repo := newTestRepo(0, 0, 0, 0)
	pool := NewPool(repo, entity.CredentialKindGemini)

	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		cred, err := pool.Select(context.Background())
		require.NoError(t, err)
		assert.False(t, seen[cred.Value], "credential %s selected twice within one round", cred.Masked())
		seen[cred.Value] = true
	}
	assert.Len(t, seen, 4)
}

func TestPoolSelectRefreshesListingAfterFullRound(t *testing.T) {
	repo := newTestRepo(0, 0)
	pool := NewPool(repo, entity.CredentialKindGemini)

	for i := 0; i < 2; i++ {
		_, err := pool.Select(context.Background())
		require.NoError(t, err)
	}

	// 一轮走完后重新查询活跃集：全部停用应得到 NoCredentials
	for _, c := range repo.creds {
		c.Active = false
	}
	_, err := pool.Select(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNoCredentials, appErr.Code)
}

func TestPoolActiveCount(t *testing.T) {
	repo := newTestRepo(1, 2)
	repo.creds[0].Active = false
	pool := NewPool(repo, entity.CredentialKindGemini)

	count, err := pool.ActiveCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
