package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salon-suite/internal/domain"
)

type fakeRepo struct {
	clients []domain.Client
	bundles []*domain.NewClientBundle
	listErr error
	saveErr error
}

func (f *fakeRepo) ListWithAccounts(_ context.Context) ([]domain.Client, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Client, len(f.clients))
	copy(out, f.clients)
	return out, nil
}

func (f *fakeRepo) ListViews(_ context.Context, _ string) ([]domain.Client, error) {
	return f.ListWithAccounts(context.Background())
}

func (f *fakeRepo) CreateBundle(_ context.Context, b *domain.NewClientBundle) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.bundles = append(f.bundles, b)
	f.clients = append(f.clients, b.Client)
	return nil
}

func (f *fakeRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.clients)), nil
}

func newTestResolver(repo *fakeRepo) *Resolver {
	r := NewResolver(repo, zap.NewNop())
	r.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func seeded() *fakeRepo {
	return &fakeRepo{clients: []domain.Client{
		{ID: "c1", Name: "Maria Garcia", Phone: "+974 3071 2345"},
		{ID: "c2", Name: "John Smith", Phone: "5551234"},
		{ID: "c3", Name: "maria garcia", Phone: "999000"},
	}}
}

func TestFindDuplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("两键皆空报参数错", func(t *testing.T) {
		r := newTestResolver(seeded())
		_, err := r.FindDuplicates(ctx, "  ", "+- ()")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("电话命中书写无关", func(t *testing.T) {
		r := newTestResolver(seeded())
		got, err := r.FindDuplicates(ctx, "", "97430712345")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "phone", got[0].MatchType)
		assert.Equal(t, "c1", got[0].Client.ID)
		assert.Equal(t, "MG", got[0].Client.Avatar)
	})

	t.Run("姓名命中大小写无关", func(t *testing.T) {
		r := newTestResolver(seeded())
		got, err := r.FindDuplicates(ctx, "JOHN SMITH", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "name", got[0].MatchType)
		assert.Equal(t, "c2", got[0].Client.ID)
	})

	t.Run("同一客户双命中只报电话", func(t *testing.T) {
		r := newTestResolver(seeded())
		got, err := r.FindDuplicates(ctx, "Maria Garcia", "+97430712345")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "phone", got[0].MatchType)
		assert.Equal(t, "c1", got[0].Client.ID)
	})

	t.Run("不同客户双命中各报一次", func(t *testing.T) {
		r := newTestResolver(seeded())
		// 电话命中 c2，姓名首个命中 c1
		got, err := r.FindDuplicates(ctx, "Maria Garcia", "555-1234")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "phone", got[0].MatchType)
		assert.Equal(t, "c2", got[0].Client.ID)
		assert.Equal(t, "name", got[1].MatchType)
		assert.Equal(t, "c1", got[1].Client.ID)
	})

	t.Run("姓名只取首个命中", func(t *testing.T) {
		r := newTestResolver(seeded())
		got, err := r.FindDuplicates(ctx, "maria GARCIA", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c1", got[0].Client.ID) // c3 同名但在后
	})

	t.Run("无命中得空", func(t *testing.T) {
		r := newTestResolver(seeded())
		got, err := r.FindDuplicates(ctx, "Nobody", "000")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("仓储故障透传", func(t *testing.T) {
		r := newTestResolver(&fakeRepo{listErr: errors.New("db down")})
		_, err := r.FindDuplicates(ctx, "x", "")
		require.Error(t, err)
		var ve *ValidationError
		assert.False(t, errors.As(err, &ve))
	})
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()

	t.Run("缺姓名或电话拒绝", func(t *testing.T) {
		r := newTestResolver(seeded())
		var ve *ValidationError
		_, err := r.CreateClient(ctx, CreateInput{Name: "Ana"})
		require.ErrorAs(t, err, &ve)
		_, err = r.CreateClient(ctx, CreateInput{Phone: "123"})
		require.ErrorAs(t, err, &ve)
	})

	t.Run("电话撞车拒绝", func(t *testing.T) {
		r := newTestResolver(seeded())
		_, err := r.CreateClient(ctx, CreateInput{Name: "Someone New", Phone: "(974)3071-2345"})
		var de *DuplicateError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "phone", de.Kind)
		assert.Equal(t, "c1", de.Existing.ID)
		assert.Contains(t, de.Message(), "phone number")
	})

	t.Run("双命中以电话为准", func(t *testing.T) {
		r := newTestResolver(seeded())
		_, err := r.CreateClient(ctx, CreateInput{Name: "Maria Garcia", Phone: "555 1234"})
		var de *DuplicateError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "phone", de.Kind)
		assert.Equal(t, "c2", de.Existing.ID)
	})

	t.Run("成功建档三条记录成套", func(t *testing.T) {
		repo := seeded()
		r := newTestResolver(repo)
		got, err := r.CreateClient(ctx, CreateInput{
			Name:  "Ana Lopez",
			Phone: "777 8888",
			Email: "ana@example.com",
		})
		require.NoError(t, err)
		require.Len(t, repo.bundles, 1)

		b := repo.bundles[0]
		assert.NotEmpty(t, b.Account.ID)
		assert.Equal(t, "client", b.Account.Role)
		assert.NotEmpty(t, b.Account.PasswordHash)
		assert.NotEqual(t, defaultClientPassword, b.Account.PasswordHash)
		assert.Equal(t, b.Account.ID, b.Client.UserID)
		assert.Equal(t, b.Client.ID, b.Loyalty.ClientID)
		assert.Equal(t, 0, b.Loyalty.Points)
		assert.Equal(t, "Bronze", b.Loyalty.Tier)
		assert.True(t, b.Loyalty.Active)
		assert.True(t, b.Client.AutoRegistered)
		assert.Equal(t, "pos", b.Client.Source)

		assert.Equal(t, "AL", got.Avatar)
		assert.Equal(t, SegmentNew, got.Segment)
	})

	t.Run("无邮箱生成占位地址", func(t *testing.T) {
		repo := seeded()
		r := newTestResolver(repo)
		_, err := r.CreateClient(ctx, CreateInput{Name: "Ana Lopez", Phone: "+1 (777) 8888"})
		require.NoError(t, err)
		assert.Equal(t, "client-17778888@salon.local", repo.bundles[0].Account.Email)
	})

	t.Run("生日格式错误拒绝", func(t *testing.T) {
		r := newTestResolver(seeded())
		_, err := r.CreateClient(ctx, CreateInput{Name: "Ana", Phone: "777", DateOfBirth: "01/02/1990"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
	})

	t.Run("建档后同名再建报姓名冲突", func(t *testing.T) {
		repo := seeded()
		r := newTestResolver(repo)
		_, err := r.CreateClient(ctx, CreateInput{Name: "Ana Lopez", Phone: "777 8888"})
		require.NoError(t, err)

		_, err = r.CreateClient(ctx, CreateInput{Name: " ANA LOPEZ ", Phone: "999 111"})
		var de *DuplicateError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "name", de.Kind)
		assert.Contains(t, de.Message(), "name already exists")
	})
}

func TestListClients(t *testing.T) {
	repo := seeded()
	repo.clients[0].LoyaltyTier = "Gold"
	repo.clients[0].CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := newTestResolver(repo)

	got, err := r.ListClients(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "MG", got[0].Avatar)
	assert.Equal(t, SegmentVIP, got[0].Segment)
}
