package repo

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"salon-suite/internal/domain"
	"salon-suite/internal/feature/account"
	"salon-suite/internal/feature/client"
)

type ClientRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewClientRepo(db *gorm.DB, log *zap.Logger) *ClientRepo {
	return &ClientRepo{db: db, log: log}
}

// ListWithAccounts 全量取回（含账号），保持插入自然序供首中即停的判重扫描
func (r *ClientRepo) ListWithAccounts(ctx context.Context) ([]domain.Client, error) {
	var rows []client.ClientModel
	if err := r.db.WithContext(ctx).Preload("Account").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(rows))
	for i := range rows {
		out = append(out, r.toView(&rows[i]))
	}
	return out, nil
}

type spendRow struct {
	ClientID  string
	Total     float64
	LastVisit time.Time
}

// ListViews 列表视图：带会员档案，叠加已完成交易的消费合计与末次到店
func (r *ClientRepo) ListViews(ctx context.Context, locationID string) ([]domain.Client, error) {
	q := r.db.WithContext(ctx).Preload("Account").Preload("Loyalty")
	if locationID != "" {
		q = q.Where("preferred_location_id = ?", locationID)
	}
	var rows []client.ClientModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	var spends []spendRow
	err := r.db.WithContext(ctx).
		Model(&client.TransactionModel{}).
		Select("client_id, SUM(amount) AS total, MAX(created_at) AS last_visit").
		Where("status = ?", "completed").
		Group("client_id").
		Scan(&spends).Error
	if err != nil {
		return nil, err
	}
	byClient := make(map[string]spendRow, len(spends))
	for _, s := range spends {
		byClient[s.ClientID] = s
	}

	out := make([]domain.Client, 0, len(rows))
	for i := range rows {
		v := r.toView(&rows[i])
		if l := rows[i].Loyalty; l != nil {
			v.LoyaltyTier = l.Tier
			v.LoyaltyPoints = l.Points
		}
		if s, ok := byClient[v.ID]; ok {
			v.TotalSpent = s.Total
			lv := s.LastVisit
			v.LastVisit = &lv
		}
		out = append(out, v)
	}
	return out, nil
}

// CreateBundle 账号 + 客户档案 + 会员档案，一个事务内全有或全无
func (r *ClientRepo) CreateBundle(ctx context.Context, b *domain.NewClientBundle) error {
	prefs, err := json.Marshal(b.Client.Preferences)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acc := account.AccountModel{
			ID:           b.Account.ID,
			Email:        b.Account.Email,
			Name:         b.Account.Name,
			PasswordHash: b.Account.PasswordHash,
			Role:         b.Account.Role,
		}
		if err := tx.Create(&acc).Error; err != nil {
			return err
		}
		cm := client.ClientModel{
			ID:                  b.Client.ID,
			UserID:              b.Client.UserID,
			Name:                b.Client.Name,
			Phone:               b.Client.Phone,
			Address:             b.Client.Address,
			City:                b.Client.City,
			DateOfBirth:         b.Client.DateOfBirth,
			Preferences:         string(prefs),
			Notes:               b.Client.Notes,
			PreferredLocationID: b.Client.PreferredLocationID,
			Source:              b.Client.Source,
			AutoRegistered:      b.Client.AutoRegistered,
		}
		if err := tx.Create(&cm).Error; err != nil {
			return err
		}
		loy := client.LoyaltyModel{
			ID:       b.Loyalty.ID,
			ClientID: b.Loyalty.ClientID,
			Points:   b.Loyalty.Points,
			Tier:     b.Loyalty.Tier,
			Active:   b.Loyalty.Active,
		}
		return tx.Create(&loy).Error
	})
}

func (r *ClientRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&client.ClientModel{}).Count(&n).Error
	return n, err
}

func (r *ClientRepo) toView(m *client.ClientModel) domain.Client {
	return domain.Client{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		Phone:               m.Phone,
		Email:               m.Account.Email,
		Address:             m.Address,
		City:                m.City,
		DateOfBirth:         m.DateOfBirth,
		Preferences:         client.ParsePreferences(m.Preferences, r.log),
		Notes:               m.Notes,
		PreferredLocationID: m.PreferredLocationID,
		Source:              m.Source,
		AutoRegistered:      m.AutoRegistered,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
