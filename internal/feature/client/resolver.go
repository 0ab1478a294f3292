package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"salon-suite/internal/domain"
	"salon-suite/pkg/utils"
)

// 自动开户的固定初始口令（客户首次到店由前台代建账号）
const defaultClientPassword = "changeme123"

// Resolver 负责客户身份判重与建档。判重是对已取回集合的
// 单趟内存扫描，比较键只有归一化电话和归一化姓名两种。
type Resolver struct {
	repo domain.ClientRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewResolver(repo domain.ClientRepository, log *zap.Logger) *Resolver {
	return &Resolver{repo: repo, log: log, now: time.Now}
}

type CreateInput struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Address             string `json:"address"`
	City                string `json:"city"`
	DateOfBirth         string `json:"dateOfBirth"` // RFC3339 日期，可空
	Preferences         string `json:"preferences"` // 序列化 JSON，可空
	Notes               string `json:"notes"`
	PreferredLocationID string `json:"preferredLocationId"`
	Source              string `json:"source"`
}

// FindDuplicates 查重：先扫电话再扫姓名，各取首个命中；
// 同一客户两键都命中时只报一次，计为 phone。
// 两个入参都为空是调用方错误。
func (r *Resolver) FindDuplicates(ctx context.Context, name, phone string) ([]domain.DuplicateMatch, error) {
	normName := NormalizeName(name)
	normPhone := NormalizePhone(phone)
	if normName == "" && normPhone == "" {
		return nil, &ValidationError{Msg: "name or phone is required"}
	}

	all, err := r.repo.ListWithAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients for duplicate scan: %w", err)
	}

	var matches []domain.DuplicateMatch
	phoneHit := -1
	if normPhone != "" {
		for i := range all {
			if NormalizePhone(all[i].Phone) == normPhone {
				phoneHit = i
				all[i].Avatar = Avatar(all[i].Name)
				matches = append(matches, domain.DuplicateMatch{MatchType: "phone", Client: all[i]})
				break
			}
		}
	}
	if normName != "" {
		for i := range all {
			if NormalizeName(all[i].Name) == normName {
				if i != phoneHit { // 电话已命中同一人则姓名命中被抑制
					all[i].Avatar = Avatar(all[i].Name)
					matches = append(matches, domain.DuplicateMatch{MatchType: "name", Client: all[i]})
				}
				break
			}
		}
	}
	return matches, nil
}

// CreateClient 判重后建档：账号 + 客户档案 + 会员初始记录，
// 三条记录在仓储层同一事务内落库。任何命中都以 DuplicateError
// 终止，电话命中优先于姓名命中。
func (r *Resolver) CreateClient(ctx context.Context, in CreateInput) (*domain.Client, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" || phone == "" {
		return nil, &ValidationError{Msg: "name and phone are required"}
	}

	matches, err := r.FindDuplicates(ctx, name, phone)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		m := pickPriorityMatch(matches)
		return nil, &DuplicateError{Kind: m.MatchType, Existing: m.Client}
	}

	var dob *time.Time
	if s := strings.TrimSpace(in.DateOfBirth); s != "" {
		if t, perr := time.Parse("2006-01-02", s); perr == nil {
			dob = &t
		} else {
			return nil, &ValidationError{Msg: "dateOfBirth must be YYYY-MM-DD"}
		}
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		// 无邮箱时生成占位地址，保证账号唯一键可用
		email = fmt.Sprintf("client-%s@salon.local", NormalizePhone(phone))
	}
	source := in.Source
	if source == "" {
		source = "pos"
	}

	bundle := &domain.NewClientBundle{
		Account: domain.Account{
			ID:           utils.NewID(),
			Email:        email,
			Name:         name,
			PasswordHash: utils.HashPassword(defaultClientPassword),
			Role:         "client",
		},
	}
	bundle.Client = domain.Client{
		ID:                  utils.NewID(),
		UserID:              bundle.Account.ID,
		Name:                name,
		Phone:               phone,
		Email:               email,
		Address:             in.Address,
		City:                in.City,
		DateOfBirth:         dob,
		Preferences:         ParsePreferences(in.Preferences, r.log),
		Notes:               in.Notes,
		PreferredLocationID: in.PreferredLocationID,
		Source:              source,
		AutoRegistered:      true,
	}
	bundle.Loyalty = domain.Loyalty{
		ID:       utils.NewID(),
		ClientID: bundle.Client.ID,
		Points:   0,
		Tier:     "Bronze",
		Active:   true,
	}

	if err := r.repo.CreateBundle(ctx, bundle); err != nil {
		return nil, fmt.Errorf("create client bundle: %w", err)
	}

	view := bundle.Client
	now := r.now()
	view.CreatedAt = now
	view.UpdatedAt = now
	view.LoyaltyTier = bundle.Loyalty.Tier
	view.LoyaltyPoints = bundle.Loyalty.Points
	Compose(&view, now)
	r.log.Info("client created",
		zap.String("client_id", view.ID),
		zap.String("source", view.Source),
	)
	return &view, nil
}

// ListClients 列表视图：派生字段回填后返回
func (r *Resolver) ListClients(ctx context.Context, locationID string) ([]domain.Client, error) {
	views, err := r.repo.ListViews(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	now := r.now()
	for i := range views {
		Compose(&views[i], now)
	}
	return views, nil
}

// 电话命中优先；两键命中不同客户时也只回报电话那个
func pickPriorityMatch(matches []domain.DuplicateMatch) domain.DuplicateMatch {
	for _, m := range matches {
		if m.MatchType == "phone" {
			return m
		}
	}
	return matches[0]
}
