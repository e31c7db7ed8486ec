package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/commercekit/account/user/account"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormAccountRepository struct {
	DB *gorm.DB
}

func NewGormAccountRepository(d *gorm.DB) account.Repository {
	return &gormAccountRepository{DB: d}
}

func (g *gormAccountRepository) Create(ctx context.Context, newAccount account.Account) (*account.Account, error) {
	clone := newAccount
	if err := g.DB.WithContext(ctx).Create(&clone).Error; err != nil {
		return nil, err
	}
	return &clone, nil
}

func (g *gormAccountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var found account.Account
	if err := g.DB.WithContext(ctx).First(&found, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &found, nil
}

func (g *gormAccountRepository) GetByEmailOrPhone(ctx context.Context, identifier string) (*account.Account, error) {
	var found account.Account
	err := g.DB.WithContext(ctx).
		First(&found, "deleted_at IS NULL AND (LOWER(email) = LOWER(?) OR phone_number = ?)", identifier, identifier).
		Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &found, nil
}

func (g *gormAccountRepository) GetByExternalIdentity(ctx context.Context, provider string, uid string) (*account.Account, error) {
	var found account.Account
	err := g.DB.WithContext(ctx).
		First(&found, "deleted_at IS NULL AND provider = ? AND external_uid = ?", provider, uid).
		Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &found, nil
}

func (g *gormAccountRepository) FirstOrCreateExternal(ctx context.Context, newAccount account.Account) (*account.Account, bool, error) {
	clone := newAccount
	// The partial unique index on (provider, external_uid) arbitrates the
	// race; the losing insert becomes a no-op and we return the winner
	tx := g.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&clone)
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	if tx.RowsAffected > 0 {
		return &clone, false, nil
	}
	existing, err := g.GetByExternalIdentity(ctx, newAccount.Provider, newAccount.ExternalUID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Winner is not visible yet (or was deleted immediately);
			// signal the caller to retry
			return nil, false, account.ErrExternalLinkRaceLost
		}
		return nil, false, err
	}
	return existing, true, nil
}

func (g *gormAccountRepository) Update(ctx context.Context, updateAccount account.Account, expectedVersion uint) (*account.Account, error) {
	clone := updateAccount
	clone.Version = expectedVersion + 1
	tx := g.DB.WithContext(ctx).
		Model(&account.Account{}).
		Where("id = ? AND version = ?", clone.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(&clone)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		// Either the row is gone or its version moved on
		var count int64
		if err := g.DB.WithContext(ctx).Model(&account.Account{}).Where("id = ?", clone.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, account.ErrNotFound
		}
		return nil, account.ErrPersistenceConflict
	}
	return &clone, nil
}

func (g *gormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := g.DB.WithContext(ctx).Delete(&account.Account{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (g *gormAccountRepository) CountActiveWithRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := g.DB.WithContext(ctx).
		Model(&account.Account{}).
		Where("deleted_at IS NULL AND roles @> ?", fmt.Sprintf("[%q]", role)).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account.ErrNotFound
	}
	return err
}
