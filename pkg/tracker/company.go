package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

type CompanyInput struct {
	Name        string
	LogoURL     string
	ContactInfo string
}

func (in CompanyInput) validate() *ValidationError {
	verr := &ValidationError{}
	requireText(verr, "name", in.Name, 100)
	if utf8.RuneCountInString(in.LogoURL) > 255 {
		verr.Add("logo_url", "must be at most 255 characters")
	}
	return verr
}

// upsertCompany keeps exactly one company row: the first call inserts, later calls overwrite it.
func (t *Tracker) upsertCompany(ctx context.Context, input CompanyInput) (*models.Company, error) {
	logger := t.logger(common.LoggerCategoryCompany)

	if verr := input.validate(); verr.HasErrors() {
		return nil, verr
	}

	var company models.Company
	err := t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := t.now()
		err := tx.Order("id asc").First(&company).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			company = models.Company{CreatedAt: now}
		case err != nil:
			return fmt.Errorf("load company: %w", err)
		}

		company.Name = strings.TrimSpace(input.Name)
		company.LogoURL = strings.TrimSpace(input.LogoURL)
		company.ContactInfo = input.ContactInfo
		company.UpdatedAt = now
		if err := tx.Save(&company).Error; err != nil {
			return fmt.Errorf("save company: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Company saved", zap.Uint("id", company.ID), zap.String("name", company.Name))
	return &company, nil
}

func (t *Tracker) getCompany(ctx context.Context) (*models.Company, error) {
	var company models.Company
	if err := t.Db.Conn.WithContext(ctx).Order("id asc").First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "company"}
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &company, nil
}

type ICompanyImpl struct {
	tracker *Tracker
}

func (ic *ICompanyImpl) UpsertCompany(ctx context.Context, input CompanyInput) (*models.Company, error) {
	return ic.tracker.upsertCompany(ctx, input)
}

func (ic *ICompanyImpl) GetCompany(ctx context.Context) (*models.Company, error) {
	return ic.tracker.getCompany(ctx)
}

func (t *Tracker) GetICompany() ICompany {
	return &ICompanyImpl{tracker: t}
}
