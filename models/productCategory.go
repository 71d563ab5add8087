package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"gorm.io/gorm"
)

type ProductCategory struct {
	ID               int       `gorm:"primary_key" json:"id"`
	Name             string    `gorm:"uniqueIndex;size:100;not null" json:"name" binding:"required"`
	ParentCategoryId int       `gorm:"index;not null" json:"parent_category_id"`
	IsActive         *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProductCategory struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryId int    `json:"parent_category_id"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProductCategory) validate(ctx context.Context, id int) error {
	if id > 0 && id == input.ParentCategoryId {
		return errors.New("self-parent not allowed")
	}
	if err := utils.ValidateUnique[ProductCategory](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if input.ParentCategoryId > 0 {
		if err := utils.ValidateResourceId[ProductCategory](ctx, input.ParentCategoryId); err != nil {
			return errors.New("parent category not found")
		}
	}
	return nil
}

func CreateProductCategory(ctx context.Context, input *NewProductCategory) (*ProductCategory, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	category := ProductCategory{
		Name:             input.Name,
		ParentCategoryId: input.ParentCategoryId,
		IsActive:         utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ProductCategory]()
	return &category, nil
}

func UpdateProductCategory(ctx context.Context, id int, input *NewProductCategory) (*ProductCategory, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	category, err := utils.FetchModel[ProductCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(category).Updates(map[string]interface{}{
		"Name":             input.Name,
		"ParentCategoryId": input.ParentCategoryId,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ProductCategory]()
	return category, nil
}

func DeleteProductCategory(ctx context.Context, id int) (*ProductCategory, error) {
	category, err := utils.FetchModel[ProductCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[ProductCategory](ctx, "parent_category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("category has children")
	}
	count, err = utils.ResourceCountWhere[Product](ctx, "category_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("category", "products")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(category).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ProductCategory]()
	return category, nil
}

func GetProductCategory(ctx context.Context, id int) (*ProductCategory, error) {
	return utils.FetchModel[ProductCategory](ctx, id)
}

func GetProductCategories(ctx context.Context, name *string) ([]*ProductCategory, error) {
	if name == nil || *name == "" {
		if cached, err := utils.RetrieveRedisList[ProductCategory](); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	db := config.GetDB()
	var results []*ProductCategory
	dbCtx := db.WithContext(ctx)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	if name == nil || *name == "" {
		utils.StoreRedisList[ProductCategory](results)
	}
	return results, nil
}

func ToggleActiveProductCategory(ctx context.Context, id int, isActive bool) (*ProductCategory, error) {
	category, err := utils.FetchModel[ProductCategory](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Model(category).Update("is_active", isActive).Error; err != nil {
			return err
		}
		return toggleChildrenCategories(ctx, tx, id, isActive)
	})
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ProductCategory]()
	return category, nil
}

// toggle children of the parent recursively, parent is assumed to have toggled
func toggleChildrenCategories(ctx context.Context, tx *gorm.DB, parentId int, isActive bool) error {
	var childrenIds []int
	if err := tx.WithContext(ctx).
		Model(&ProductCategory{}).
		Where("parent_category_id = ?", parentId).
		Select("id").
		Scan(&childrenIds).Error; err != nil {
		return err
	}
	if len(childrenIds) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Model(&ProductCategory{}).
		Where("id IN ?", childrenIds).
		Update("is_active", isActive).Error; err != nil {
		return err
	}

	for _, childId := range childrenIds {
		if err := toggleChildrenCategories(ctx, tx, childId, isActive); err != nil {
			return err
		}
	}
	return nil
}
