package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

// Document is an uploaded attachment stored in GCS and linked to its owner
// row polymorphically (shipment, vehicle, or driver).
type Document struct {
	ID           int       `gorm:"primary_key" json:"id"`
	EntityType   string    `gorm:"index:idx_documents_entity;size:20;not null" json:"entity_type"`
	EntityId     int       `gorm:"index:idx_documents_entity;not null" json:"entity_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	DocumentURL  string    `gorm:"size:255;not null" json:"document_url"`
	ThumbnailURL string    `gorm:"size:255" json:"thumbnail_url"`
	ContentType  string    `gorm:"size:60" json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedBy   int       `gorm:"index" json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

var documentEntityTypes = map[string]func(ctx context.Context, id int) error{
	"shipment": func(ctx context.Context, id int) error { return utils.ValidateResourceId[Shipment](ctx, id) },
	"vehicle":  func(ctx context.Context, id int) error { return utils.ValidateResourceId[Vehicle](ctx, id) },
	"driver":   func(ctx context.Context, id int) error { return utils.ValidateResourceId[Driver](ctx, id) },
}

type NewDocument struct {
	EntityType   string `json:"entity_type" binding:"required"`
	EntityId     int    `json:"entity_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	DocumentURL  string `json:"document_url" binding:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	ContentType  string `json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

func (input *NewDocument) validate(ctx context.Context) error {
	check, ok := documentEntityTypes[input.EntityType]
	if !ok {
		return ErrInvalidEnum("entity_type")
	}
	if err := check(ctx, input.EntityId); err != nil {
		return errors.New(input.EntityType + " not found")
	}
	return nil
}

// CreateDocument records upload metadata after the client has finished the
// signed PUT. The object must exist before the row is written.
func CreateDocument(ctx context.Context, input *NewDocument) (*Document, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}
	if err := utils.CheckDocumentExistInGCS(input.DocumentURL); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	document := Document{
		EntityType:   input.EntityType,
		EntityId:     input.EntityId,
		Name:         input.Name,
		DocumentURL:  input.DocumentURL,
		ThumbnailURL: input.ThumbnailURL,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
		UploadedBy:   userId,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// DeleteDocument removes the row and then the stored object best-effort; a
// missing object does not fail the delete.
func DeleteDocument(ctx context.Context, id int) (*Document, error) {
	document, err := utils.FetchModel[Document](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(document).Error; err != nil {
		return nil, err
	}

	logger := config.GetLogger()
	if key := utils.ExtractObjectKeyFromURL(document.DocumentURL); key != "" {
		if err := utils.DeleteFileFromGCS(ctx, key); err != nil {
			config.LogError(logger, "document", "DeleteDocument", "delete object", key, err)
		}
	}
	if key := utils.ExtractObjectKeyFromURL(document.ThumbnailURL); key != "" {
		if err := utils.DeleteFileFromGCS(ctx, key); err != nil {
			config.LogError(logger, "document", "DeleteDocument", "delete thumbnail", key, err)
		}
	}
	return document, nil
}

func GetDocuments(ctx context.Context, entityType string, entityId int) ([]*Document, error) {
	if _, ok := documentEntityTypes[entityType]; !ok {
		return nil, ErrInvalidEnum("entity_type")
	}

	db := config.GetDB()
	var results []*Document
	err := db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityId).
		Order("id DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
