package models

import (
	"context"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

type AuditLog struct {
	ID            int       `gorm:"primary_key" json:"id"`
	UserId        int       `gorm:"index" json:"user_id"`
	Username      string    `gorm:"size:60" json:"username"`
	Action        string    `gorm:"size:20;not null" json:"action"`
	EntityType    string    `gorm:"index:idx_audit_entity;size:20;not null" json:"entity_type"`
	EntityId      int       `gorm:"index:idx_audit_entity;not null" json:"entity_id"`
	Payload       string    `gorm:"type:text" json:"payload"`
	CorrelationId string    `gorm:"size:40" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// RecordAudit writes an audit row and republishes it to the audit topic.
// Both writes are best-effort: an audit failure never fails the mutation
// that triggered it, it is only logged.
func RecordAudit(ctx context.Context, action, entityType string, entityId int, payload interface{}) {
	logger := config.GetLogger()

	data, err := utils.MarshalToJSON(payload)
	if err != nil {
		config.LogError(logger, "auditLog", "RecordAudit", "marshal payload", entityType, err)
		data = ""
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	username, _ := utils.GetUsernameFromContext(ctx)
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)

	row := AuditLog{
		UserId:        userId,
		Username:      username,
		Action:        action,
		EntityType:    entityType,
		EntityId:      entityId,
		Payload:       data,
		CorrelationId: correlationId,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		config.LogError(logger, "auditLog", "RecordAudit", "insert", entityType, err)
		return
	}

	if _, err := config.PublishAuditEvent(ctx, config.AuditEvent{
		UserId:        userId,
		Username:      username,
		Action:        action,
		EntityType:    entityType,
		EntityId:      entityId,
		OccurredAt:    time.Now(),
		Payload:       []byte(data),
		CorrelationId: correlationId,
	}); err != nil {
		config.LogError(logger, "auditLog", "RecordAudit", "publish", entityType, err)
	}
}

type AuditLogFilter struct {
	EntityType *string
	EntityId   *int
	UserId     *int
}

func GetAuditLogs(ctx context.Context, filter AuditLogFilter, limit int) ([]*AuditLog, error) {
	db := config.GetDB()
	var results []*AuditLog

	dbCtx := db.WithContext(ctx)
	if filter.EntityType != nil && *filter.EntityType != "" {
		dbCtx = dbCtx.Where("entity_type = ?", *filter.EntityType)
	}
	if filter.EntityId != nil && *filter.EntityId > 0 {
		dbCtx = dbCtx.Where("entity_id = ?", *filter.EntityId)
	}
	if filter.UserId != nil && *filter.UserId > 0 {
		dbCtx = dbCtx.Where("user_id = ?", *filter.UserId)
	}
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	if err := dbCtx.Order("id DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
