package handlers

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var attachmentMimeTypes = map[string]bool{
	"application/pdf":          true,
	"application/msword":       true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"image/jpeg": true,
	"image/png":  true,
}

var mimeExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

type signUploadRequest struct {
	FileName   string `json:"file_name" binding:"required"`
	MimeType   string `json:"mime_type" binding:"required"`
	Size       int64  `json:"size" binding:"required"`
	EntityType string `json:"entity_type" binding:"required"`
	EntityId   int    `json:"entity_id" binding:"required"`
}

// SignDocumentUpload issues a short-lived signed PUT URL. The object key
// namespaces uploads by owning entity, e.g. shipments/42/<uuid>.pdf.
func SignDocumentUpload(c *gin.Context) {
	var req signUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Size > maxUploadSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
		return
	}
	if !attachmentMimeTypes[req.MimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if ext == "" {
		ext = mimeExtensions[req.MimeType]
	}
	if ext == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file extension is required"})
		return
	}

	objectKey := path.Join(req.EntityType+"s", strconv.Itoa(req.EntityId), uuid.New().String()+ext)
	signed, err := utils.SignUpload(c.Request.Context(), objectKey, req.MimeType, 15*time.Minute)
	if err != nil {
		respondError(c, "upload", "SignDocumentUpload", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": signed.UploadURL,
		"method":     signed.Method,
		"headers":    signed.Headers,
		"object_key": signed.ObjectKey,
		"access_url": signed.AccessURL,
		"expires_at": signed.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

type completeUploadRequest struct {
	ObjectKey  string `json:"object_key" binding:"required"`
	MimeType   string `json:"mime_type" binding:"required"`
	Name       string `json:"name" binding:"required"`
	EntityType string `json:"entity_type" binding:"required"`
	EntityId   int    `json:"entity_id" binding:"required"`
	Size       int64  `json:"size"`
}

// CompleteDocumentUpload records the uploaded object as a document row.
// Images additionally get a 200px thumbnail rendered next to the original.
func CompleteDocumentUpload(c *gin.Context) {
	var req completeUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if strings.Contains(req.ObjectKey, "..") || strings.HasPrefix(req.ObjectKey, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid object key"})
		return
	}

	ctx := c.Request.Context()
	thumbnailURL := ""
	if imageMimeTypes[req.MimeType] {
		thumbnailKey, err := createThumbnail(ctx, req.ObjectKey)
		if err != nil {
			respondError(c, "upload", "CompleteDocumentUpload", err)
			return
		}
		thumbnailURL = utils.BuildObjectAccessURL(thumbnailKey)
	}

	document, err := models.CreateDocument(ctx, &models.NewDocument{
		EntityType:   req.EntityType,
		EntityId:     req.EntityId,
		Name:         req.Name,
		DocumentURL:  utils.BuildObjectAccessURL(req.ObjectKey),
		ThumbnailURL: thumbnailURL,
		ContentType:  req.MimeType,
		SizeBytes:    req.Size,
	})
	if err != nil {
		respondError(c, "upload", "CompleteDocumentUpload", err)
		return
	}
	c.JSON(http.StatusCreated, document)
}

func createThumbnail(ctx context.Context, objectKey string) (string, error) {
	data, err := utils.DownloadBytesFromGCS(ctx, objectKey, maxUploadSizeBytes)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}

	ext := path.Ext(objectKey)
	thumbnailKey := strings.TrimSuffix(objectKey, ext) + "_thumb.jpg"
	if err := utils.UploadBytesToGCS(ctx, thumbnailKey, buf.Bytes(), "image/jpeg"); err != nil {
		return "", err
	}
	return thumbnailKey, nil
}

func ListDocuments(c *gin.Context) {
	entityType := c.Query("entity_type")
	entityId := queryInt(c, "entity_id")
	if entityType == "" || entityId == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entity_type and entity_id are required"})
		return
	}

	documents, err := models.GetDocuments(c.Request.Context(), entityType, *entityId)
	if err != nil {
		respondError(c, "document", "ListDocuments", err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

func DeleteDocument(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	document, err := models.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, "document", "DeleteDocument", err)
		return
	}
	c.JSON(http.StatusOK, document)
}
