package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/court"
	"github.com/bookacourt/backend/internal/courtimage"
	"github.com/bookacourt/backend/internal/user"
)

type Handler struct {
	service courtimage.Service
	courts  court.Service
}

func NewHandler(service courtimage.Service, courts court.Service) *Handler {
	return &Handler{service: service, courts: courts}
}

func (h *Handler) administers(c *gin.Context, courtID string) bool {
	crt, err := h.courts.GetByID(c.Request.Context(), courtID)
	if err != nil {
		if err == court.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get court"})
		}
		return false
	}

	if auth.GetUserRole(c) != string(user.RoleSuperUser) && !crt.IsAdministeredBy(auth.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not an owner or manager of this court"})
		return false
	}
	return true
}

// Upload accepts a multipart image and adds it to the court's gallery.
func (h *Handler) Upload(c *gin.Context) {
	courtID := c.Param("id")
	if !h.administers(c, courtID) {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	isPrimary, _ := strconv.ParseBool(c.PostForm("is_primary"))

	img, err := h.service.Upload(c.Request.Context(), header, courtimage.UploadRequest{
		CourtID:    courtID,
		UploadedBy: auth.GetUserID(c),
		Caption:    c.PostForm("caption"),
		IsPrimary:  isPrimary,
	})
	if err != nil {
		switch err {
		case courtimage.ErrNotAnImage, courtimage.ErrImageTooLarge:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

func (h *Handler) ListByCourt(c *gin.Context) {
	courtID := c.Param("id")
	if _, err := uuid.Parse(courtID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	images, err := h.service.ListByCourt(c.Request.Context(), courtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}

	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = NewImageResponse(img)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) SetPrimary(c *gin.Context) {
	courtID := c.Param("id")
	if !h.administers(c, courtID) {
		return
	}

	if err := h.service.SetPrimary(c.Request.Context(), courtID, c.Param("imageID")); err != nil {
		if err == courtimage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set primary image"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	imageID := c.Param("imageID")
	img, err := h.service.GetByID(c.Request.Context(), imageID)
	if err != nil {
		if err == courtimage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get image"})
		return
	}
	if !h.administers(c, img.CourtID) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), imageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Download(c *gin.Context) {
	rc, img, err := h.service.Download(c.Request.Context(), c.Param("imageID"))
	if err != nil {
		if err == courtimage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to download image"})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", img.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) DownloadThumbnail(c *gin.Context) {
	rc, _, err := h.service.DownloadThumbnail(c.Request.Context(), c.Param("imageID"))
	if err != nil {
		if err == courtimage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "thumbnail not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to download thumbnail"})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
