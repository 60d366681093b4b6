package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/galleria-dev/galleria/internal/media"
	"github.com/galleria-dev/galleria/internal/repository"
	"github.com/galleria-dev/galleria/internal/storage"
	"github.com/galleria-dev/galleria/internal/types"
	"github.com/galleria-dev/galleria/internal/utils"
	"github.com/gin-gonic/gin"
)

// MediaHandler serves uploads of one kind. maxBytes and allowedExts are
// deployment settings; images typically ship with no extension
// restriction, videos with an allow-list.
type MediaHandler struct {
	kind        string
	galleries   repository.GalleryRepository
	items       repository.MediaRepository
	store       storage.StorageDirectory
	maxBytes    int64
	allowedExts []string
}

func NewMediaHandler(
	kind string,
	galleries repository.GalleryRepository,
	items repository.MediaRepository,
	store storage.StorageDirectory,
	maxBytes int64,
	allowedExts []string,
) *MediaHandler {
	return &MediaHandler{
		kind:        kind,
		galleries:   galleries,
		items:       items,
		store:       store,
		maxBytes:    maxBytes,
		allowedExts: allowedExts,
	}
}

func (h *MediaHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.items.ListByUser(currentUser.ID)
	if err != nil {
		log.Printf("Failed to list items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(items) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No %ss found", h.kind)})
		return
	}

	responses := make([]types.MediaResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, mediaResponse(item))
	}

	ctx.JSON(http.StatusOK, responses)
}

func (h *MediaHandler) Get(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	item, err := h.items.GetByID(currentUser.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(h.kind)})
			return
		}
		log.Printf("Failed to fetch item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, mediaResponse(item))
}

// Upload accepts a multipart form with a gallery_id field and one or
// more files under "files".
func (h *MediaHandler) Upload(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	galleryIDValue := ctx.PostForm("gallery_id")
	galleryID, err := strconv.ParseUint(galleryIDValue, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"gallery_id": "Please provide a gallery id"}})
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"files": fmt.Sprintf("Please provide a %s", h.kind)}})
		return
	}

	gallery, err := h.galleries.GetByID(currentUser.ID, uint(galleryID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}
		log.Printf("Failed to fetch gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	count, err := h.items.CountByGallery(gallery.ID)
	if err != nil {
		log.Printf("Failed to count gallery items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := media.CheckCapacity(count, len(files)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot upload more than %d %ss in a gallery", media.MaxItemsPerGallery, h.kind),
		})
		return
	}

	for _, file := range files {
		if err := media.CheckExtension(file.Filename, h.allowedExts); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"errors": gin.H{"files": fmt.Sprintf("%s format is not supported", file.Filename)},
			})
			return
		}
		if err := media.CheckSize(file.Size, h.maxBytes); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"errors": gin.H{"files": fmt.Sprintf("%s exceeds the maximum size", file.Filename)},
			})
			return
		}
	}

	responses := make([]types.MediaResponse, 0, len(files))

	// The timestamp is captured per file, stepped past the previous
	// capture when the clock has not advanced a full microsecond, so a
	// multi-file batch gets pairwise-distinct names.
	var stamp time.Time
	for _, file := range files {
		stamp = media.NextTimestamp(stamp, time.Now())
		fileName := media.UniqueFilename(currentUser.Username, gallery.Name, file.Filename, stamp)
		relPath := storage.MediaPath(currentUser.Username, h.kind, gallery.Name, fileName)

		src, err := file.Open()
		if err != nil {
			log.Printf("Failed to open uploaded file: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		err = h.store.SaveFile(relPath, src)
		src.Close()
		if err != nil {
			log.Printf("Failed to save uploaded file: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		item, err := h.items.Create(gallery.ID, fileName, relPath)
		if err != nil {
			log.Printf("Failed to create item record: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		responses = append(responses, mediaResponse(item))
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%s uploaded successfully", titleKind(h.kind)),
		"data":    responses,
	})
}

func (h *MediaHandler) Delete(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	item, err := h.items.GetByID(currentUser.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage(h.kind)})
			return
		}
		log.Printf("Failed to fetch item: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.store.RemoveFile(item.FilePath); err != nil {
		log.Printf("Failed to remove file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.items.Delete(item.ID); err != nil {
		log.Printf("Failed to delete item record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", titleKind(h.kind))})
}

func notFoundMessage(kind string) string {
	return titleKind(kind) + " not found"
}

func titleKind(kind string) string {
	if kind == "" {
		return kind
	}
	return string(kind[0]-'a'+'A') + kind[1:]
}
