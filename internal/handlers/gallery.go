package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/galleria-dev/galleria/internal/repository"
	"github.com/galleria-dev/galleria/internal/storage"
	"github.com/galleria-dev/galleria/internal/types"
	"github.com/galleria-dev/galleria/internal/utils"
	"github.com/galleria-dev/galleria/internal/validation"
	"github.com/gin-gonic/gin"
)

type GalleryRequest struct {
	Name string `json:"name"`
}

// GalleryHandler serves one gallery kind; the image and video route
// groups each get their own instance wired to the matching
// repositories.
type GalleryHandler struct {
	kind      string
	galleries repository.GalleryRepository
	items     repository.MediaRepository
	store     storage.StorageDirectory
}

func NewGalleryHandler(
	kind string,
	galleries repository.GalleryRepository,
	items repository.MediaRepository,
	store storage.StorageDirectory,
) *GalleryHandler {
	return &GalleryHandler{
		kind:      kind,
		galleries: galleries,
		items:     items,
		store:     store,
	}
}

func (h *GalleryHandler) List(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	galleries, err := h.galleries.ListByUser(currentUser.ID)
	if err != nil {
		log.Printf("Failed to list galleries: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(galleries) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"message": "No galleries found"})
		return
	}

	responses := make([]types.GalleryResponse, 0, len(galleries))
	for _, gallery := range galleries {
		items, err := h.items.ListByGallery(gallery.ID)
		if err != nil {
			log.Printf("Failed to list gallery items: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		responses = append(responses, galleryResponse(gallery, items))
	}

	ctx.JSON(http.StatusOK, responses)
}

func (h *GalleryHandler) Get(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	gallery, err := h.galleries.GetByID(currentUser.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}
		log.Printf("Failed to fetch gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.items.ListByGallery(gallery.ID)
	if err != nil {
		log.Printf("Failed to list gallery items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, galleryResponse(gallery, items))
}

func (h *GalleryHandler) Create(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req GalleryRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validation.GalleryName(req.Name); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": msg}})
		return
	}

	taken, err := h.galleries.NameTaken(currentUser.ID, req.Name)
	if err != nil {
		log.Printf("Database error when checking gallery name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Gallery with this name already exists"})
		return
	}

	gallery, err := h.galleries.Create(currentUser.ID, req.Name)
	if err != nil {
		log.Printf("Failed to create gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Row first, then directory. A leftover directory is surfaced as a
	// conflict, and the row is rolled back so DB and disk stay in step.
	if err := h.store.CreateGalleryDir(currentUser.Username, h.kind, gallery.Name); err != nil {
		if delErr := h.galleries.Delete(gallery.ID); delErr != nil {
			log.Printf("Failed to roll back gallery record: %v", delErr)
		}
		if errors.Is(err, storage.ErrDirectoryExists) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A directory for this gallery already exists"})
			return
		}
		log.Printf("Failed to create gallery directory: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Gallery created successfully",
		"data":    galleryResponse(gallery, nil),
	})
}

func (h *GalleryHandler) Rename(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req GalleryRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if msg := validation.GalleryName(req.Name); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": msg}})
		return
	}

	gallery, err := h.galleries.GetByID(currentUser.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}
		log.Printf("Failed to fetch gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	taken, err := h.galleries.NameTaken(currentUser.ID, req.Name)
	if err != nil {
		log.Printf("Database error when checking gallery name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Gallery with this name already exists"})
		return
	}

	if err := h.galleries.Rename(gallery.ID, req.Name); err != nil {
		log.Printf("Failed to rename gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.store.RenameGalleryDir(currentUser.Username, h.kind, gallery.Name, req.Name); err != nil {
		log.Printf("Failed to rename gallery directory: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Every contained item's stored path must follow the new directory.
	items, err := h.items.ListByGallery(gallery.ID)
	if err != nil {
		log.Printf("Failed to list gallery items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, item := range items {
		newPath := storage.MediaPath(currentUser.Username, h.kind, req.Name, item.FileName)
		if err := h.items.UpdatePath(item.ID, newPath); err != nil {
			log.Printf("Failed to update item path: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	updated, err := h.galleries.GetByID(currentUser.ID, gallery.ID)
	if err != nil {
		log.Printf("Failed to fetch updated gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err = h.items.ListByGallery(gallery.ID)
	if err != nil {
		log.Printf("Failed to list gallery items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Gallery updated successfully",
		"data":    galleryResponse(updated, items),
	})
}

func (h *GalleryHandler) Delete(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(ctx)
	if !ok {
		return
	}

	gallery, err := h.galleries.GetByID(currentUser.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gallery not found"})
			return
		}
		log.Printf("Failed to fetch gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.store.RemoveGalleryDir(currentUser.Username, h.kind, gallery.Name); err != nil {
		log.Printf("Failed to remove gallery directory: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.galleries.Delete(gallery.ID); err != nil {
		log.Printf("Failed to delete gallery: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Gallery deleted successfully"})
}

func galleryResponse(gallery repository.GalleryRecord, items []repository.MediaRecord) types.GalleryResponse {
	itemResponses := make([]types.MediaResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, mediaResponse(item))
	}
	return types.GalleryResponse{
		ID:        gallery.ID,
		Name:      gallery.Name,
		Items:     itemResponses,
		CreatedAt: gallery.CreatedAt,
		UpdatedAt: gallery.UpdatedAt,
	}
}

func mediaResponse(item repository.MediaRecord) types.MediaResponse {
	return types.MediaResponse{
		ID:        item.ID,
		GalleryID: item.GalleryID,
		FileName:  item.FileName,
		FilePath:  item.FilePath,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
