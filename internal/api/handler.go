package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"recipegen/internal/document"
	"recipegen/internal/recipe"
)

const inferenceTimeout = 45 * time.Second

// RecipePipeline defines the recipe generation operations the handlers need.
type RecipePipeline interface {
	FromIngredients(ctx context.Context, ingredients []string, lang string) (*recipe.Result, error)
	FromImage(ctx context.Context, img recipe.Image, lang string) (*recipe.Result, error)
}

// DocumentRenderer writes a recipe document to a file.
type DocumentRenderer interface {
	Render(data document.Data, destination string) error
}

// AnalysisStore defines the storage operations for image analyses.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a *recipe.Analysis) error
	GetAnalysis(ctx context.Context, imageHash string) (*recipe.Analysis, error)
}

// Handler handles HTTP requests.
type Handler struct {
	Pipeline  RecipePipeline
	Renderer  DocumentRenderer
	Store     AnalysisStore
	ExportDir string
	logger    *zap.Logger
}

// NewHandler creates a new Handler. store may be nil, in which case analyses
// are not recorded.
func NewHandler(pipeline RecipePipeline, renderer DocumentRenderer, store AnalysisStore, exportDir string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Pipeline: pipeline, Renderer: renderer, Store: store, ExportDir: exportDir, logger: logger}
}

// Register mounts the handler's routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)
	r.GET("/languages", h.Languages)
	r.POST("/generate", h.Generate)
	r.POST("/generate-from-image", h.GenerateFromImage)
	r.POST("/export-pdf", h.ExportPDF)
	r.GET("/analyses/:image_hash", h.GetAnalysis)
}

type generateRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
	Language    string `json:"language"`
}

// Generate handles recipe generation from a free-text ingredient list.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %s", err.Error())})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), inferenceTimeout)
	defer cancel()

	result, err := h.Pipeline.FromIngredients(ctx, recipe.ParseIngredients(req.Ingredients), req.Language)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": result.Recipe, "language": result.Language})
}

// GenerateFromImage handles image uploads: nutrition analysis, then a recipe
// from the detected ingredients.
func (h *Handler) GenerateFromImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("get form err: %s", err.Error())})
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[extension]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, JPG, and PNG images are allowed."})
		return
	}

	lang := c.PostForm("language")
	if lang == "" {
		lang = c.Query("language")
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("open file err: %s", err.Error())})
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("read image err: %s", err.Error())})
		return
	}
	if len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded image is empty"})
		return
	}

	imageHash := recipe.ImageHash(imageData)
	data, mimeType := prepareImage(imageData, extension)

	ctx, cancel := context.WithTimeout(c.Request.Context(), inferenceTimeout)
	defer cancel()

	h.logger.Info("generating recipe from image",
		zap.String("image_hash", imageHash), zap.String("mime_type", mimeType), zap.String("language", lang))

	result, err := h.Pipeline.FromImage(ctx, recipe.Image{MIMEType: mimeType, Data: data}, lang)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if h.Store != nil {
		saveErr := h.Store.SaveAnalysis(ctx, &recipe.Analysis{
			ImageHash: imageHash,
			Language:  result.Language,
			Nutrition: result.Nutrition,
		})
		if saveErr != nil {
			h.logger.Warn("failed to save image analysis", zap.String("image_hash", imageHash), zap.Error(saveErr))
		}
	}

	c.JSON(http.StatusOK, result)
}

type exportRequest struct {
	Recipe    string                  `json:"recipe" binding:"required"`
	Language  string                  `json:"language"`
	Title     string                  `json:"title"`
	Nutrition *recipe.NutritionRecord `json:"nutrition"`
}

// ExportPDF renders the posted recipe to a PDF and streams it back.
func (h *Handler) ExportPDF(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %s", err.Error())})
		return
	}

	if err := os.MkdirAll(h.ExportDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to create export directory: %s", err.Error())})
		return
	}

	lang := fileLanguage(req.Language)
	path := filepath.Join(h.ExportDir, fmt.Sprintf("recipe-%s-%s.pdf", uuid.NewString(), lang))

	err := h.Renderer.Render(document.Data{
		Recipe:    req.Recipe,
		Language:  req.Language,
		Title:     req.Title,
		Nutrition: req.Nutrition,
	}, path)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.FileAttachment(path, fmt.Sprintf("recipe-%s.pdf", lang))
}

// GetAnalysis returns a stored image analysis by image hash.
func (h *Handler) GetAnalysis(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis storage is not configured"})
		return
	}

	imageHash := c.Param("image_hash")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	analysis, err := h.Store.GetAnalysis(ctx, imageHash)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Languages lists the languages with localized prompts.
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": recipe.SupportedLanguages(), "default": recipe.DefaultLanguage})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StatusFor maps pipeline and renderer errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, recipe.ErrNoIngredients), errors.Is(err, recipe.ErrNoFoodDetected):
		return http.StatusBadRequest
	case errors.Is(err, recipe.ErrImageAnalysis):
		return http.StatusUnprocessableEntity
	case errors.Is(err, recipe.ErrInferenceFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Info("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// fileLanguage returns the base language used in export file names. Anything
// outside the supported set maps to the default so user input never reaches
// the path.
func fileLanguage(lang string) string {
	if !recipe.IsSupported(lang) {
		return recipe.DefaultLanguage
	}
	return recipe.NormalizeLanguage(lang)
}
