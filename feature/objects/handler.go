package objects

import (
	"errors"
	"os"
	"path/filepath"

	"object-store/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for object operations.
type Handler struct {
	store    *Store
	logger   *zap.Logger
	readOnly bool
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, log *zap.Logger, readOnly bool) *Handler {
	return &Handler{store: store, logger: log, readOnly: readOnly}
}

// RegisterRoutes registers the object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Get("/", h.HandleList)
	group.Get("/exists/*", h.HandleExists)
	group.Get("/download/*", h.HandleDownload)
	group.Post("/copy", h.HandleCopy)
	group.Post("/", h.HandleUpload)
	group.Delete("/*", h.HandleDelete)
}

// callOpts builds the per-request bucket override from the query string.
func callOpts(c *fiber.Ctx) []CallOption {
	if bucket := c.Query("bucket"); bucket != "" {
		return []CallOption{WithBucket(bucket)}
	}
	return nil
}

// statusFor maps facade errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrAuthFailed), errors.Is(err, ErrUnreachable):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) rejectReadOnly(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "server is in read-only mode",
	})
}

// HandleUpload uploads an object.
// @Summary Upload Object
// @Description Uploads a file and stores it publicly readable under the given key. Returns the public URL.
// @Tags objects
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File content"
// @Param key formData string false "Destination key (defaults to the file name)"
// @Param bucket query string false "Bucket override"
// @Success 201 {object} map[string]string "Public URL"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Backend Failure"
// @Router /objects [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	if h.readOnly {
		return h.rejectReadOnly(c)
	}
	l := logger.WithRayID(h.logger, c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file field"})
	}

	key := c.FormValue("key")
	if key == "" {
		key = file.Filename
	}

	// Spool the upload to disk; the facade works from local paths.
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveFile(file, tmpPath); err != nil {
		l.Error("Failed to spool upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to persist upload"})
	}
	defer os.Remove(tmpPath)

	url, err := h.store.Upload(c.Context(), tmpPath, key, callOpts(c)...)
	if err != nil {
		l.Error("Upload failed", zap.String("key", key), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Object uploaded", zap.String("key", key))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key": key,
		"url": url,
	})
}

// HandleDownload streams object content.
// @Summary Download Object
// @Description Streams the object stored under the given key.
// @Tags objects
// @Produce octet-stream
// @Param key path string true "Object key"
// @Param bucket query string false "Bucket override"
// @Success 200 {file} binary "Object content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /objects/download/{key} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing object key"})
	}

	// GetObject reports missing keys lazily on first read, so stat first to
	// return a proper 404 and the right content type.
	info, err := h.store.Stat(c.Context(), key, callOpts(c)...)
	if err != nil {
		l.Warn("Download rejected", zap.String("key", key), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	rc, err := h.store.Download(c.Context(), key, callOpts(c)...)
	if err != nil {
		l.Error("Download failed", zap.String("key", key), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	}
	return c.SendStream(rc, int(info.Size))
}

// HandleExists checks object existence.
// @Summary Object Existence
// @Description Reports whether an object exists under the given key.
// @Tags objects
// @Produce json
// @Param key path string true "Object key"
// @Param bucket query string false "Bucket override"
// @Success 200 {object} map[string]bool "Existence result"
// @Failure 502 {object} map[string]string "Backend Failure"
// @Router /objects/exists/{key} [get]
func (h *Handler) HandleExists(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing object key"})
	}

	exists, err := h.store.Exists(c.Context(), key, callOpts(c)...)
	if err != nil {
		l.Error("Existence check failed", zap.String("key", key), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"exists": exists})
}

// HandleList lists objects under a prefix.
// @Summary List Objects
// @Description Lists objects whose keys start with the given prefix.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param bucket query string false "Bucket override"
// @Success 200 {object} map[string]interface{} "Object listing"
// @Failure 502 {object} map[string]string "Backend Failure"
// @Router /objects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	infos, err := h.store.List(c.Context(), c.Query("prefix"), callOpts(c)...)
	if err != nil {
		l.Error("Listing failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if infos == nil {
		infos = []ObjectInfo{}
	}
	return c.JSON(fiber.Map{
		"count":   len(infos),
		"objects": infos,
	})
}

// HandleDelete deletes an object.
// @Summary Delete Object
// @Description Deletes the object under the given key. Deleting an absent key succeeds.
// @Tags objects
// @Produce json
// @Param key path string true "Object key"
// @Param bucket query string false "Bucket override"
// @Param recursive query boolean false "Treat key as a prefix and delete everything under it"
// @Success 200 {object} map[string]interface{} "Delete result"
// @Failure 502 {object} map[string]string "Backend Failure"
// @Router /objects/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if h.readOnly {
		return h.rejectReadOnly(c)
	}
	l := logger.WithRayID(h.logger, c)

	key := c.Params("*")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing object key"})
	}

	if c.Query("recursive") == "true" {
		count, err := h.store.DeletePrefix(c.Context(), key, callOpts(c)...)
		if err != nil {
			l.Error("Prefix delete failed", zap.String("prefix", key), zap.Error(err))
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		l.Info("Prefix deleted", zap.String("prefix", key), zap.Int("count", count))
		return c.JSON(fiber.Map{"deleted": true, "count": count})
	}

	if err := h.store.Delete(c.Context(), key, callOpts(c)...); err != nil {
		l.Error("Delete failed", zap.String("key", key), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Object deleted", zap.String("key", key))
	return c.JSON(fiber.Map{"deleted": true})
}

type copyRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Bucket string `json:"bucket"`
}

// HandleCopy copies an object server-side.
// @Summary Copy Object
// @Description Copies an object from one key to another within the same bucket.
// @Tags objects
// @Accept json
// @Produce json
// @Param request body copyRequest true "Copy request"
// @Success 200 {object} map[string]bool "Copy result"
// @Failure 404 {object} map[string]string "Source Not Found"
// @Failure 502 {object} map[string]string "Backend Failure"
// @Router /objects/copy [post]
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	if h.readOnly {
		return h.rejectReadOnly(c)
	}
	l := logger.WithRayID(h.logger, c)

	var req copyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.From == "" || req.To == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "both from and to keys are required"})
	}

	var opts []CallOption
	if req.Bucket != "" {
		opts = append(opts, WithBucket(req.Bucket))
	} else {
		opts = callOpts(c)
	}

	if err := h.store.Copy(c.Context(), req.From, req.To, opts...); err != nil {
		l.Error("Copy failed", zap.String("from", req.From), zap.String("to", req.To), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Object copied", zap.String("from", req.From), zap.String("to", req.To))
	return c.JSON(fiber.Map{"copied": true})
}
