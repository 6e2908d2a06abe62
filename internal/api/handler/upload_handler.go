package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/api/metrics"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

// UploadHandler accepts multipart attachment uploads and streams stored
// files back out.
type UploadHandler struct {
	uploadService ports.UploadService
	store         ports.UploadStore
}

func NewUploadHandler(uploadService ports.UploadService, store ports.UploadStore) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, store: store}
}

// Upload stores all files in the multipart "files" field. Per-file failures
// land in the errors list without failing the batch.
//
// @Summary      Upload attachments
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Attachment files"
// @Success      200    {object}  ports.UploadResult
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /api/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	ownerID, err := ctxProfileID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files supplied")
	}

	files := make([]ports.UploadFile, 0, len(headers))
	opened := make([]io.Closer, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file: "+fh.Filename)
		}
		opened = append(opened, src)
		files = append(files, ports.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			SizeBytes:   fh.Size,
			Content:     src,
		})
	}

	result := h.uploadService.Store(c.Request().Context(), ownerID, files)

	metrics.UploadsTotal.WithLabelValues("ok").Add(float64(len(result.Uploaded)))
	metrics.UploadsTotal.WithLabelValues("failed").Add(float64(len(result.Errors)))
	return c.JSON(http.StatusOK, result)
}

// Download streams a stored attachment back to the client.
//
// @Summary      Download an attachment
// @Tags         uploads
// @Produce      octet-stream
// @Param        id   path  string  true  "File id"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /api/uploads/{id} [get]
func (h *UploadHandler) Download(c echo.Context) error {
	file, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer file.Content.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if file.SizeBytes > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(file.SizeBytes, 10))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+file.Name+`"`)
	return c.Stream(http.StatusOK, contentType, file.Content)
}
