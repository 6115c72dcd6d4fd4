package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/portbound/go-filedb/internal/models"
	"github.com/portbound/go-filedb/internal/services"
)

// maxUploadBytes caps how much of a multipart body is held in memory
// before the rest spills to temp files.
const maxUploadBytes = 32 << 20

type FileHandler struct {
	fileService *services.FileService
	logger      *slog.Logger
}

func NewFileHandler(fs *services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{fileService: fs, logger: logger}
}

func (h *FileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /files", h.handleStoreFile)
	mux.HandleFunc("GET /files", h.handleGetAllFiles)
	mux.HandleFunc("GET /files/{id}", h.handleGetFile)
	mux.HandleFunc("PUT /files/{id}", h.handleUpdateFile)
	mux.HandleFunc("DELETE /files/{id}", h.handleDeleteFile)
}

// FileResponse is the metadata view of a record returned by the JSON
// endpoints; the payload itself is served by GET /files/{id}.
type FileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int    `json:"size"`
	URI  string `json:"uri"`
}

func newFileResponse(file *models.File) FileResponse {
	return FileResponse{
		ID:   file.ID.String(),
		Name: file.Name,
		Type: file.Type,
		Size: len(file.Data),
		URI:  fmt.Sprintf("/files/%s", file.ID),
	}
}

func (h *FileHandler) handleStoreFile(w http.ResponseWriter, r *http.Request) {
	name, contentType, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.Store(r.Context(), name, contentType, data)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, newFileResponse(file))
}

func (h *FileHandler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.fileService.GetFile(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	contentType := file.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(file.Data); err != nil {
		h.logger.Error("failed to write file to client", "id", id, "err", err)
	}
}

func (h *FileHandler) handleGetAllFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.GetAllFiles(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := []FileResponse{}
	for file := range files {
		resp = append(resp, newFileResponse(file))
	}

	WriteJSON(w, http.StatusOK, resp)
}

func (h *FileHandler) handleUpdateFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, contentType, data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), id, name, contentType, data)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newFileResponse(file))
}

func (h *FileHandler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusNoContent, nil)
}

// readUpload pulls the "file" part out of a multipart request. On
// failure it writes the error response itself and reports ok=false.
func (h *FileHandler) readUpload(w http.ResponseWriter, r *http.Request) (name string, contentType string, data []byte, ok bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return "", "", nil, false
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return "", "", nil, false
	}
	defer part.Close()

	data, err = io.ReadAll(part)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return "", "", nil, false
	}

	return header.Filename, header.Header.Get("Content-Type"), data, true
}

func (h *FileHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", "err", err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
