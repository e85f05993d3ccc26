package handlers

import (
	"log"
	"net/http"

	"github.com/AnshRaj112/blogverse-backend/internal/services"
)

const maxImageUploadSize = 10 << 20 // 10MB

// UploadImage handles POST /upload-image (gated). The returned URL goes into blogImage.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadSize+(1<<20))
	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file provided")
		return
	}
	file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = services.DefaultImageFolder
	}

	url, err := h.uploader.UploadImage(r.Context(), fileHeader, folder)
	if err != nil {
		log.Printf("upload image: %v", err)
		writeMessage(w, http.StatusBadGateway, "Failed to upload image")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, URL: url})
}
