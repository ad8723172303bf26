package api

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-chi/chi/v5"
	_ "golang.org/x/image/webp"
)

// allowedExtensions for battle map uploads.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// uploadField is the multipart form field carrying the image.
const uploadField = "battle_map"

func (h *Handlers) UploadBattleMap(w http.ResponseWriter, r *http.Request) {
	ev, _, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		h.writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.serverError(w, err, "read upload")
		return
	}

	// Extension alone is spoofable; the payload must decode as one of
	// the allowed image formats.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		h.serverError(w, err, "create upload dir")
		return
	}
	if err := os.WriteFile(filepath.Join(h.cfg.UploadDir, filename), data, 0o644); err != nil {
		h.serverError(w, err, "write upload")
		return
	}

	url := "/api/uploads/" + filename
	if err := h.store.SetEventImageURL(ev.ID, &url); err != nil {
		os.Remove(filepath.Join(h.cfg.UploadDir, filename))
		h.serverError(w, err, "record upload")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message":        "Battle map uploaded successfully",
		"battle_map_url": url,
	})
}

func (h *Handlers) DeleteBattleMap(w http.ResponseWriter, r *http.Request) {
	ev, _, ok := h.ownedEvent(w, r)
	if !ok {
		return
	}

	// Best effort: a missing file on disk is not an error.
	if ev.ImageURL != nil {
		parts := strings.Split(*ev.ImageURL, "/")
		filename := sanitizeFilename(parts[len(parts)-1])
		if filename != "" {
			os.Remove(filepath.Join(h.cfg.UploadDir, filename))
		}
	}

	if err := h.store.SetEventImageURL(ev.ID, nil); err != nil {
		h.serverError(w, err, "clear battle map")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Battle map deleted successfully"})
}

// ServeUpload returns an uploaded file by name. There is no ownership
// check; knowing a generated filename is enough to fetch it.
func (h *Handlers) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := sanitizeFilename(chi.URLParam(r, "filename"))
	if name == "" {
		h.writeError(w, http.StatusBadRequest, "Invalid filename")
		return
	}
	http.ServeFile(w, r, filepath.Join(h.cfg.UploadDir, name))
}

// sanitizeFilename keeps only characters safe for a flat upload
// directory, stripping any path structure the client sent.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.', c == '_', c == '-':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
