package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/zinc-sig/relay/internal/upload"
)

type pageData struct {
	Flashes []string
	Result  *upload.Result
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.render(w, &pageData{Flashes: s.popFlashes(w, r)})
}

// handleUpload serves the browser flow: failures become a flash message and
// a redirect back to the form, success renders the link details inline.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.rejectTooLarge(w, r) {
		return
	}

	part, err := s.filePart(w, r)
	if err != nil {
		if isBodyCapError(err) {
			s.tooLarge(w)
			return
		}
		s.setFlash(w, "No file selected")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	defer part.Close()

	if part.FileName() == "" {
		s.setFlash(w, "No file selected")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	body := &bodyCapReader{r: part}
	result, err := s.provider.Upload(r.Context(), body, part.FileName(), -1)
	if body.capHit {
		s.tooLarge(w)
		return
	}
	if err != nil {
		s.logger.Error("upload relay unavailable", zap.Error(err))
		s.setFlash(w, "Upload failed: "+err.Error())
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if !result.Success {
		s.setFlash(w, result.Error)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.notify(result)
	s.render(w, &pageData{Result: result})
}

// handleAPIUpload serves programmatic uploads: the normalized result is
// returned as JSON with 200 on success, 400 on a missing or empty file,
// and 500 on relay failure.
func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.rejectTooLarge(w, r) {
		return
	}

	part, err := s.filePart(w, r)
	if err != nil {
		if isBodyCapError(err) {
			s.tooLarge(w)
			return
		}
		writeJSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer part.Close()

	if part.FileName() == "" {
		writeJSONError(w, http.StatusBadRequest, "Empty filename")
		return
	}

	body := &bodyCapReader{r: part}
	result, err := s.provider.Upload(r.Context(), body, part.FileName(), -1)
	if body.capHit {
		s.tooLarge(w)
		return
	}
	if err != nil {
		s.logger.Error("upload relay unavailable", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}

	s.notify(result)
	writeJSON(w, http.StatusOK, result)
}

// filePart streams the multipart body up to the "file" field without
// buffering the upload; other fields are drained and discarded. The body
// is capped as a backstop for clients that lie about Content-Length.
func (s *Server) filePart(w http.ResponseWriter, r *http.Request) (*multipart.Part, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			return nil, err // io.EOF when no file field is present
		}
		if part.FormName() == "file" {
			return part, nil
		}
		_ = part.Close()
	}
}

// rejectTooLarge enforces the size cap from the declared Content-Length,
// before any of the body is read. Chunked requests carry no length and are
// caught instead by the MaxBytesReader backstop in filePart.
func (s *Server) rejectTooLarge(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		s.tooLarge(w)
		return true
	}
	return false
}

// tooLarge writes the dedicated 413 response.
func (s *Server) tooLarge(w http.ResponseWriter) {
	writeJSONError(w, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("File too large (max %dMB)", s.cfg.MaxUploadMB()))
}

// bodyCapReader passes reads through while remembering whether the body
// cap was hit, so handlers can answer 413 even though providers flatten
// read errors into failure results.
type bodyCapReader struct {
	r      io.Reader
	capHit bool
}

func (b *bodyCapReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && isBodyCapError(err) {
		b.capHit = true
	}
	return n, err
}

func isBodyCapError(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// notify posts the result to the configured webhook without blocking the
// response. Delivery failures are logged, never surfaced to the uploader.
func (s *Server) notify(result *upload.Result) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.Notify(context.Background(), result); err != nil {
			s.logger.Warn("webhook notification failed", zap.Error(err))
		}
	}()
}

func (s *Server) render(w http.ResponseWriter, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, upload.Failure(msg))
}
