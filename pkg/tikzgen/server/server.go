package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/api"
	"kgeyst.com/tikzgen/pkg/tikzgen/domain"
)

// Server exposes the generation API over HTTP.
type Server struct {
	api        api.API
	rasterSize int
}

func New(a api.API, config *common.Config) *Server {
	return &Server{
		api:        a,
		rasterSize: config.GetIntOrDefault(domain.ConfigKeyRasterSize, domain.DefaultRasterSize),
	}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/generate", s.generate)
	r.Get("/documents", s.listDocuments)
	r.Delete("/documents", s.clearDocuments)
	return r
}

type generateRequest struct {
	Caption string `json:"caption"`
	// Model the checkpoint to generate with; optional, defaults to the loaded one. A single process
	// serves a single checkpoint (inference is serialized on the GPU), so other models are rejected.
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type documentResponse struct {
	ID         string    `json:"id"`
	Caption    string    `json:"caption"`
	Code       string    `json:"code"`
	HasContent bool      `json:"hasContent"`
	CreatedAt  time.Time `json:"createdAt"`
	// PNG the rasterized drawing, base64-encoded; only present when the document has content
	PNG string `json:"png,omitempty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var request generateRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if request.Caption == "" {
		http.Error(w, "caption is required", http.StatusBadRequest)
		return
	}
	if request.Model != "" && request.Model != s.api.ModelName() {
		http.Error(w, fmt.Sprintf("model \"%s\" is not loaded (this server runs \"%s\")", request.Model, s.api.ModelName()), http.StatusBadRequest)
		return
	}
	options := domain.DefaultGenerateOptions.WithTemperature(request.Temperature)
	document, err := s.api.GenerateWithOptions(r.Context(), request.Caption, options)
	if err != nil {
		if errors.Is(err, domain.ErrFailedToGenerate) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, s.toResponse(document, true))
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	latestCount, _ := strconv.Atoi(r.URL.Query().Get("count"))
	documents, err := s.api.History(latestCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	responses := make([]documentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, s.toResponse(document, false))
	}
	writeJSON(w, responses)
}

func (s *Server) clearDocuments(w http.ResponseWriter, r *http.Request) {
	err := s.api.ClearHistory()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toResponse(document *domain.TikzDocument, includeImage bool) documentResponse {
	response := documentResponse{
		ID:         document.ID,
		Caption:    document.Caption,
		Code:       document.Code,
		HasContent: document.HasContent(),
		CreatedAt:  document.CreatedAt,
	}
	if includeImage && document.HasContent() {
		img, err := document.Rasterize(s.rasterSize)
		if err == nil {
			var buf bytes.Buffer
			if png.Encode(&buf, img) == nil {
				response.PNG = base64.StdEncoding.EncodeToString(buf.Bytes())
			}
		}
	}
	return response
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
