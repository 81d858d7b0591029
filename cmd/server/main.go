package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"trip-agent/internal/app"
	"trip-agent/internal/chat"
	"trip-agent/internal/geocode"
	"trip-agent/internal/httputil"
	"trip-agent/internal/itinerary"
	"trip-agent/internal/llm"
	"trip-agent/internal/logger"
	"trip-agent/internal/summarizer"
)

type itineraryRequest struct {
	Destination string   `json:"destination" validate:"required"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Interests   []string `json:"interests" validate:"required,min=1,dive,required"`
}

type saveRequest struct {
	Itinerary itinerary.Itinerary `json:"itinerary"`
	Filename  string              `json:"filename"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	digests := summarizer.New(deps.Posts, deps.LLM, logger.Component(deps.Log, "summarizer"), deps.Config.Subreddit, deps.Config.MaxPosts)
	builder := itinerary.NewBuilder(deps.LLM, deps.Geocoder, logger.Component(deps.Log, "builder"))
	conversation := chat.NewExtractor(deps.LLM, logger.Component(deps.Log, "chat"), deps.Config.ChatHistoryLimit)

	r := httputil.NewRouter(deps.Log)

	r.Post("/api/itinerary", itineraryHandler(deps, digests, builder))
	r.Post("/api/itinerary/save", saveHandler(deps))
	r.Post("/api/chat", chatHandler(deps, conversation))
	r.Post("/api/chat/extract", extractHandler(deps, conversation))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("trip agent listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server error", "err", err)
	}
}

// itineraryHandler runs the whole pipeline: community digest, generation,
// validation, coordinate enrichment.
func itineraryHandler(deps app.Deps, digests *summarizer.Summarizer, builder *itinerary.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itineraryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()
		digest := digests.Summarize(ctx, req.Destination, req.Interests)
		it, err := builder.Build(ctx, req.Destination, req.Duration, req.Interests, digest)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to generate itinerary", err, statusFor(err))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, it)
	}
}

func saveHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		// Only fully-formed itineraries are worth persisting.
		if err := itinerary.Validate(&req.Itinerary); err != nil {
			httputil.Fail(deps.Log, w, "invalid itinerary", err, http.StatusBadRequest)
			return
		}

		filename, err := itinerary.Export(&req.Itinerary, req.Filename)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to save itinerary", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"message":  "itinerary saved",
			"filename": filename,
		})
	}
}

func chatHandler(deps app.Deps, conversation *chat.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		reply, err := conversation.Send(r.Context(), req.Message)
		if err != nil {
			httputil.Fail(deps.Log, w, "chat failed", err, statusFor(err))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"reply": reply})
	}
}

func extractHandler(deps app.Deps, conversation *chat.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := conversation.ExtractTripDetails(r.Context())
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to extract trip details", err, statusFor(err))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, details)
	}
}

// statusFor maps pipeline failures to response codes: anything caused by an
// upstream dependency (model output, geocoding service, inference) is a bad
// gateway; the rest is internal.
func statusFor(err error) int {
	var (
		validationErr *itinerary.ValidationError
		extractionErr *chat.ExtractionError
		generationErr *llm.GenerationError
		serviceErr    *geocode.ServiceError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &extractionErr),
		errors.As(err, &generationErr),
		errors.As(err, &serviceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
