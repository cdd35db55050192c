package service

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/internal/metrics"
	apperrors "github.com/angelsmp/discord-whitelist/pkg/app/errors"
	apphttp "github.com/angelsmp/discord-whitelist/pkg/app/http"
	"github.com/angelsmp/discord-whitelist/pkg/auth"
	"github.com/angelsmp/discord-whitelist/pkg/interaction"
	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

// maxInteractionBody bounds the request body; interaction payloads are small
const maxInteractionBody = 1 << 20

// Handler terminates the interactions webhook
type Handler struct {
	verifier *auth.Verifier
	svc      Service
	logger   *zap.Logger
}

// NewHandler creates a new interactions webhook handler
func NewHandler(verifier *auth.Verifier, svc Service, logger *zap.Logger) *Handler {
	return &Handler{
		verifier: verifier,
		svc:      svc,
		logger:   logger,
	}
}

// RegisterRoutes mounts the interactions endpoint on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/interactions", apphttp.HandleError(h.interactions))
}

// interactions handles one webhook delivery. Signature verification runs
// over the raw body before any parsing; a request that fails it gets a 401
// regardless of content. Unknown interaction types and commands get an empty
// 400 so the platform marks the delivery as failed.
func (h *Handler) interactions(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInteractionBody))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	signature := r.Header.Get("X-Signature-Ed25519")
	timestamp := r.Header.Get("X-Signature-Timestamp")
	if !h.verifier.Verify(timestamp, body, signature) {
		metrics.InteractionRejections.WithLabelValues("bad_signature").Inc()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid request signature"))
		return nil
	}

	var in interaction.Interaction
	if err := json.Unmarshal(body, &in); err != nil {
		metrics.InteractionRejections.WithLabelValues("malformed_payload").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}

	switch in.Type {
	case interaction.TypePing:
		return h.respond(w, interaction.Pong())
	case interaction.TypeApplicationCommand:
		return h.command(w, r, &in)
	default:
		metrics.InteractionRejections.WithLabelValues("unknown_type").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request, in *interaction.Interaction) error {
	if in.Data == nil || in.Data.Name != "whitelist" {
		metrics.InteractionRejections.WithLabelValues("unknown_command").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}

	opts, err := interaction.WhitelistCommandOptions(in.Data)
	if err != nil || in.Member == nil {
		metrics.InteractionRejections.WithLabelValues("malformed_payload").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}

	reply, err := h.svc.Whitelist(r.Context(), &whitelist.Request{
		DiscordID: in.Member.User.ID,
		JoinedAt:  in.Member.JoinedAt,
		Username:  opts.Username,
		Platform:  opts.Platform,
	})
	if err != nil {
		return apperrors.GeneralError(err)
	}

	return h.respond(w, interaction.Message(reply.Message, reply.Ephemeral))
}

func (h *Handler) respond(w http.ResponseWriter, resp *interaction.Response) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp)
}
