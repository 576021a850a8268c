package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http/middleware"
	authsvc "github.com/Miraines/MoonyAndStarry/qr-service/internal/app/auth/service"
	qrsvc "github.com/Miraines/MoonyAndStarry/qr-service/internal/app/qrcode/service"
	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/qrcode/model"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type Handler struct {
	auth    authsvc.Service
	qr      qrsvc.Service
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewHandler(auth authsvc.Service, qr qrsvc.Service, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{auth: auth, qr: qr, metrics: m, log: log}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to QR Code Generator API"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) Token(c *gin.Context) {
	var body dto.TokenRequestDTO
	if err := c.ShouldBindWith(&body, binding.Form); err != nil {
		h.metrics.TokenRequests.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorDTO{Detail: err.Error()})
		return
	}
	h.log.Info("/auth/token",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Username)))),
	)

	tok, err := h.auth.Issue(c.Request.Context(), body)
	if err != nil {
		h.metrics.TokenRequests.WithLabelValues(resultOf(err)).Inc()
		h.handleError(c, "token", err)
		return
	}
	h.metrics.TokenRequests.WithLabelValues("ok").Inc()

	c.JSON(http.StatusOK, dto.TokenResponseDTO{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		ExpiresIn:   int(tok.AccessTTL.Seconds()),
	})
}

func (h *Handler) CreateQRCode(c *gin.Context) {
	var body dto.CreateQRCodeDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.metrics.QROperations.WithLabelValues("create", "bad_request").Inc()
		c.JSON(http.StatusBadRequest, dto.ErrorDTO{Detail: err.Error()})
		return
	}

	id, _ := middleware.IdentityFrom(c)
	h.log.Info("create qr code requested", zap.String("user", id.Username), zap.String("url", body.URL))

	d, err := h.qr.Create(c.Request.Context(), body)
	if err != nil {
		h.metrics.QROperations.WithLabelValues("create", resultOf(err)).Inc()
		h.handleError(c, "create", err)
		return
	}

	status, result := http.StatusCreated, "created"
	if !d.Created {
		status, result = http.StatusOK, "exists"
	}
	h.metrics.QROperations.WithLabelValues("create", result).Inc()
	c.JSON(status, toDTO(d))
}

func (h *Handler) ListQRCodes(c *gin.Context) {
	h.log.Info("listing qr codes")
	list, err := h.qr.List(c.Request.Context())
	if err != nil {
		h.metrics.QROperations.WithLabelValues("list", resultOf(err)).Inc()
		h.handleError(c, "list", err)
		return
	}
	h.metrics.QROperations.WithLabelValues("list", "ok").Inc()

	out := make([]dto.QRCodeResponseDTO, 0, len(list))
	for _, d := range list {
		out = append(out, toDTO(d))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteQRCode(c *gin.Context) {
	name := c.Param("filename")
	h.log.Info("deleting qr code", zap.String("filename", name))

	if err := h.qr.Delete(c.Request.Context(), name); err != nil {
		h.metrics.QROperations.WithLabelValues("delete", resultOf(err)).Inc()
		h.handleError(c, "delete", err)
		return
	}
	h.metrics.QROperations.WithLabelValues("delete", "ok").Inc()
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, op string, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, dto.ErrorDTO{Detail: err.Error()})
	case customErrors.IsInvalidCredentials(err):
		h.log.Warn("login rejected", zap.String("op", op))
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.ErrorDTO{Detail: "Incorrect username or password"})
	case customErrors.IsInvalidToken(err), customErrors.IsUnauthenticated(err):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.ErrorDTO{Detail: "Could not validate credentials"})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.ErrorDTO{Detail: "QR code not found"})
	case customErrors.IsGeneration(err):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorDTO{Detail: "QR code generation failed"})
	default:
		_ = c.Error(err)
		h.log.Error("unexpected error", zap.String("op", op), zap.Error(err), zap.Stack("stack"))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An unexpected error occurred."})
	}
}

func resultOf(err error) string {
	switch {
	case customErrors.IsInvalidArgument(err):
		return "bad_request"
	case customErrors.IsInvalidCredentials(err), customErrors.IsInvalidToken(err):
		return "unauthorized"
	case customErrors.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}

func toDTO(d model.Descriptor) dto.QRCodeResponseDTO {
	links := make([]dto.LinkDTO, 0, len(d.Links))
	for _, l := range d.Links {
		links = append(links, dto.LinkDTO{Rel: l.Rel, Href: l.Href, Action: l.Action, Type: l.Type})
	}
	return dto.QRCodeResponseDTO{Message: d.Message, QRCodeURL: d.QRCodeURL, Links: links}
}

