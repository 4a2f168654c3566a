package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
	"lexvault/internal/logging"
	"lexvault/internal/services/identity"
)

// KeyStatus is the read side of the key store.
type KeyStatus interface {
	Keys() (*identity.Keys, error)
	State() identity.State
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithConcealedFailures reports signature and decryption failures to clients
// under one generic kind.
func WithConcealedFailures(conceal bool) ServerOption {
	return func(s *Server) { s.conceal = conceal }
}

// WithServerLogger sets the logger for access and error lines.
func WithServerLogger(l *logging.Logger) ServerOption {
	return func(s *Server) { s.log = l }
}

// Server routes HTTP requests to the material service.
type Server struct {
	materials domain.MaterialService
	keys      KeyStatus
	log       *logging.Logger
	conceal   bool
	engine    *gin.Engine
}

// NewServer builds the router. Handler returns it for http.Server.
func NewServer(materials domain.MaterialService, keys KeyStatus, opts ...ServerOption) *Server {
	s := &Server{
		materials: materials,
		keys:      keys,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/healthz", s.health)
	r.GET("/keys", s.publicKeys)

	m := r.Group("/materials")
	m.POST("", s.upload)
	m.GET("", s.list)
	m.GET("/:id", s.get)
	m.GET("/:id/content", s.view)
	m.PUT("/:id/content", s.replace)
	m.PATCH("/:id", s.updateDetails)
	m.DELETE("/:id", s.delete)

	s.engine = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		s.log.Infof("%s %s remote=%s status=%d bytes=%d dur=%s",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(),
			c.Writer.Status(), size, time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) health(c *gin.Context) {
	state := s.keys.State()
	status := http.StatusOK
	if state != identity.StateReady {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, HealthResponse{Keys: state})
}

func (s *Server) publicKeys(c *gin.Context) {
	keys, err := s.keys.Keys()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, KeysResponse{
		SigningPublicKey:  crypto.B64(keys.OwnerPublic().VerifyingKey.Slice()),
		ExchangePublicKey: crypto.B64(keys.RecipientPublic().ExchangeKey.Slice()),
		Fingerprints:      keys.Fingerprints(),
	})
}

func (s *Server) upload(c *gin.Context) {
	var body UploadBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", domain.ErrInvalidMaterial, err))
		return
	}
	content, err := crypto.FromB64(body.Content)
	if err != nil {
		s.fail(c, fmt.Errorf("%w: content is not base64", domain.ErrInvalidMaterial))
		return
	}
	m, err := s.materials.Upload(c.Request.Context(), domain.UploadRequest{
		Name:        body.Name,
		Description: body.Description,
		Kind:        body.Kind,
		Content:     content,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, materialJSON(m, true))
}

func (s *Server) list(c *gin.Context) {
	materials, err := s.materials.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]MaterialJSON, 0, len(materials))
	for _, m := range materials {
		out = append(out, materialJSON(m, false))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) get(c *gin.Context) {
	m, err := s.materials.Get(c.Request.Context(), domain.MaterialID(c.Param("id")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, materialJSON(m, true))
}

func (s *Server) view(c *gin.Context) {
	v, err := s.materials.View(c.Request.Context(), domain.MaterialID(c.Param("id")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, v.MIMEType, v.Plaintext)
}

func (s *Server) replace(c *gin.Context) {
	var body ContentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", domain.ErrInvalidMaterial, err))
		return
	}
	content, err := crypto.FromB64(body.Content)
	if err != nil {
		s.fail(c, fmt.Errorf("%w: content is not base64", domain.ErrInvalidMaterial))
		return
	}
	m, err := s.materials.Replace(c.Request.Context(), domain.MaterialID(c.Param("id")), content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, materialJSON(m, true))
}

func (s *Server) updateDetails(c *gin.Context) {
	var body domain.DetailsUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", domain.ErrInvalidMaterial, err))
		return
	}
	m, err := s.materials.UpdateDetails(c.Request.Context(), domain.MaterialID(c.Param("id")), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, materialJSON(m, true))
}

func (s *Server) delete(c *gin.Context) {
	if err := s.materials.Delete(c.Request.Context(), domain.MaterialID(c.Param("id"))); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInitializationPending:
		return http.StatusServiceUnavailable
	case domain.KindSignatureInvalid, domain.KindDecryptionFailed, domain.KindOpenFailed:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(kind)
	if status >= http.StatusInternalServerError {
		s.log.Errorf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, kind, err)
	} else {
		s.log.Warnf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, kind, err)
	}

	msg := err.Error()
	switch kind {
	case domain.KindSignatureInvalid, domain.KindDecryptionFailed:
		if s.conceal {
			kind = domain.KindOpenFailed
		}
		msg = domain.ErrorForKind(kind).Error()
	case domain.KindCryptoUnavailable, domain.KindEncryptionFailed, domain.KindInitializationPending:
		msg = domain.ErrorForKind(kind).Error()
	case domain.KindInternal:
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Kind: kind})
}

// Error is a failed API call. It matches the domain sentinel for its kind
// under errors.Is.
type Error struct {
	Status  int
	Kind    domain.ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

func (e *Error) Unwrap() error { return domain.ErrorForKind(e.Kind) }

var _ error = (*Error)(nil)

// IsKind reports whether err is an API error of the given kind.
func IsKind(err error, kind domain.ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
