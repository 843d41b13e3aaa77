package sandbox

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/errors"
	"github.com/kbukum/paykit/logger"
	"github.com/kbukum/paykit/observability"
	"github.com/kbukum/paykit/sandbox/middleware"
	"github.com/kbukum/paykit/validation"
	"github.com/kbukum/paykit/version"
)

const (
	facadeInvoice = "pos/invoice"
	facadeBill    = "pos/bill"

	invoiceLifetime = 15 * time.Minute
)

// Handler serves the payment API from a Store.
type Handler struct {
	engine  *gin.Engine
	handler http.Handler
	store   *Store
	cfg     Config
	log     *logger.Logger
}

// NewHandler builds the routes and middleware of the sandbox. cfg is
// defaulted; a nil log discards everything. gin's process-wide mode is left
// to the caller.
func NewHandler(cfg Config, store *Store, log *logger.Logger) *Handler {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("sandbox")
	if store == nil {
		store = NewStore(cfg.Rates)
	}

	engine := gin.New()

	h := &Handler{
		engine: engine,
		store:  store,
		cfg:    cfg,
		log:    log,
	}
	h.routes()
	h.handler = middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.BodySizeLimit(cfg.MaxBodySize),
		middleware.RequestLogger(log),
	)(engine)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// Store returns the store behind the handler.
func (h *Handler) Store() *Store { return h.store }

func (h *Handler) routes() {
	h.engine.POST("/invoices", h.createInvoice)
	h.engine.GET("/invoices/:id", h.requireQueryToken, h.getInvoice)
	h.engine.POST("/bills", h.createBill)
	h.engine.GET("/bills/:id", h.requireQueryToken, h.getBill)
	h.engine.POST("/bills/:id/deliveries", h.deliverBill)
	h.engine.GET("/rates", h.getRates)
	h.engine.GET("/health", h.health)
	h.engine.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not found")
	})
}

// tokenAccepted reports whether token may use the sandbox.
func (h *Handler) tokenAccepted(token string) bool {
	if h.cfg.Token == "" {
		return token != ""
	}
	return token == h.cfg.Token
}

func (h *Handler) requireQueryToken(c *gin.Context) {
	if !h.tokenAccepted(c.Query("token")) {
		respondAppError(c, http.StatusUnauthorized, errors.Service(CodeInvalidToken, "Invalid token"))
		return
	}
	c.Next()
}

func (h *Handler) publicURL(kind, id string) string {
	return strings.TrimRight(h.cfg.PublicURL, "/") + "/" + kind + "?id=" + id
}

func (h *Handler) createInvoice(c *gin.Context) {
	var inv bitpay.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !h.tokenAccepted(inv.Token) {
		respondAppError(c, http.StatusUnauthorized, errors.Service(CodeInvalidToken, "Invalid token"))
		return
	}
	if err := validation.Validate(inv); err != nil {
		respondInvalid(c, err)
		return
	}

	now := time.Now()
	inv.ID = newID()
	inv.URL = h.publicURL("invoice", inv.ID)
	inv.Status = bitpay.InvoiceStatusNew
	inv.Token = uuid.NewString()
	inv.InvoiceTime = now.UnixMilli()
	inv.ExpirationTime = now.Add(invoiceLifetime).UnixMilli()
	inv.CurrentTime = now.UnixMilli()

	stored := h.store.PutInvoice(inv)
	h.log.WithContext(c.Request.Context()).Info("invoice created", logger.Fields(
		"id", stored.ID,
		"price", stored.Price,
		"currency", stored.Currency,
		"guid", stored.GUID,
	))
	respondOK(c, facadeInvoice, stored)
}

func (h *Handler) getInvoice(c *gin.Context) {
	inv, ok := h.store.Invoice(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, errNotFound.Error())
		return
	}
	inv.CurrentTime = time.Now().UnixMilli()
	respondOK(c, facadeInvoice, inv)
}

func (h *Handler) createBill(c *gin.Context) {
	var bill bitpay.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !h.tokenAccepted(bill.Token) {
		respondAppError(c, http.StatusUnauthorized, errors.Service(CodeInvalidToken, "Invalid token"))
		return
	}
	if err := validation.Validate(bill); err != nil {
		respondInvalid(c, err)
		return
	}

	bill.ID = newID()
	bill.URL = h.publicURL("bill", bill.ID)
	bill.Status = bitpay.BillStatusDraft
	bill.Token = uuid.NewString()
	bill.CreatedDate = time.Now().UTC().Format(time.RFC3339)

	stored := h.store.PutBill(bill)
	h.log.WithContext(c.Request.Context()).Info("bill created", logger.Fields(
		"id", stored.ID,
		"total", stored.Total().String(),
		"currency", stored.Currency,
	))
	respondOK(c, facadeBill, stored)
}

func (h *Handler) getBill(c *gin.Context) {
	bill, ok := h.store.Bill(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, errNotFound.Error())
		return
	}
	respondOK(c, facadeBill, bill)
}

type deliveryRequest struct {
	Token string `json:"token" validate:"required"`
}

var errInvalidBillToken = stderrors.New("invalid bill token")

func (h *Handler) deliverBill(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validation.Validate(req); err != nil {
		respondInvalid(c, err)
		return
	}

	id := c.Param("id")
	err := h.store.UpdateBill(id, func(b *bitpay.Bill) error {
		if b.Token != req.Token {
			return errInvalidBillToken
		}
		b.Status = bitpay.BillStatusSent
		return nil
	})
	switch {
	case stderrors.Is(err, errNotFound):
		respondError(c, http.StatusNotFound, errNotFound.Error())
		return
	case stderrors.Is(err, errInvalidBillToken):
		respondAppError(c, http.StatusUnauthorized, errors.Service(CodeInvalidBillToken, "Invalid bill token"))
		return
	}

	h.log.WithContext(c.Request.Context()).Info("bill delivered", logger.Fields("id", id))
	respondOK(c, facadeBill, "Success")
}

func (h *Handler) getRates(c *gin.Context) {
	respondOK(c, "", h.store.Rates())
}

func (h *Handler) health(c *gin.Context) {
	report := observability.NewServiceHealth("paykit-sandbox", version.GetShortVersion()).
		Check(c.Request.Context(), h.store)
	status := http.StatusOK
	if report.Status == observability.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
