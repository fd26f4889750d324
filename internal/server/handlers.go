package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devicepulse/agent/config"
	"github.com/devicepulse/agent/internal/cache"
	"github.com/devicepulse/agent/internal/health"
	"github.com/devicepulse/agent/internal/netinfo"
	"github.com/devicepulse/agent/internal/process"
	"github.com/devicepulse/agent/internal/snmp"
	"github.com/devicepulse/agent/internal/system"
)

// PortResolver resolves a client MAC to a switch port. Satisfied by
// snmp.Resolver; tests substitute a stub.
type PortResolver interface {
	Resolve(ctx context.Context, req snmp.LookupRequest) (*snmp.PortMapping, error)
}

// Handlers holds all HTTP handlers
type Handlers struct {
	cfg        *config.Config
	cache      *cache.SnapshotCache
	sampler    *system.Sampler
	classifier *health.Classifier
	inspector  *netinfo.Inspector
	resolver   PortResolver
}

// NewHandlers creates a new handlers instance
func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{
		cfg:   cfg,
		cache: cache.NewSnapshotCache(),
		sampler: system.NewSampler(cfg.SampleTimeout),
		classifier: health.NewClassifier(health.Thresholds{
			StressAt:   cfg.HealthStressAt,
			CriticalAt: cfg.HealthCriticalAt,
		}),
		inspector: netinfo.NewInspector(),
		resolver:  snmp.NewResolver(cfg.SNMPTimeout, cfg.SNMPRetries),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// IssueToken handles POST /api/auth/token: exchanges a valid API key for a
// short-lived JWT.
func (h *Handlers) IssueToken(auth *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			APIKey string `json:"api_key" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
			return
		}

		if !auth.ValidateAPIKey(req.APIKey) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}

		token, err := auth.GenerateToken("operator", time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": 3600})
	}
}

// GetInfo handles GET /api/info
func (h *Handlers) GetInfo(c *gin.Context) {
	info, err := h.cache.GetOrSet(cache.KeyHost, func() (interface{}, error) {
		return system.GetHostInfo()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// GetMetrics handles GET /api/metrics: the current sample plus its verdict.
func (h *Handlers) GetMetrics(c *gin.Context) {
	cached, found := h.cache.Get(cache.KeySample)
	if found {
		c.JSON(http.StatusOK, cached)
		return
	}

	sample, err := h.sampler.Sample(c.Request.Context())
	if err != nil {
		c.JSON(sampleErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.classifier.Classify(sample)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload := gin.H{"sample": sample, "verdict": verdict}
	h.cache.Set(cache.KeySample, payload)
	c.JSON(http.StatusOK, payload)
}

// GetReport handles GET /api/report: verdict + sample + interfaces +
// recommendations, the consistent tuple the presentation layer renders.
func (h *Handlers) GetReport(c *gin.Context) {
	cached, found := h.cache.Get(cache.KeyReport)
	if found {
		c.JSON(http.StatusOK, cached)
		return
	}

	sample, err := h.sampler.Sample(c.Request.Context())
	if err != nil {
		c.JSON(sampleErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.classifier.Classify(sample)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Interface data is independent of the verdict; an enumeration failure
	// must not hide the metrics, so it is reported alongside them.
	report := health.Report{
		Verdict:         verdict,
		Sample:          *sample,
		Recommendations: health.Recommend(sample, h.classifier.Thresholds()),
	}

	interfaces, ifErr := h.inspector.ListInterfaces()
	if ifErr == nil {
		report.Interfaces = interfaces
	}

	payload := gin.H{"report": report}
	if ifErr != nil {
		payload["interfaces_error"] = ifErr.Error()
	}

	h.cache.Set(cache.KeyReport, payload)
	c.JSON(http.StatusOK, payload)
}

// GetInterfaces handles GET /api/interfaces
func (h *Handlers) GetInterfaces(c *gin.Context) {
	interfaces, err := h.cache.GetOrSet(cache.KeyInterfaces, func() (interface{}, error) {
		return h.inspector.ListInterfaces()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"interfaces": interfaces})
}

// ListProcesses handles GET /api/processes
func (h *Handlers) ListProcesses(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	snapshot, err := process.Top(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// LookupSwitchPort handles POST /api/switchport. The mapping is returned
// as-is for every terminal status so the operator sees the exact failing
// stage; only malformed input is an HTTP error.
func (h *Handlers) LookupSwitchPort(c *gin.Context) {
	var body struct {
		SwitchIP  string `json:"switch_ip" binding:"required"`
		Community string `json:"community" binding:"required"`
		ClientMAC string `json:"client_mac" binding:"required"`
		TimeoutMS int    `json:"timeout_ms"`
		Retries   int    `json:"retries"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "switch_ip, community and client_mac are required"})
		return
	}

	req := snmp.LookupRequest{
		SwitchIP:  body.SwitchIP,
		Community: body.Community,
		ClientMAC: body.ClientMAC,
		Timeout:   time.Duration(body.TimeoutMS) * time.Millisecond,
		Retries:   body.Retries,
		Port:      h.cfg.SNMPPort,
	}

	mapping, err := h.resolver.Resolve(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapping)
}

// StreamEvents handles GET /api/events (SSE real-time sampling)
func (h *Handlers) StreamEvents(c *gin.Context) {
	interval := 2 * time.Second
	if s := c.Query("interval"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 300 {
			interval = time.Duration(n) * time.Second
		}
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	results := h.sampler.Stream(ctx, interval)

	c.Stream(func(w io.Writer) bool {
		select {
		case res, open := <-results:
			if !open {
				return false
			}
			if res.Err != nil {
				c.SSEvent("error", gin.H{"error": res.Err.Error()})
				return true
			}
			verdict, err := h.classifier.Classify(res.Sample)
			if err != nil {
				c.SSEvent("error", gin.H{"error": err.Error()})
				return true
			}
			c.SSEvent("sample", gin.H{"sample": res.Sample, "verdict": verdict})
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// sampleErrStatus maps sampler failures to HTTP statuses: a timed-out read
// is a gateway-style timeout, anything else means the source is unavailable.
func sampleErrStatus(err error) int {
	if errors.Is(err, system.ErrSampleTimeout) {
		return http.StatusGatewayTimeout
	}
	return http.StatusServiceUnavailable
}
