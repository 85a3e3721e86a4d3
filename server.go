package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bitbucket.org/alrahmateam/medaid_backend/config"
	"bitbucket.org/alrahmateam/medaid_backend/ledger"
	"bitbucket.org/alrahmateam/medaid_backend/middlewares"
	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
	"bitbucket.org/alrahmateam/medaid_backend/sheetsync"
	"bitbucket.org/alrahmateam/medaid_backend/utils"
)

const defaultPort = "8080"

// api holds the handler dependencies. service stays nil until the
// spreadsheet connection is up; the readiness gate turns requests away
// until then.
type api struct {
	service *ledger.Service
	worker  *sheetsync.Worker
}

func main() {
	logger := config.GetLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	// Handle SIGINT/SIGTERM for graceful shutdown (Cloud Run sends SIGTERM).
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := &api{}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		// Always allow Cloud Run startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		// Gate everything else on the spreadsheet connection.
		if h.service == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production-safe CORS:
	// - In production, require explicit allowlist via CORS_ALLOWED_ORIGINS (comma-separated).
	// - In non-production, allow all (developer convenience).
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			// Safer default: deny all if not configured in production.
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "X-Request-Id")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.RequestLogger())
	r.Use(gin.Recovery())

	r.GET("/cases", h.listCases)
	r.POST("/cases", h.createCase)
	r.PUT("/cases/:id", h.updateCase)
	r.DELETE("/cases/:id", h.deleteCase)

	r.GET("/donations", h.listDonations)
	r.POST("/donations", h.createDonation)
	r.PUT("/donations/:id", h.updateDonation)
	r.DELETE("/donations/:id", h.deleteDonation)
	r.GET("/financial/raw", h.listFinancialRaw)

	r.GET("/assets", h.listAssets)
	r.POST("/assets", h.createAsset)
	r.GET("/assets/borrowed", h.listBorrowed)
	r.POST("/assets/borrowed", h.createBorrowed)
	r.PUT("/assets/:id", h.updateAsset)
	r.DELETE("/assets/:id", h.deleteAsset)

	r.GET("/medical-team", h.listTeam)
	r.POST("/medical-team", h.createTeamMember)
	r.PUT("/medical-team/:id", h.updateTeamMember)
	r.DELETE("/medical-team/:id", h.deleteTeamMember)
	r.POST("/medical-team/:id/image", h.uploadMemberImage)

	r.GET("/inventory", h.listInventory)
	r.PUT("/inventory/:branch", h.upsertInventory)

	r.GET("/reports/donations/monthly", h.monthlyDonations)
	r.GET("/reports/cases/monthly", h.monthlyCases)

	// Ops tooling: force a reconcile pass outside the schedule.
	r.POST("/internal/ops/sync", h.runSync)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
	})

	// Start listening immediately (Cloud Run startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	for attempt := 1; ; attempt++ {
		err := config.ConnectSheets(sigCtx)
		if err == nil {
			break
		}
		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{
			"field":   "sheets",
			"attempt": attempt,
		}).Warn("failed to connect to spreadsheet; retrying in " + sleep.String() + ": " + err.Error())
		select {
		case <-sigCtx.Done():
			return
		case <-time.After(sleep):
		}
	}
	config.ConnectRedisWithRetry()

	var store sheetdb.Store = sheetdb.NewGoogleStore(config.GetSheetsService(), config.GetSpreadsheetID())
	store = sheetdb.NewRetryStore(store, config.SheetOpTimeout())
	store = sheetdb.NewCacheStore(store, config.RangeCacheTTL())

	service := ledger.NewService(store)
	h.worker = sheetsync.NewWorker(service, config.SyncInterval())
	h.service = service

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	h.worker.Start(workerCtx)

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/")
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Stop the sync worker first so it doesn't start a pass mid-drain.
	cancelWorker()

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

// ---- response envelope ----------------------------------------------

func respondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch ledger.KindOf(err) {
	case ledger.KindNotFound:
		status = http.StatusNotFound
	case ledger.KindValidation:
		status = http.StatusBadRequest
	case ledger.KindTransient:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func deleteMode(c *gin.Context, entity models.EntityType) ledger.DeleteMode {
	if c.Query("mode") == "hard" || config.HardDeleteFor(string(entity)) {
		return ledger.DeleteHard
	}
	return ledger.DeleteSoft
}

// ---- cases -----------------------------------------------------------

func (h *api) listCases(c *gin.Context) {
	records := h.service.ListCases(c.Request.Context())
	respondList(c, len(records), records)
}

type caseRequest struct {
	Date        string `json:"date" validate:"required"`
	Branch      string `json:"branch" validate:"required"`
	Gender      string `json:"gender"`
	CaseType    string `json:"case_type" validate:"required"`
	Description string `json:"description"`
	Team        string `json:"team"`
	Notes       string `json:"notes"`
}

func (r *caseRequest) record() *models.CaseRecord {
	return &models.CaseRecord{
		Date:        r.Date,
		Branch:      r.Branch,
		Gender:      r.Gender,
		CaseType:    r.CaseType,
		Description: r.Description,
		Team:        r.Team,
		Notes:       r.Notes,
	}
}

func (h *api) createCase(c *gin.Context) {
	var req caseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": utils.ProcessValidationErrors(err)})
		return
	}
	created, err := h.service.CreateCase(c.Request.Context(), req.record())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *api) updateCase(c *gin.Context) {
	var req models.CaseRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.service.UpdateCase(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, req)
}

func (h *api) deleteCase(c *gin.Context) {
	err := h.service.DeleteCase(c.Request.Context(), c.Param("id"), deleteMode(c, models.EntityCases))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ---- donations / expenses -------------------------------------------

func ledgerParam(c *gin.Context) (string, bool) {
	switch c.Query("ledger") {
	case "", models.LedgerReceived, models.LedgerSpent:
		return c.Query("ledger"), true
	default:
		return "", false
	}
}

func (h *api) listDonations(c *gin.Context) {
	ledgerName, ok := ledgerParam(c)
	if !ok {
		badRequest(c, "ledger must be received or spent")
		return
	}
	records := h.service.ListDonations(c.Request.Context(), ledgerName)
	respondList(c, len(records), records)
}

func (h *api) createDonation(c *gin.Context) {
	var req models.DonationRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Date == "" || req.Branch == "" {
		badRequest(c, "date and branch are required")
		return
	}
	if req.Ledger != "" && req.Ledger != models.LedgerReceived && req.Ledger != models.LedgerSpent {
		badRequest(c, "ledger must be received or spent")
		return
	}
	created, err := h.service.CreateDonation(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *api) updateDonation(c *gin.Context) {
	ledgerName, ok := ledgerParam(c)
	if !ok || ledgerName == "" {
		badRequest(c, "ledger must be received or spent")
		return
	}
	var req models.DonationRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.service.UpdateDonation(c.Request.Context(), ledgerName, c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, req)
}

func (h *api) deleteDonation(c *gin.Context) {
	ledgerName, ok := ledgerParam(c)
	if !ok || ledgerName == "" {
		badRequest(c, "ledger must be received or spent")
		return
	}
	entity := models.LedgerEntity(ledgerName)
	err := h.service.DeleteDonation(c.Request.Context(), ledgerName, c.Param("id"), deleteMode(c, entity))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *api) listFinancialRaw(c *gin.Context) {
	rows := h.service.FinancialRaw(c.Request.Context())
	respondList(c, len(rows), rows)
}

// ---- assets ----------------------------------------------------------

func (h *api) listAssets(c *gin.Context) {
	records := h.service.ListAssets(c.Request.Context())
	respondList(c, len(records), records)
}

func (h *api) createAsset(c *gin.Context) {
	var req models.AssetRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Branch == "" || req.AssetName == "" {
		badRequest(c, "branch and asset_name are required")
		return
	}
	created, err := h.service.CreateAsset(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *api) listBorrowed(c *gin.Context) {
	records := h.service.ListBorrowed(c.Request.Context())
	respondList(c, len(records), records)
}

type borrowedRequest struct {
	Branch     string `json:"branch" validate:"required"`
	AssetName  string `json:"asset_name" validate:"required"`
	Quantity   string `json:"quantity"`
	Recipient  string `json:"recipient" validate:"required"`
	BorrowDate string `json:"borrow_date" validate:"required"`
	Notes      string `json:"notes"`
}

func (h *api) createBorrowed(c *gin.Context) {
	var req borrowedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": utils.ProcessValidationErrors(err)})
		return
	}
	created, err := h.service.CreateBorrowed(c.Request.Context(), &models.BorrowedAsset{
		Branch:     req.Branch,
		AssetName:  req.AssetName,
		Quantity:   req.Quantity,
		Recipient:  req.Recipient,
		BorrowDate: req.BorrowDate,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *api) updateAsset(c *gin.Context) {
	var req models.AssetRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := h.service.UpdateAsset(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, req)
}

func (h *api) deleteAsset(c *gin.Context) {
	err := h.service.DeleteAsset(c.Request.Context(), c.Param("id"), deleteMode(c, models.EntityAssets))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ---- medical team ----------------------------------------------------

func (h *api) listTeam(c *gin.Context) {
	records := h.service.ListTeam(c.Request.Context())
	respondList(c, len(records), records)
}

func (h *api) createTeamMember(c *gin.Context) {
	var req models.TeamMember
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.FullName == "" {
		badRequest(c, "full_name is required")
		return
	}
	warnBadPhone(&req)
	created, err := h.service.CreateTeamMember(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *api) updateTeamMember(c *gin.Context) {
	var req models.TeamMember
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	warnBadPhone(&req)
	if err := h.service.UpdateTeamMember(c.Request.Context(), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, req)
}

// Years of sheet data hold phone numbers in every imaginable format, so a
// bad number is logged for cleanup, never rejected.
func warnBadPhone(m *models.TeamMember) {
	if m.Phone == "" {
		return
	}
	if err := utils.ValidatePhoneNumber(m.Phone, utils.DefaultPhoneRegion()); err != nil {
		config.LogWarn(config.GetLogger(), "server", "warnBadPhone", "unparsable phone number", m.Phone)
	}
}

func (h *api) deleteTeamMember(c *gin.Context) {
	err := h.service.DeleteTeamMember(c.Request.Context(), c.Param("id"), deleteMode(c, models.EntityMedicalTeam))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *api) uploadMemberImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "cannot read image: "+err.Error())
		return
	}
	defer file.Close()

	url, err := utils.UploadMemberPhoto(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "upload failed: " + err.Error()})
		return
	}
	if err := h.service.SetMemberImage(c.Request.Context(), c.Param("id"), url); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": c.Param("id"), "image_ref": url})
}

// ---- inventory -------------------------------------------------------

func (h *api) listInventory(c *gin.Context) {
	rows := h.service.ListInventory(c.Request.Context())
	respondList(c, len(rows), rows)
}

func (h *api) upsertInventory(c *gin.Context) {
	var req models.InventoryRow
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	req.Branch = c.Param("branch")
	if req.Branch == "" {
		badRequest(c, "branch is required")
		return
	}
	if err := h.service.UpsertInventory(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, req)
}

// ---- reports ---------------------------------------------------------

func (h *api) monthlyDonations(c *gin.Context) {
	ledgerName, ok := ledgerParam(c)
	if !ok {
		badRequest(c, "ledger must be received or spent")
		return
	}
	records := h.service.ListDonations(c.Request.Context(), ledgerName)
	totals := models.MonthlyDonationTotals(records)
	respondList(c, len(totals), totals)
}

func (h *api) monthlyCases(c *gin.Context) {
	records := h.service.ListCases(c.Request.Context())
	counts := models.MonthlyCaseCounts(records)
	respondList(c, len(counts), counts)
}

// ---- ops -------------------------------------------------------------

func (h *api) runSync(c *gin.Context) {
	stats := h.worker.RunOnce(c.Request.Context())
	respondList(c, len(stats), stats)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
