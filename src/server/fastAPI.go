package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-dashboard/src/analysis"
	datasource "stock-dashboard/src/data_source"
	"stock-dashboard/src/data_source/mocktable"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// validPeriods for the history endpoint.
var validPeriods = map[string]struct{}{
	"1d": {}, "5d": {}, "1mo": {}, "3mo": {}, "6mo": {},
	"1y": {}, "2y": {}, "5y": {}, "10y": {}, "ytd": {}, "max": {},
}

// -----------------------------------------------------------------------------
// FastAPIServer
// -----------------------------------------------------------------------------

type FastAPIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	engine   *gin.Engine
	Store    interfaces.ICompanyStore
	Resolver *datasource.QuoteResolver
	Mock     *mocktable.Table
	Calendar *utils.TradingCalendar

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MMarketSummary
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	now func() time.Time
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewFastAPIServer(
	cfg *models.MConfig,
	log *logger.Logger,
	store interfaces.ICompanyStore,
	resolver *datasource.QuoteResolver,
	mock *mocktable.Table,
) *FastAPIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &FastAPIServer{
		Config:   cfg,
		Logger:   log,
		engine:   gin.New(),
		Store:    store,
		Resolver: resolver,
		Mock:     mock,
		Calendar: utils.NewTradingCalendar(),
		clients:  make(map[*Client]struct{}),
		// Buffered so a slow hub never stalls the broadcaster tick
		broadcast:  make(chan *models.MMarketSummary, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		now:        time.Now,
	}

	s.engine.Use(gin.Logger())

	// Any panic surfaces as a 500 with the raw error text in the envelope.
	s.engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		s.Logger.Error("Unhandled panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"detail": "Internal server error",
			"error":  fmt.Sprintf("%v", recovered),
		})
	}))

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *FastAPIServer) setupRoutes() {
	s.engine.GET("/", s.getRoot)

	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/companies", s.getCompanies)
	api.GET("/stocks/:symbol", s.getStock)
	api.GET("/stocks/:symbol/history", s.getStockHistory)
	api.GET("/market-summary", s.getMarketSummary)
	api.GET("/compare/:symbols", s.compareStocks)
	api.GET("/sectors", s.getSectors)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *FastAPIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()
	go s.runBroadcaster()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) Stop() error {
	close(s.done)
	return nil
}

// -----------------------------------------------------------------------------

// Engine exposes the router for httptest.
func (s *FastAPIServer) Engine() *gin.Engine {
	return s.engine
}

// -----------------------------------------------------------------------------
// Error mapping
// -----------------------------------------------------------------------------

// abortWithError maps the error taxonomy onto HTTP statuses. The underlying
// cause is logged, never echoed to the caller.
func (s *FastAPIServer) abortWithError(c *gin.Context, err error) {
	var notFound *helpers.NotFoundError
	var validation *helpers.ValidationError
	var upstream *helpers.UpstreamError
	var database *helpers.DatabaseError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound.Message})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": validation.Message})
	case errors.As(err, &upstream):
		s.Logger.Error("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": upstream.Message})
	case errors.As(err, &database):
		s.Logger.Error("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": database.Message})
	default:
		s.Logger.Error("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *FastAPIServer) getRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to Stock Market Dashboard API",
		"version": apiVersion,
		"docs":    "/docs",
		"health":  "/api/health",
	})
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": s.now(),
	})
}

// -----------------------------------------------------------------------------

// getCompanies lists the reference table, seeding it on first read.
func (s *FastAPIServer) getCompanies(c *gin.Context) {
	companies, err := s.Store.ListCompanies()
	if err != nil {
		s.abortWithError(c, helpers.NewDatabaseError("Failed to fetch companies", err))
		return
	}

	if len(companies) == 0 {
		if err := s.Store.SeedCompanies(mocktable.SeedCompanies()); err != nil {
			s.abortWithError(c, helpers.NewDatabaseError("Failed to fetch companies", err))
			return
		}
		if companies, err = s.Store.ListCompanies(); err != nil {
			s.abortWithError(c, helpers.NewDatabaseError("Failed to fetch companies", err))
			return
		}
	}

	c.JSON(http.StatusOK, companies)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getStock(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	company, err := s.Store.GetCompany(symbol)
	if err != nil {
		s.abortWithError(c, helpers.NewDatabaseError(fmt.Sprintf("Failed to fetch stock data for %s", symbol), err))
		return
	}
	if company == nil {
		s.abortWithError(c, helpers.NewNotFoundError("Company not found"))
		return
	}

	quote, err := s.Resolver.GetQuote(symbol)
	if err != nil {
		s.abortWithError(c, helpers.NewUpstreamError(fmt.Sprintf("Failed to fetch stock data for %s", symbol), err))
		return
	}

	data := analysis.TransformQuote(quote, s.now())

	// Persist the refreshed price/cap onto the company row. Aggregate
	// endpoints do not perform this write.
	if err := s.Store.UpdateQuote(symbol, data.CurrentPrice, data.MarketCap, data.LastUpdated); err != nil {
		s.abortWithError(c, helpers.NewDatabaseError(fmt.Sprintf("Failed to fetch stock data for %s", symbol), err))
		return
	}

	c.JSON(http.StatusOK, data)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getStockHistory(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	period := c.DefaultQuery("period", "1mo")

	if _, ok := validPeriods[period]; !ok {
		s.abortWithError(c, helpers.NewValidationError("Invalid period"))
		return
	}

	company, err := s.Store.GetCompany(symbol)
	if err != nil {
		s.abortWithError(c, helpers.NewDatabaseError(fmt.Sprintf("Failed to fetch historical data for %s", symbol), err))
		return
	}
	if company == nil {
		s.abortWithError(c, helpers.NewNotFoundError("Company not found"))
		return
	}

	series, err := s.Resolver.GetHistory(symbol, period)
	if err != nil {
		s.abortWithError(c, helpers.NewUpstreamError(fmt.Sprintf("Failed to fetch historical data for %s", symbol), err))
		return
	}

	c.JSON(http.StatusOK, series)
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getMarketSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.buildSummary())
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) compareStocks(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.Compare(s.Mock, c.Param("symbols"), s.now()))
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getSectors(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.Sectors(s.Mock, mocktable.SeedCompanies()))
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) buildSummary() *models.MMarketSummary {
	now := s.now()
	summary := analysis.MarketSummary(s.Mock, utils.MarketStatus(now), s.Calendar.IsTradingDay(now))
	return &summary
}
