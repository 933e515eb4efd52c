package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/farellandr/eventstay/config"
	"github.com/farellandr/eventstay/internal/cache"
	"github.com/farellandr/eventstay/internal/handlers"
	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/middleware"
	"github.com/farellandr/eventstay/internal/queue"
	"github.com/farellandr/eventstay/internal/repository"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Services struct {
	Auth        *services.AuthService
	Enrollments *services.EnrollmentService
	Bookings    *services.BookingService
	Hotels      *services.HotelService
	Tickets     *services.TicketService
	Payments    *services.PaymentService
}

// NewServices wires every service over repos. hotelCache and publisher may be nil.
func NewServices(cfg *config.Config, repos *repository.Repositories, hotelCache services.HotelCache, publisher services.PaymentPublisher, log *logrus.Logger) *Services {
	return &Services{
		Auth:        services.NewAuthService(repos, cfg.JWTSecret, cfg.TokenTTL),
		Enrollments: services.NewEnrollmentService(repos),
		Bookings:    services.NewBookingService(repos),
		Hotels:      services.NewHotelService(repos, hotelCache),
		Tickets:     services.NewTicketService(repos, cfg.JWTSecret),
		Payments:    services.NewPaymentService(repos, publisher, log),
	}
}

type Server struct {
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
	publisher  *queue.AMQPPublisher
	log        *logrus.Logger
}

// New connects to PostgreSQL and, when configured, Redis and RabbitMQ.
// Redis and RabbitMQ are optional: a failure there is logged and the
// feature is turned off.
func New(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	db, err := config.InitDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	s := &Server{db: db, log: log}
	repos := repository.NewRepositories(db)

	var hotelCache services.HotelCache
	if s.redis = config.InitRedis(cfg); s.redis != nil {
		hotelCache = cache.NewRedisHotelCache(s.redis, cfg.HotelCacheTTL, log)
		log.Info("Hotel cache enabled")
	} else if cfg.RedisAddr != "" {
		log.WithField("addr", cfg.RedisAddr).Warn("Redis unreachable, hotel cache disabled")
	}

	var publisher services.PaymentPublisher
	if cfg.RabbitMQURL != "" {
		s.publisher, err = queue.NewAMQPPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.WithError(err).Warn("RabbitMQ unreachable, payment events disabled")
		} else {
			publisher = s.publisher
			log.Info("Payment events enabled")
		}
	}

	router, err := NewRouter(cfg, NewServices(cfg, repos, hotelCache, publisher, log), log)
	if err != nil {
		return nil, err
	}
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Run blocks until the server stops. It returns nil after Shutdown.
func (s *Server) Run() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("Server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	if s.publisher != nil {
		if cerr := s.publisher.Close(); cerr != nil {
			s.log.WithError(cerr).Warn("Error closing RabbitMQ connection")
		}
	}
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			s.log.WithError(cerr).Warn("Error closing Redis client")
		}
	}
	if sqlDB, derr := s.db.DB(); derr == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			s.log.WithError(cerr).Warn("Error closing database")
		}
	}
	return err
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("cardnumber", helpers.ValidateCardNumber); err != nil {
		return fmt.Errorf("register cardnumber validation: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID"}

	c.AllowOrigins = nil
	for _, origin := range origins {
		if origin == "*" {
			c.AllowAllOrigins = true
			c.AllowOrigins = nil
			return c
		}
		c.AllowOrigins = append(c.AllowOrigins, origin)
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	}
	return c
}

func NewRouter(cfg *config.Config, svc *Services, log *logrus.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		cors.New(corsConfig(cfg.CORSAllowOrigins)),
		middleware.Timeout(cfg.RequestTimeout),
	)

	setupRoutes(r, svc, log)
	return r, nil
}

func setupRoutes(r *gin.Engine, svc *Services, log *logrus.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/users", handlers.SignUp(svc.Auth, log))
	r.POST("/auth/sign-in", handlers.SignIn(svc.Auth, log))

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))
	{
		enrollments := protected.Group("/enrollments")
		{
			enrollments.GET("", handlers.GetEnrollment(svc.Enrollments, log))
			enrollments.POST("", handlers.SaveEnrollment(svc.Enrollments, log))
		}

		booking := protected.Group("/booking")
		{
			booking.GET("", handlers.GetBooking(svc.Bookings, log))
			booking.POST("", handlers.CreateBooking(svc.Bookings, log))
			booking.PUT("/:bookingId", handlers.ChangeRoom(svc.Bookings, log))
		}

		hotels := protected.Group("/hotels")
		{
			hotels.GET("", handlers.ListHotels(svc.Hotels, log))
			hotels.GET("/:hotelId", handlers.GetHotel(svc.Hotels, log))
		}

		tickets := protected.Group("/tickets")
		{
			tickets.GET("/types", handlers.ListTicketTypes(svc.Tickets, log))
			tickets.GET("", handlers.GetTicket(svc.Tickets, log))
			tickets.POST("", handlers.CreateTicket(svc.Tickets, log))
			tickets.GET("/pass", handlers.GetTicketPass(svc.Tickets, log))
			tickets.POST("/pass/verify", handlers.VerifyTicketPass(svc.Tickets, log))
		}

		payments := protected.Group("/payments")
		{
			payments.GET("", handlers.GetPayment(svc.Payments, log))
			payments.POST("/process", handlers.ProcessPayment(svc.Payments, log))
		}
	}
}
