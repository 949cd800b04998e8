// Package web поднимает HTTP-поверхность бота: webhook, health и админ-API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"amele-bot/internal/config"
	infratelegram "amele-bot/internal/infra/telegram"
	"amele-bot/internal/stories/catalog"
	"amele-bot/internal/stories/orders"
	"amele-bot/internal/stories/users"
)

type (
	updateRouter interface {
		Route(update *tgbotapi.Update) error
	}

	orderService interface {
		Create(ctx context.Context, params orders.CreateParams) (*orders.Order, error)
		ListAll(ctx context.Context) ([]*orders.Order, error)
		Stats(ctx context.Context) (*orders.Stats, error)
	}

	userService interface {
		Register(ctx context.Context, email, username, fullName, phone string) (*users.User, error)
		GetByEmail(ctx context.Context, email string) (*users.User, error)
		Authenticate(ctx context.Context, email string) (*users.User, error)
	}

	catalogService interface {
		GetBot(ctx context.Context, id string) (*catalog.PremadeBot, error)
		ListBots(ctx context.Context) ([]*catalog.PremadeBot, error)
	}

	verifyService interface {
		RequestCode(ctx context.Context, email string) error
		VerifyCode(ctx context.Context, email, code string) (bool, error)
	}

	orderNotifier interface {
		OrderCreated(order *orders.Order)
	}

	tokenValidator interface {
		Validate(ctx context.Context, token string) (infratelegram.ValidationResult, error)
	}
)

type Server struct {
	updates   updateRouter
	orders    orderService
	users     userService
	catalog   catalogService
	verify    verifyService
	notifier  orderNotifier
	validator tokenValidator
	sessions  *SessionStore
	cfg       config.WebConfig
	logger    *slog.Logger
}

func NewServer(
	updates updateRouter,
	orderSvc orderService,
	userSvc userService,
	catalogSvc catalogService,
	verifySvc verifyService,
	notifier orderNotifier,
	validator tokenValidator,
	sessions *SessionStore,
	cfg config.WebConfig,
	logger *slog.Logger,
) *Server {
	return &Server{
		updates:   updates,
		orders:    orderSvc,
		users:     userSvc,
		catalog:   catalogSvc,
		verify:    verifySvc,
		notifier:  notifier,
		validator: validator,
		sessions:  sessions,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/webhook", s.handleWebhook)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login/request", s.handleLoginRequest)
		r.Post("/login/verify", s.handleLoginVerify)
		r.Get("/bots", s.handleListBots)
		r.Post("/bots/{botID}/order", s.handleOrderBot)
		r.Post("/order/custom", s.handleOrderCustom)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", s.handleAdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/api/stats", s.handleAdminStats)
			r.Get("/api/orders", s.handleAdminOrders)
			r.Get("/api/orders/export", s.handleOrdersExport)
		})
	})

	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("ошибка записи ответа", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
