package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"amele-bot/internal/stories/orders"
	"amele-bot/internal/stories/users"
	"amele-bot/internal/stories/verify"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Username, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			s.writeError(w, http.StatusConflict, "email already registered")
			return
		}
		s.logger.Error("ошибка регистрации", "error", err)
		s.writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	s.writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Server) handleLoginRequest(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !user.IsActive {
		s.writeError(w, http.StatusNotFound, "unknown email")
		return
	}

	if err := s.verify.RequestCode(r.Context(), users.NormalizeEmail(req.Email)); err != nil {
		s.logger.Error("не удалось отправить код", "error", err)
		s.writeError(w, http.StatusInternalServerError, "could not send code")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "code_sent"})
}

func (s *Server) handleLoginVerify(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		s.writeError(w, http.StatusBadRequest, "email and code are required")
		return
	}

	ok, err := s.verify.VerifyCode(r.Context(), users.NormalizeEmail(req.Email), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, verify.ErrNoCode):
			s.writeError(w, http.StatusGone, "code expired")
		case errors.Is(err, verify.ErrTooManyAttempts):
			s.writeError(w, http.StatusTooManyRequests, "too many attempts")
		default:
			s.writeError(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "wrong code")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Email)
	if err != nil || user == nil {
		s.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListBots(w http.ResponseWriter, r *http.Request) {
	bots, err := s.catalog.ListBots(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, bots)
}

type orderBotRequest struct {
	Email string `json:"email"`
}

// handleOrderBot оформляет заказ готового бота со витрины.
func (s *Server) handleOrderBot(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")

	var req orderBotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	bot, err := s.catalog.GetBot(r.Context(), botID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	if bot == nil {
		s.writeError(w, http.StatusNotFound, "bot not found")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if user == nil || !user.IsActive {
		s.writeError(w, http.StatusForbidden, "register first")
		return
	}

	order, err := s.orders.Create(r.Context(), orders.CreateParams{
		UserID:         orderUserID(user),
		UserName:       user.Username,
		BotType:        orders.BotTypePremade,
		PremadeBotID:   bot.ID,
		Idea:           bot.Name,
		EstimatedPrice: lo.ToPtr(bot.Price),
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "order failed")
		return
	}

	s.notifier.OrderCreated(order)
	s.writeJSON(w, http.StatusCreated, order)
}

type customOrderRequest struct {
	Email           string `json:"email"`
	Idea            string `json:"idea"`
	EstimatedBudget *int64 `json:"estimated_budget,omitempty"`
	BotToken        string `json:"bot_token,omitempty"`
}

type customOrderResponse struct {
	Order        *orders.Order `json:"order"`
	TokenWarning string        `json:"token_warning,omitempty"`
}

// handleOrderCustom принимает заявку на своего бота со витрины.
// Токен необязателен: невалидный токен не блокирует заказ, его можно
// прислать позже через бота.
func (s *Server) handleOrderCustom(w http.ResponseWriter, r *http.Request) {
	var req customOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Idea == "" {
		s.writeError(w, http.StatusBadRequest, "idea is required")
		return
	}

	user, err := s.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if user == nil || !user.IsActive {
		s.writeError(w, http.StatusForbidden, "register first")
		return
	}

	var botUsername, tokenWarning string
	if req.BotToken != "" {
		result, err := s.validator.Validate(r.Context(), req.BotToken)
		switch {
		case err != nil:
			tokenWarning = "token check unavailable, order accepted without it"
		case result.OK:
			botUsername = result.Username
		default:
			tokenWarning = "token is invalid, you can send a valid one later"
		}
	}

	order, err := s.orders.Create(r.Context(), orders.CreateParams{
		UserID:         orderUserID(user),
		UserName:       user.Username,
		BotType:        orders.BotTypeCustom,
		Idea:           req.Idea,
		BotToken:       req.BotToken,
		BotUsername:    botUsername,
		EstimatedPrice: req.EstimatedBudget,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "order failed")
		return
	}

	s.notifier.OrderCreated(order)
	s.writeJSON(w, http.StatusCreated, customOrderResponse{Order: order, TokenWarning: tokenWarning})
}

// orderUserID выбирает идентификатор владельца заказа: привязанный
// telegram id, иначе внутренний id, чтобы заказы разных web-клиентов
// не смешивались.
func orderUserID(user *users.User) int64 {
	if user.TelegramID != nil {
		return *user.TelegramID
	}
	return user.ID
}
