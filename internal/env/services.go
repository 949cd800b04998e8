package environment

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"amele-bot/internal/config"
	"amele-bot/internal/storage"
	"amele-bot/internal/storage/memory"
	"amele-bot/internal/stories/catalog"
	"amele-bot/internal/stories/orders"
	"amele-bot/internal/stories/users"
	"amele-bot/internal/stories/verify"
	"amele-bot/internal/telegram"
	"amele-bot/internal/telegram/cmds"
	"amele-bot/internal/telegram/flows/neworder"
	"amele-bot/internal/telegram/flows/orderadmin"
	"amele-bot/internal/telegram/states"
	"amele-bot/internal/web"
	"amele-bot/internal/worker"
	"amele-bot/internal/workers"
	"amele-bot/internal/workers/statesweep"
)

type Services struct {
	TelegramRouter *telegram.Router
	Notifier       *telegram.OperatorNotifier
	StateManager   *states.Manager
	OrderService   *orders.Service
	UserService    *users.Service
	CatalogService *catalog.Service
	VerifyService  *verify.Service
	WebServer      *web.Server
	WorkerManager  *workers.Manager
	WorkerService  *worker.Service
}

// repository объединяет хранилище заказов и пользователей, его реализуют
// оба бэкенда: memory и sqlite.
type repository interface {
	orders.Repository
	users.Storage
}

func newServices(ctx context.Context, clients *Clients, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	var s Services

	if clients.TelegramBot == nil {
		return nil, errors.New("telegram bot не инициализирован")
	}

	repo, err := provideRepository(ctx, clients, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init repository")
	}

	// Сервисы предметной области
	userService := users.NewService(repo)
	catalogService := catalog.NewService()
	if err := catalogService.Seed(ctx); err != nil {
		return nil, errors.Wrap(err, "seed catalog")
	}
	orderService := orders.NewService(repo, clients.Cache, userService, catalogService, logger)
	verifyService := verify.NewService(clients.Cache, clients.Mailer, logger)

	// Состояния диалогов
	stateManager := states.NewManager(cfg.Orders.StateTTL)

	adminChecker := telegram.NewAdminChecker(&cfg.Telegram)

	// Уведомления оператора
	notifier := telegram.NewOperatorNotifier(clients.TelegramBot, cfg.Telegram.OperatorID, logger)

	// Флоу
	newOrderHandler := neworder.NewHandler(
		clients.TelegramBot,
		stateManager,
		orderService,
		clients.TokenValidator,
		notifier,
		cfg.Orders.IdeaMinLength,
		cfg.Orders.TokenMinLength,
		logger,
	)

	orderAdminHandler := orderadmin.NewHandler(
		clients.TelegramBot,
		stateManager,
		orderService,
		logger,
	)

	// Команды
	myOrdersCommand := cmds.NewMyOrdersCommand(clients.TelegramBot, orderService)
	statsCommand := cmds.NewStatsCommand(clients.TelegramBot, orderService)
	ordersCommand := cmds.NewOrdersCommand(clients.TelegramBot, orderService, notifier)
	catalogCommand := cmds.NewCatalogCommand(clients.TelegramBot, catalogService, orderService, notifier)

	// Роутер
	s.TelegramRouter = telegram.NewRouter(
		clients.TelegramBot,
		stateManager,
		userService,
		adminChecker,
		newOrderHandler,
		orderAdminHandler,
		myOrdersCommand,
		statsCommand,
		ordersCommand,
		catalogCommand,
		logger,
	)

	// Web-поверхность
	s.WebServer = web.NewServer(
		s.TelegramRouter,
		orderService,
		userService,
		catalogService,
		verifyService,
		notifier,
		clients.TokenValidator,
		web.NewSessionStore(cfg.Web.SessionTTL),
		cfg.Web,
		logger,
	)

	// Фоновые задачи
	s.WorkerManager = workers.NewManager(logger,
		statesweep.NewWorker(stateManager, cfg.Orders.SweepInterval, logger),
	)
	s.WorkerService = worker.NewService(orderService, notifier, logger)

	s.Notifier = notifier
	s.StateManager = stateManager
	s.OrderService = orderService
	s.UserService = userService
	s.CatalogService = catalogService
	s.VerifyService = verifyService

	return &s, nil
}

func provideRepository(ctx context.Context, clients *Clients, cfg *config.Config) (repository, error) {
	if cfg.Storage.Backend == "sqlite" {
		if clients.SQLiteDB == nil {
			return nil, errors.New("sqlite backend выбран, но клиент не создан")
		}
		repo := storage.New(clients.SQLiteDB.DB)
		if err := repo.Migrate(ctx); err != nil {
			return nil, errors.Wrap(err, "migrate sqlite schema")
		}
		return repo, nil
	}

	return memory.New(), nil
}
