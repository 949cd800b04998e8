// Package messages содержит тексты сообщений бота.
package messages

const (
	Welcome = "👋 Привет! Я помогу заказать разработку Telegram-бота.\n\n" +
		"🤖 Выберите готового бота из каталога или закажите своего."

	Help = "📖 Команды:\n" +
		"/start - главное меню\n" +
		"/myorders - мои заказы\n" +
		"/cancel - отменить текущее действие\n" +
		"/help - эта справка"

	AskIdea = "💡 Опишите идею вашего бота.\n\n" +
		"Чем подробнее описание, тем точнее будет оценка."

	IdeaTooShort = "✍️ Слишком короткое описание. Расскажите подробнее, что должен делать бот."

	AskToken = "🔑 Теперь пришлите токен бота от @BotFather.\n\n" +
		"Если бота еще нет, создайте его командой /newbot у @BotFather."

	TokenBadFormat = "⚠️ Это не похоже на токен. Токен выглядит так:\n" +
		"<code>123456789:AAAbbbCCCddd...</code>\n\nПопробуйте еще раз."

	TokenRejected = "❌ Telegram не принял этот токен. Проверьте его у @BotFather и пришлите снова."

	TokenCheckFailed = "⏳ Не удалось проверить токен, попробуйте еще раз чуть позже."

	OrderCreated = "✅ Заказ %s принят!\n\n" +
		"🤖 Бот: @%s\n" +
		"📋 Статус: в очереди\n\n" +
		"Мы свяжемся с вами после оценки."

	Cancelled = "🚫 Действие отменено. /start - главное меню."

	NothingToCancel = "🤷 Нечего отменять."

	NoOrders = "📭 У вас пока нет заказов.\n\nНажмите /start, чтобы оформить первый."

	NotAdmin = "⛔ Эта команда доступна только администраторам."

	AskPrice = "💰 Введите оценку стоимости заказа %s в рублях (целое число):"

	PriceBadFormat = "⚠️ Нужно целое число в рублях, например 15000. Попробуйте еще раз."

	PriceSet = "✅ Цена для заказа %s установлена: %d ₽"

	AskNote = "📝 Введите заметку для заказа %s:"

	NoteAdded = "✅ Заметка для заказа %s добавлена."

	OrderNotFound = "❓ Заказ %s не найден."

	UnknownCommand = "🤔 Не понял. /help - список команд."
)
