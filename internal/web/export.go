package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"amele-bot/internal/stories/orders"
)

// handleOrdersExport выгружает все заказы в XLSX.
func (s *Server) handleOrdersExport(w http.ResponseWriter, r *http.Request) {
	list, err := s.orders.ListAll(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "orders unavailable")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Клиент", "Telegram ID", "Тип", "Идея", "Бот", "Статус", "Цена", "Срок", "Заметки", "Создан", "Завершен"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, order := range list {
		values := orderRowValues(order)
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		s.logger.Error("ошибка выгрузки xlsx", "error", err)
	}
}

func orderRowValues(order *orders.Order) []any {
	price := any("")
	if order.EstimatedPrice != nil {
		price = *order.EstimatedPrice
	}
	completed := ""
	if order.CompletedAt != nil {
		completed = order.CompletedAt.Format("02.01.2006 15:04")
	}
	return []any{
		order.ID,
		order.UserName,
		order.UserID,
		string(order.BotType),
		order.Idea,
		order.BotUsername,
		string(order.Status),
		price,
		order.EstimatedTime,
		order.AdminNotes,
		order.CreatedAt.Format("02.01.2006 15:04"),
		completed,
	}
}
