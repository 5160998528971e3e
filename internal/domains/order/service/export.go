package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/pkg/logger"
)

const (
	exportRowLimit  = 5000
	exportSheetName = "Orders"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// MinIO không kết nối được lúc startup => export tắt, phần còn lại vẫn chạy
var errStorageNotConfigured = errors.New("object storage not configured")

// =====================================================
// EXPORT ORDERS (ADMIN)
// =====================================================
// Build .xlsx -> upload object storage -> trả presigned URL
func (s *orderService) ExportOrders(ctx context.Context, req model.ExportOrdersRequest) (*model.ExportOrdersResponse, error) {
	if s.storage == nil {
		return nil, errStorageNotConfigured
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != "" && !model.OrderStatus(status).IsValid() {
		return nil, model.NewOrderError(model.ErrCodeInvalidRequest,
			fmt.Sprintf("Unknown order status '%s'", req.Status), model.ErrInvalidStatus)
	}

	orders, err := s.orderRepo.ListOrdersForExport(ctx, status, exportRowLimit)
	if err != nil {
		return nil, err
	}

	f, err := buildOrdersExcelFile(orders)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}

	now := s.now()
	scope := status
	if scope == "" {
		scope = "all"
	}
	key := fmt.Sprintf("exports/orders/%s/orders-%s-%s.xlsx", now.UTC().Format("2006/01/02"), scope, now.UTC().Format("150405"))

	if err := s.storage.Upload(ctx, key, buf.Bytes(), xlsxContentType); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.storage.PresignedURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign export url: %w", err)
	}

	logger.Info("Orders exported", map[string]interface{}{"key": key, "rows": len(orders)})

	return &model.ExportOrdersResponse{
		Key:       key,
		URL:       url,
		Rows:      len(orders),
		CreatedAt: now,
	}, nil
}

func buildOrdersExcelFile(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	// Row 1: Header
	headers := []string{
		"Order Number",
		"Order ID",
		"User ID",
		"Status",
		"Payment Method",
		"Payment Status",
		"Subtotal",
		"Delivery Charge",
		"Discount Code",
		"Discount",
		"Reward Points",
		"Reward Discount",
		"Total",
		"Tracking Number",
		"Created At",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(exportSheetName, "A1", lastCol, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, o := range orders {
		row := []interface{}{
			o.OrderNumber,
			o.ID.String(),
			o.UserID.String(),
			string(o.Status),
			string(o.PaymentMethod),
			string(o.PaymentStatus),
			o.Subtotal.InexactFloat64(),
			o.DeliveryCharge.InexactFloat64(),
			stringOrEmpty(o.DiscountCode),
			o.DiscountAmount.InexactFloat64(),
			o.RewardPointsUsed,
			o.RewardDiscountAmount.InexactFloat64(),
			o.Total.InexactFloat64(),
			stringOrEmpty(o.TrackingNumber),
			o.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
