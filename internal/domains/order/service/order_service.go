package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
	cartModel "storefront-backend/internal/domains/cart/model"
	cart "storefront-backend/internal/domains/cart/repository"
	delivery "storefront-backend/internal/domains/delivery/service"
	discountModel "storefront-backend/internal/domains/discount/model"
	discount "storefront-backend/internal/domains/discount/repository"
	discountService "storefront-backend/internal/domains/discount/service"
	invenModel "storefront-backend/internal/domains/inventory/model"
	invenRepo "storefront-backend/internal/domains/inventory/repository"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	rewardModel "storefront-backend/internal/domains/reward/model"
	reward "storefront-backend/internal/domains/reward/service"
	user "storefront-backend/internal/domains/user/repository"
	"storefront-backend/internal/infrastructure/queue"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/internal/shared/auth"
	"storefront-backend/pkg/logger"
)

// =====================================================
// ORDER SERVICE IMPLEMENTATION
// =====================================================
type orderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      cart.RepositoryInterface
	inventoryRepo invenRepo.RepositoryInterface
	userRepo      user.RepositoryInterface
	discountRepo  discount.RepositoryInterface
	calculator    *discountService.DiscountCalculator
	rewards       reward.Ledger
	delivery      *delivery.Policy
	queue         queue.Enqueuer
	storage       storage.ObjectStorage
	cfg           config.OrderConfig
	now           func() time.Time
}

// Dependencies gom các collaborator của order service (DI từ container)
type Dependencies struct {
	OrderRepo     repository.OrderRepository
	CartRepo      cart.RepositoryInterface
	InventoryRepo invenRepo.RepositoryInterface
	UserRepo      user.RepositoryInterface
	DiscountRepo  discount.RepositoryInterface
	Rewards       reward.Ledger
	Delivery      *delivery.Policy
	Queue         queue.Enqueuer
	Storage       storage.ObjectStorage
	Config        config.OrderConfig
}

// NewOrderService creates a new order service
func NewOrderService(deps Dependencies) OrderService {
	return &orderService{
		orderRepo:     deps.OrderRepo,
		cartRepo:      deps.CartRepo,
		inventoryRepo: deps.InventoryRepo,
		userRepo:      deps.UserRepo,
		discountRepo:  deps.DiscountRepo,
		calculator:    discountService.NewDiscountCalculator(),
		rewards:       deps.Rewards,
		delivery:      deps.Delivery,
		queue:         deps.Queue,
		storage:       deps.Storage,
		cfg:           deps.Config,
		now:           time.Now,
	}
}

// =====================================================
// CREATE ORDER (CHECKOUT TỪ CART)
// =====================================================
// Toàn bộ ghi DB nằm trong một transaction: trừ kho, tạo order + items + history,
// order_history của user, hoàn điểm thừa, clear cart. Lỗi ở bất kỳ bước nào -> rollback hết.
func (s *orderService) CreateOrder(
	ctx context.Context,
	principal auth.Principal,
	req model.CreateOrderRequest,
) (*model.CreateOrderResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Transaction + lock cart
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.orderRepo.RollbackTx(ctx, tx)

	userCart, err := s.cartRepo.GetByUserIDForUpdateWithTx(ctx, tx, principal.UserID)
	if err != nil {
		if errors.Is(err, cartModel.ErrCartNotFound) {
			return nil, model.NewOrderError(model.ErrCodeCartEmpty, "Cart is empty", model.ErrCartEmpty)
		}
		return nil, err
	}
	if userCart.IsEmpty() {
		return nil, model.NewOrderError(model.ErrCodeCartEmpty, "Cart is empty", model.ErrCartEmpty)
	}

	// Step 3: Validate stock cho từng dòng (nêu tên sản phẩm lỗi)
	if err := s.validateStock(ctx, userCart.Items); err != nil {
		return nil, err
	}

	// Step 4: Tính tiền, không tin số tiền client gửi
	subtotal := userCart.Subtotal()
	deliveryCharge := s.delivery.Charge(subtotal)

	discountAmount, err := s.recomputeDiscount(ctx, userCart)
	if err != nil {
		return nil, err
	}

	payable := subtotal.Add(deliveryCharge).Sub(discountAmount)
	rewardAmount, pointsUsed := rewardModel.ClampRedemption(userCart.RewardPoints, payable, s.rewards.PointsPerUnit())
	unusedPoints := userCart.RewardPoints - pointsUsed

	// Step 5: Build order entity
	orderID := uuid.New()
	now := s.now()
	order := &model.Order{
		ID:                   orderID,
		OrderNumber:          model.GenerateOrderNumber(orderID, now),
		UserID:               principal.UserID,
		Status:               model.OrderStatusConfirmed,
		AddressID:            req.AddressID,
		Subtotal:             subtotal,
		DeliveryCharge:       deliveryCharge,
		DiscountCode:         userCart.DiscountCode,
		DiscountAmount:       discountAmount,
		RewardPointsUsed:     pointsUsed,
		RewardDiscountAmount: rewardAmount,
		PaymentMethod:        req.PaymentMethod,
		PaymentStatus:        model.PaymentStatusPending,
		Items:                buildOrderItems(orderID, userCart.Items),
	}
	order.Total = order.CalculateTotal()

	if err := order.Validate(); err != nil {
		return nil, model.NewOrderError(model.ErrCodeInvalidAmount, "Invalid order amounts", err)
	}

	// Step 6: Lock + re-check + trừ kho trong tx
	if err := s.inventoryRepo.DecrementStockWithTx(ctx, tx, stockLines(userCart.Items)); err != nil {
		return nil, mapStockError(err)
	}

	// Step 7: Persist order, items, history
	if err := s.orderRepo.CreateOrderWithTx(ctx, tx, order); err != nil {
		return nil, err
	}

	history := &model.OrderStatusHistory{
		OrderID:   orderID,
		ToStatus:  model.OrderStatusConfirmed,
		ChangedBy: &principal.UserID,
		Source:    model.SourceUser,
	}
	if err := s.orderRepo.CreateStatusHistoryWithTx(ctx, tx, history); err != nil {
		return nil, err
	}

	if err := s.userRepo.AppendOrderHistoryWithTx(ctx, tx, principal.UserID, orderID); err != nil {
		return nil, err
	}

	// Step 8: Điểm đã trừ lúc redeem nhưng clamp không dùng hết -> hoàn lại
	if err := s.rewards.RefundWithTx(ctx, tx, principal.UserID, &orderID, unusedPoints); err != nil {
		return nil, err
	}

	// Step 9: Clear cart TRONG TX
	if err := s.cartRepo.ClearWithTx(ctx, tx, userCart.ID); err != nil {
		return nil, fmt.Errorf("failed to clear cart in transaction: %w", err)
	}

	if err := s.orderRepo.CommitTx(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// ==================== JOBS SAU COMMIT ====================
	s.enqueueAutoProcess(order.ID, s.cfg.AutoProcessDelay)
	s.sendConfirmationEmail(ctx, order, principal.Email)

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      principal.UserID,
		"total":        order.Total.String(),
		"points_used":  pointsUsed,
	})

	return &model.CreateOrderResponse{
		OrderID:              order.ID,
		OrderNumber:          order.OrderNumber,
		Status:               order.Status,
		PaymentMethod:        order.PaymentMethod,
		Subtotal:             order.Subtotal,
		DeliveryCharge:       order.DeliveryCharge,
		DiscountAmount:       order.DiscountAmount,
		RewardPointsUsed:     order.RewardPointsUsed,
		RewardDiscountAmount: order.RewardDiscountAmount,
		Total:                order.Total,
		CreatedAt:            order.CreatedAt,
	}, nil
}

// validateStock kiểm tra theo thứ tự dòng trong cart: sản phẩm tồn tại, stock > 0 và đủ số lượng
func (s *orderService) validateStock(ctx context.Context, items []cartModel.CartItem) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.inventoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	requested := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		requested[item.ProductID] += item.Quantity
	}

	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			return model.NewOrderError(
				model.ErrCodeProductNotFound,
				fmt.Sprintf("Product %s is no longer available", item.ProductName),
				invenModel.NewProductNotFoundError(item.ProductID),
			)
		}
		if !p.InStock(requested[item.ProductID]) {
			return mapStockError(&invenModel.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   requested[item.ProductID],
				Available:   p.Stock,
			})
		}
	}
	return nil
}

// recomputeDiscount tính lại số tiền giảm từ code đang gắn trên cart.
// Cart có thể đã đổi sau khi apply nên không dùng lại cart.DiscountAmount.
func (s *orderService) recomputeDiscount(ctx context.Context, c *cartModel.Cart) (decimal.Decimal, error) {
	if !c.HasDiscount() {
		return decimal.Zero, nil
	}

	d, err := s.discountRepo.GetByCode(ctx, *c.DiscountCode)
	if err != nil {
		if errors.Is(err, discountModel.ErrDiscountNotFound) {
			logger.Warn("Discount attached to cart no longer exists", map[string]interface{}{
				"cart_id": c.ID,
				"code":    *c.DiscountCode,
			})
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	lines := discountService.LinesFromCart(c.Items)
	applicable := s.calculator.ApplicableSubtotal(lines, d.Category)
	return s.calculator.Calculate(d, applicable), nil
}

func buildOrderItems(orderID uuid.UUID, items []cartModel.CartItem) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		})
	}
	return out
}

func stockLines(items []cartModel.CartItem) []invenModel.StockLine {
	lines := make([]invenModel.StockLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, invenModel.StockLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return invenModel.MergeLines(lines)
}

func mapStockError(err error) error {
	var stockErr *invenModel.InsufficientStockError
	if errors.As(err, &stockErr) {
		return model.NewOrderError(model.ErrCodeInsufficientStock, stockErr.Error(), err)
	}
	if errors.Is(err, invenModel.ErrProductNotFound) {
		return model.NewOrderError(model.ErrCodeProductNotFound, "Product is no longer available", err)
	}
	return err
}

// =====================================================
// QUERIES
// =====================================================

func (s *orderService) GetOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*model.OrderDetailResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Không lộ sự tồn tại của order người khác
	if !principal.Owns(order.UserID) {
		return nil, model.ErrOrderNotFound
	}

	history, err := s.orderRepo.GetStatusHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &model.OrderDetailResponse{Order: order, History: history}, nil
}

func (s *orderService) ListOrders(ctx context.Context, principal auth.Principal, req model.ListOrdersRequest) ([]model.Order, int, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	return s.orderRepo.ListOrdersByUserID(ctx, principal.UserID, req)
}

func (s *orderService) ListAllOrders(ctx context.Context, req model.ListOrdersRequest) ([]model.Order, int, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	return s.orderRepo.ListAllOrders(ctx, req)
}

// DeleteOrder: chỉ hard delete order đã kết thúc (cancelled / returned)
func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Status.IsTerminal() {
		return model.NewOrderError(
			model.ErrCodeOrderNotDeletable,
			fmt.Sprintf("Order with status '%s' cannot be deleted", order.Status),
			model.ErrOrderNotDeletable,
		)
	}

	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		return err
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
	return nil
}
