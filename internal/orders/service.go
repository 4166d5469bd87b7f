package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/balasre/pharmacare-backend/internal/addresses"
	"github.com/balasre/pharmacare-backend/internal/products"
	"github.com/balasre/pharmacare-backend/internal/users"
	"github.com/balasre/pharmacare-backend/pkg/config"
	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/balasre/pharmacare-backend/pkg/logger"
	"github.com/balasre/pharmacare-backend/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type userLoader interface {
	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.User, error)
}

type addressProvider interface {
	FindOrCreate(ctx context.Context, tx *gorm.DB, input addresses.FindOrCreateInput) (*models.Address, error)
}

type catalog interface {
	ResolveOrCreate(ctx context.Context, tx *gorm.DB, name string, price int) (*models.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID int64, qty int) (bool, error)
	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Product, error)
}

type prescriptionStore interface {
	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Prescription, error)
	OnOrderDelivered(ctx context.Context, tx *gorm.DB, order *models.Order) (func(context.Context), error)
}

type userEngine struct{ repo *users.Repository }

func (e userEngine) FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.User, error) {
	return e.repo.WithTx(tx).FindByID(ctx, id)
}

type addressEngine struct{ repo *addresses.Repository }

func (e addressEngine) FindOrCreate(ctx context.Context, tx *gorm.DB, input addresses.FindOrCreateInput) (*models.Address, error) {
	return e.repo.WithTx(tx).FindOrCreate(ctx, input)
}

type catalogEngine struct{ repo *products.Repository }

func (e catalogEngine) ResolveOrCreate(ctx context.Context, tx *gorm.DB, name string, price int) (*models.Product, error) {
	return e.repo.WithTx(tx).ResolveOrCreate(ctx, name, price)
}

func (e catalogEngine) DecrementStock(ctx context.Context, tx *gorm.DB, productID int64, qty int) (bool, error) {
	return e.repo.WithTx(tx).DecrementStock(ctx, productID, qty)
}

func (e catalogEngine) FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Product, error) {
	return e.repo.WithTx(tx).FindByID(ctx, id)
}

// Service executes order placement and the admin order operations.
type Service interface {
	Place(ctx context.Context, userID int64, input PlaceOrderInput) (*PlaceOrderResult, error)
	GetForUser(ctx context.Context, userID, orderID int64) (*View, error)
	ListForUser(ctx context.Context, userID int64) ([]View, error)
	ListAll(ctx context.Context) ([]View, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error
	LinkPrescription(ctx context.Context, orderID, prescriptionID int64) error
}

type service struct {
	repo          *Repository
	tx            txRunner
	usersRepo     userLoader
	addressRepo   addressProvider
	catalog       catalog
	prescriptions prescriptionStore
	delivery      config.DeliveryConfig
	metrics       *metrics.OrderMetrics
	logg          *logger.Logger
}

// NewService builds the orders service with the required dependencies.
func NewService(
	repo *Repository,
	tx txRunner,
	usersRepo *users.Repository,
	addressRepo *addresses.Repository,
	productsRepo *products.Repository,
	prescriptions prescriptionStore,
	delivery config.DeliveryConfig,
	orderMetrics *metrics.OrderMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if usersRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if addressRepo == nil {
		return nil, fmt.Errorf("addresses repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if prescriptions == nil {
		return nil, fmt.Errorf("prescription store required")
	}
	return &service{
		repo:          repo,
		tx:            tx,
		usersRepo:     userEngine{repo: usersRepo},
		addressRepo:   addressEngine{repo: addressRepo},
		catalog:       catalogEngine{repo: productsRepo},
		prescriptions: prescriptions,
		delivery:      delivery,
		metrics:       orderMetrics,
		logg:          logg,
	}, nil
}

func (s *service) Place(ctx context.Context, userID int64, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	deliveryType, err := enums.ParseDeliveryType(input.DeliveryType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery type")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order contains no items")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid quantity for %q", item.Name))
		}
		if item.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid price for %q", item.Name))
		}
	}

	fee := s.deliveryFee(deliveryType)
	subtotal := 0
	for _, item := range input.Items {
		subtotal += item.Qty * item.Price
	}
	total := subtotal + fee

	var result *PlaceOrderResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, loadErr := s.usersRepo.FindByID(ctx, tx, userID); loadErr != nil {
			if errors.Is(loadErr, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return loadErr
		}

		if input.PrescriptionID != nil {
			prescription, loadErr := s.prescriptions.FindByID(ctx, tx, *input.PrescriptionID)
			if loadErr != nil {
				if errors.Is(loadErr, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "prescription not found")
				}
				return loadErr
			}
			if prescription.UserID != userID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "prescription belongs to a different user")
			}
		}

		address, addrErr := s.addressRepo.FindOrCreate(ctx, tx, addresses.FindOrCreateInput{
			UserID:        userID,
			RecipientName: strings.TrimSpace(input.CustomerName),
			Phone:         strings.TrimSpace(input.Phone),
			Street:        input.StreetAddress,
			City:          input.City,
		})
		if addrErr != nil {
			return addrErr
		}

		order := &models.Order{
			UserID:         userID,
			Total:          total,
			Status:         enums.OrderStatusPending,
			DeliveryType:   deliveryType,
			PaymentMethod:  strings.TrimSpace(input.PaymentMethod),
			AddressID:      address.ID,
			DeliveryFee:    fee,
			PrescriptionID: input.PrescriptionID,
		}
		if _, createErr := repo.Create(ctx, order); createErr != nil {
			return createErr
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			product, resolveErr := s.catalog.ResolveOrCreate(ctx, tx, strings.TrimSpace(item.Name), item.Price)
			if resolveErr != nil {
				return resolveErr
			}

			ok, decErr := s.catalog.DecrementStock(ctx, tx, product.ID, item.Qty)
			if decErr != nil {
				return decErr
			}
			if !ok {
				available := 0
				if current, stockErr := s.catalog.FindByID(ctx, tx, product.ID); stockErr == nil {
					available = current.Stock
				}
				return pkgerrors.New(pkgerrors.CodeStockConflict, "insufficient stock").
					WithDetails(map[string]any{
						"product":   product.Name,
						"requested": item.Qty,
						"available": available,
					})
			}

			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Qty:         item.Qty,
				Price:       item.Price,
			})
		}

		if itemsErr := repo.CreateItems(ctx, items); itemsErr != nil {
			return itemsErr
		}

		result = &PlaceOrderResult{
			OrderID:     order.ID,
			Total:       total,
			DeliveryFee: fee,
		}
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeStockConflict {
			s.metrics.IncStockConflict()
		}
		return nil, err
	}

	s.metrics.IncPlaced(deliveryType)
	s.metrics.ObserveOrderValue(total)
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"order_id": result.OrderID,
			"total":    result.Total,
		}), "order placed")
	}
	return result, nil
}

func (s *service) deliveryFee(deliveryType enums.DeliveryType) int {
	if deliveryType == enums.DeliveryTypeExpress {
		return s.delivery.ExpressFee
	}
	return s.delivery.StandardFee
}

func (s *service) GetForUser(ctx context.Context, userID, orderID int64) (*View, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	view := toView(order)
	return &view, nil
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]View, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

func (s *service) ListAll(ctx context.Context) ([]View, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

// UpdateStatus overwrites the order status. The transition into delivered
// additionally applies the configured prescription retention policy when the
// order carries a linked prescription.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	next := enums.OrderStatus(strings.TrimSpace(status))
	if next == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}

	var afterCommit func(context.Context)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}

		becameDelivered := next == enums.OrderStatusDelivered && order.Status != enums.OrderStatusDelivered

		if err := repo.UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}

		if becameDelivered && order.PrescriptionID != nil {
			followUp, err := s.prescriptions.OnOrderDelivered(ctx, tx, order)
			if err != nil {
				return err
			}
			afterCommit = followUp
		}
		return nil
	})
	if err != nil {
		return err
	}
	if afterCommit != nil {
		afterCommit(ctx)
	}
	return nil
}

func (s *service) LinkPrescription(ctx context.Context, orderID, prescriptionID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return err
		}

		prescription, err := s.prescriptions.FindByID(ctx, tx, prescriptionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "prescription not found")
			}
			return err
		}
		if prescription.UserID != order.UserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "prescription belongs to a different user")
		}

		return repo.LinkPrescription(ctx, orderID, prescriptionID)
	})
}

func toView(order *models.Order) View {
	view := View{
		ID:             order.ID,
		UserID:         order.UserID,
		Total:          order.Total,
		Status:         order.Status,
		DeliveryType:   order.DeliveryType,
		PaymentMethod:  order.PaymentMethod,
		DeliveryFee:    order.DeliveryFee,
		PrescriptionID: order.PrescriptionID,
		CreatedAt:      order.CreatedAt,
	}
	if order.Address != nil {
		view.Street = order.Address.Street
		view.City = order.Address.City
	}
	view.Items = make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view.Items = append(view.Items, ItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Qty:         item.Qty,
			Price:       item.Price,
		})
	}
	return view
}

func toViews(list []models.Order) []View {
	views := make([]View, 0, len(list))
	for i := range list {
		views = append(views, toView(&list[i]))
	}
	return views
}
