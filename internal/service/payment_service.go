package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/price"
	"github.com/stripe/stripe-go/v74/product"

	"github.com/snapgather/snapgather-backend/internal/models"
	"github.com/snapgather/snapgather-backend/internal/repository"
	"github.com/snapgather/snapgather-backend/pkg/payment"
)

type PaymentService struct {
	stripeService *payment.StripeService
	userRepo      *repository.UserRepository
	packageRepo   *repository.CreditPackageRepository
	purchaseRepo  *repository.UserCreditPurchaseRepository
}

func NewPaymentService(
	stripeService *payment.StripeService,
	userRepo *repository.UserRepository,
	packageRepo *repository.CreditPackageRepository,
	purchaseRepo *repository.UserCreditPurchaseRepository,
) *PaymentService {
	return &PaymentService{
		stripeService: stripeService,
		userRepo:      userRepo,
		packageRepo:   packageRepo,
		purchaseRepo:  purchaseRepo,
	}
}

func (s *PaymentService) CreateCheckoutSession(userID uint, packageID uint) (*models.CheckoutSession, error) {
	creditPackage, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	productParams := &stripe.ProductParams{
		Name: stripe.String(creditPackage.Name),
		Description: stripe.String(fmt.Sprintf("%d events, %d photos",
			creditPackage.EventLimit,
			creditPackage.PhotoLimit)),
	}
	prod, err := product.New(productParams)
	if err != nil {
		return nil, err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(int64(creditPackage.Price * 100)),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
	}
	p, err := price.New(priceParams)
	if err != nil {
		return nil, err
	}

	session, err := s.stripeService.CreateCheckoutSession(
		user.Email,
		p.ID,
		map[string]string{
			"user_id":    strconv.FormatUint(uint64(userID), 10),
			"package_id": strconv.FormatUint(uint64(packageID), 10),
		},
	)
	if err != nil {
		return nil, err
	}

	purchase := &models.UserCreditPurchase{
		UserID:          userID,
		PackageID:       packageID,
		EventLimit:      creditPackage.EventLimit,
		PhotoLimit:      creditPackage.PhotoLimit,
		Price:           creditPackage.Price,
		StripeSessionID: session.ID,
		Status:          models.PurchaseStatusPending,
	}

	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

func (s *PaymentService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
		if err != nil {
			return err
		}

		purchase.Status = models.PurchaseStatusCompleted
		if err := s.purchaseRepo.Update(purchase); err != nil {
			return err
		}

		user, err := s.userRepo.GetByID(purchase.UserID)
		if err != nil {
			return err
		}

		user.EventLimit += purchase.EventLimit
		user.PhotoLimit += purchase.PhotoLimit
		return s.userRepo.Update(user)

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
		if err != nil {
			return err
		}

		purchase.Status = models.PurchaseStatusFailed
		return s.purchaseRepo.Update(purchase)
	}

	return nil
}

func (s *PaymentService) GetCreditPackages() ([]models.CreditPackage, error) {
	return s.packageRepo.GetAll()
}

func (s *PaymentService) GetUserPurchaseHistory(userID uint) ([]models.UserCreditPurchase, error) {
	return s.purchaseRepo.GetUserPurchaseHistory(userID)
}
