// internal/app/check_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"rentlite/internal/domain/bank"
	"rentlite/internal/domain/notify"
	"rentlite/internal/domain/property"
	"rentlite/internal/domain/rentcheck"
	"rentlite/internal/domain/schedule"
	"rentlite/internal/domain/user"
	idb "rentlite/internal/infra/database" // For sentinel errors

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultSearchWindowDays is how far either side of the due date the
// transaction search extends.
const DefaultSearchWindowDays = 7

// RentCheckService defines the operations for evaluating rent payments.
type RentCheckService interface {
	// CheckProperty runs a check for a single property's most recently
	// elapsed due-date cycle. It is the manual-trigger path: it does not
	// consult eligibility and may create an additional RentCheck for a
	// cycle the batch already covered.
	CheckProperty(ctx context.Context, propertyID uuid.UUID) rentcheck.Result

	// CheckAllProperties runs the daily batch: every property whose rent
	// fell due yesterday and has not been checked since is evaluated.
	// One property's failure never aborts the batch.
	CheckAllProperties(ctx context.Context) []rentcheck.Result
}

// RentCheckServiceImpl implements RentCheckService.
type RentCheckServiceImpl struct {
	propertyRepo     property.Repository
	checkRepo        rentcheck.Repository
	userRepo         user.Repository
	bankFactory      bank.ClientFactory
	notifier         notify.Sender
	mirror           notify.Sender // optional secondary channel, best-effort
	calc             *schedule.Calculator
	searchWindowDays int
	now              func() time.Time
	logger           *logrus.Entry
}

func NewRentCheckService(
	propertyRepo property.Repository,
	checkRepo rentcheck.Repository,
	userRepo user.Repository,
	bankFactory bank.ClientFactory,
	notifier notify.Sender,
	calc *schedule.Calculator,
	searchWindowDays int,
	logger *logrus.Entry,
) *RentCheckServiceImpl {
	if searchWindowDays <= 0 {
		searchWindowDays = DefaultSearchWindowDays
	}
	return &RentCheckServiceImpl{
		propertyRepo:     propertyRepo,
		checkRepo:        checkRepo,
		userRepo:         userRepo,
		bankFactory:      bankFactory,
		notifier:         notifier,
		calc:             calc,
		searchWindowDays: searchWindowDays,
		now:              time.Now,
		logger:           logger,
	}
}

// SetMirror attaches an optional secondary notification channel (e.g.
// Telegram). Mirror failures are logged and never affect the check.
func (s *RentCheckServiceImpl) SetMirror(m notify.Sender) { s.mirror = m }

// SetClock overrides the service's time source. Intended for tests.
func (s *RentCheckServiceImpl) SetClock(now func() time.Time) { s.now = now }

func (s *RentCheckServiceImpl) CheckProperty(ctx context.Context, propertyID uuid.UUID) rentcheck.Result {
	log := s.logger.WithField("property_id", propertyID)

	prop, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		log.WithError(err).Error("Failed to load property for rent check")
		if err == idb.ErrPropertyNotFound {
			return errorResult(propertyID, "Property not found")
		}
		return errorResult(propertyID, fmt.Sprintf("failed to load property: %v", err))
	}

	dueDate := s.calc.ElapsedDueDate(prop.RentDueDay, prop.RentFrequency, s.now())
	return s.checkCycle(ctx, prop, dueDate)
}

func (s *RentCheckServiceImpl) CheckAllProperties(ctx context.Context) []rentcheck.Result {
	now := s.now()
	yesterday := schedule.Midnight(now).AddDate(0, 0, -1)
	log := s.logger.WithField("cycle_cutoff", yesterday.Format("2006-01-02"))
	log.Info("Starting daily rent check batch")

	properties, err := s.propertyRepo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list properties for batch run")
		return nil
	}

	results := make([]rentcheck.Result, 0)
	for _, prop := range properties {
		propLog := log.WithField("property_id", prop.ID)

		// Eligible only when rent fell due exactly yesterday: the check
		// runs the day after the due date, never same-day and never
		// retroactively for older cycles.
		dueDate := s.calc.ElapsedDueDate(prop.RentDueDay, prop.RentFrequency, now)
		if !dueDate.Equal(yesterday) {
			continue
		}

		existing, err := s.checkRepo.FindRecentForProperty(ctx, prop.ID, yesterday)
		if err != nil && err != idb.ErrCheckNotFound {
			propLog.WithError(err).Error("Failed to look up existing rent check")
			results = append(results, rentcheck.Result{
				PropertyID: prop.ID,
				Address:    prop.Address,
				TenantName: prop.TenantName,
				Err:        fmt.Sprintf("failed to look up existing check: %v", err),
			})
			continue
		}
		if existing != nil {
			propLog.WithField("existing_check_id", existing.ID).Info("Property already checked this cycle. Skipping.")
			continue
		}

		results = append(results, s.checkCycle(ctx, prop, dueDate))
	}

	log.WithField("checked", len(results)).Info("Daily rent check batch complete")
	return results
}

// checkCycle evaluates one property against one due-date cycle: fetch
// transactions in the window around dueDate, match, persist, notify.
// All failures up to persistence are converted into Result.Err.
func (s *RentCheckServiceImpl) checkCycle(ctx context.Context, prop *property.Property, dueDate time.Time) rentcheck.Result {
	log := s.logger.WithFields(logrus.Fields{
		"property_id":   prop.ID,
		"rent_due_date": dueDate.Format("2006-01-02"),
	})
	log.Info("Checking rent payment")

	owner, err := s.userRepo.GetByID(ctx, prop.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load property owner")
		return propErrorResult(prop, fmt.Sprintf("failed to load owner: %v", err))
	}

	client, err := s.bankFactory.ClientForUser(ctx, prop.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to build aggregator client")
		return propErrorResult(prop, err.Error())
	}

	matched, amount, err := s.findPayment(ctx, client, prop.KeywordMatch, dueDate)
	if err != nil {
		log.WithError(err).Error("Failed to search transactions")
		return propErrorResult(prop, err.Error())
	}

	check := &rentcheck.RentCheck{
		ID:           uuid.New(),
		PropertyID:   prop.ID,
		CheckDate:    s.now(),
		RentDueDate:  dueDate,
		RentReceived: matched,
	}
	if amount != nil {
		check.Amount = decimal.NullDecimal{Decimal: *amount, Valid: true}
	}
	if err := s.checkRepo.Create(ctx, check); err != nil {
		log.WithError(err).Error("Failed to persist rent check")
		return propErrorResult(prop, fmt.Sprintf("failed to record check: %v", err))
	}
	log.WithFields(logrus.Fields{
		"check_id":      check.ID,
		"rent_received": matched,
	}).Info("Rent check recorded")

	status := notify.RentStatus{
		LandlordEmail:   owner.Email,
		TenantEmail:     prop.TenantEmail,
		PropertyAddress: prop.Address,
		TenantName:      prop.TenantName,
		Received:        matched,
		DueDate:         dueDate,
		Amount:          amount,
		NotifyTenant:    prop.NotifyTenantOnMissed,
	}

	landlordNotified := true
	tenantNotified := prop.NotifyTenantOnMissed && !matched && prop.TenantEmail != ""
	if err := s.notifier.SendRentStatus(ctx, status); err != nil {
		// Notification failure must not block recording the outcome.
		log.WithError(err).Error("Failed to send rent status notification")
		landlordNotified = false
		tenantNotified = false
	}
	if s.mirror != nil {
		if err := s.mirror.SendRentStatus(ctx, status); err != nil {
			log.WithError(err).Warn("Failed to mirror rent status notification")
		}
	}

	if err := s.checkRepo.UpdateNotified(ctx, check.ID, landlordNotified, tenantNotified); err != nil {
		log.WithError(err).Error("Failed to update notification flags on rent check")
	}

	return rentcheck.Result{
		PropertyID:   prop.ID,
		Address:      prop.Address,
		TenantName:   prop.TenantName,
		RentDueDate:  dueDate,
		RentReceived: matched,
		Amount:       amount,
	}
}

// findPayment searches every linked account for the first transaction
// matching the property's keyword within the window around dueDate.
// Accounts are queried sequentially and the search stops at the first
// match to bound load on the aggregator API.
func (s *RentCheckServiceImpl) findPayment(ctx context.Context, client bank.Client, keyword string, dueDate time.Time) (bool, *decimal.Decimal, error) {
	start := dueDate.AddDate(0, 0, -s.searchWindowDays)
	end := dueDate.AddDate(0, 0, s.searchWindowDays)

	accounts, err := client.Accounts(ctx)
	if err != nil {
		return false, nil, err
	}

	for _, account := range accounts {
		transactions, err := client.Transactions(ctx, account.ID, start, end)
		if err != nil {
			return false, nil, err
		}
		if tx, ok := bank.FindPayment(transactions, keyword); ok {
			amount := tx.Amount
			return true, &amount, nil
		}
	}
	return false, nil, nil
}

// errorResult is used when the property itself could not be loaded.
func errorResult(propertyID uuid.UUID, msg string) rentcheck.Result {
	return rentcheck.Result{
		PropertyID: propertyID,
		Address:    "Unknown",
		TenantName: "Unknown",
		Err:        msg,
	}
}

func propErrorResult(prop *property.Property, msg string) rentcheck.Result {
	return rentcheck.Result{
		PropertyID: prop.ID,
		Address:    prop.Address,
		TenantName: prop.TenantName,
		Err:        msg,
	}
}
