package fleet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cylserv/backend/internal/domain/fleet"
	"github.com/cylserv/backend/internal/domain/numbering"
	"github.com/cylserv/backend/internal/domain/partner"
	"github.com/cylserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CylinderService coordinates cylinder mutations. The four batch operations
// carry deliberately different failure semantics:
//
//   - BulkAdd follows PartialCommitOnConflict: units commit one by one and
//     the first serial conflict stops the batch, leaving earlier units in.
//   - BulkDelete attempts every id and reports deleted/failed counts; a
//     per-row failure never aborts the batch.
//   - BulkRefill commits all rows or none.
//
// Single adds behave like a one-unit bulk add.
type CylinderService struct {
	scope        TransactionScope
	cylinderRepo fleet.CylinderRepository
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
	now          func() time.Time
}

// NewCylinderService creates a new CylinderService
func NewCylinderService(scope TransactionScope, cylinderRepo fleet.CylinderRepository, customerRepo partner.CustomerRepository, logger *zap.Logger) *CylinderService {
	return &CylinderService{
		scope:        scope,
		cylinderRepo: cylinderRepo,
		customerRepo: customerRepo,
		logger:       logger.Named("fleet"),
		now:          time.Now,
	}
}

// WithClock overrides the time source. Used in tests.
func (s *CylinderService) WithClock(now func() time.Time) *CylinderService {
	s.now = now
	return s
}

// Add registers one cylinder. Serial allocation (or manual-serial
// validation) and the insert run in one transaction.
func (s *CylinderService) Add(ctx context.Context, req AddCylinderRequest) (*AddCylinderResult, error) {
	if err := s.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	var result *AddCylinderResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		cylinder, err := s.insertUnit(ctx, repos, req)
		if err != nil {
			return err
		}
		result = &AddCylinderResult{ID: cylinder.ID, Serial: cylinder.Serial}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cylinder registered",
		zap.String("serial", result.Serial),
		zap.String("customer_id", req.CustomerID.String()))
	return result, nil
}

// BulkAdd registers a cart of cylinders. Units are inserted sequentially,
// each in its own transaction; on the first serial conflict the batch stops
// and the returned result accounts for everything committed before it,
// alongside the conflict error itself.
func (s *CylinderService) BulkAdd(ctx context.Context, req BulkAddRequest) (*BulkAddResult, error) {
	if err := s.requireCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if len(req.Lines) == 0 {
		return nil, shared.ErrEmptySelection
	}

	units, err := expandLines(req)
	if err != nil {
		return nil, err
	}

	result := &BulkAddResult{}
	var added []addedUnit
	for _, unit := range units {
		var cylinder *fleet.Cylinder
		err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			var err error
			cylinder, err = s.insertUnit(ctx, repos, unit)
			return err
		})
		if err != nil {
			var conflict *shared.SerialConflictError
			if errors.As(err, &conflict) {
				result.AddedSerials = serialsOf(added)
				result.Groups = groupSerials(added)
				result.ConflictSerial = conflict.Serial
				s.logger.Warn("bulk add stopped on serial conflict",
					zap.String("serial", conflict.Serial),
					zap.Int("committed", len(added)))
				return result, err
			}
			return nil, err
		}
		added = append(added, addedUnit{cylinder: cylinder})
	}

	result.AddedSerials = serialsOf(added)
	result.Groups = groupSerials(added)
	s.logger.Info("bulk add completed",
		zap.Int("count", len(added)),
		zap.String("customer_id", req.CustomerID.String()))
	return result, nil
}

// BulkDelete removes the listed cylinders inside one transaction, each id
// attempted independently. Dependent-row failures are counted, not fatal.
func (s *CylinderService) BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, shared.ErrEmptySelection
	}

	result := &BulkDeleteResult{}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, id := range ids {
			if err := repos.Cylinders().Delete(ctx, id); err != nil {
				result.Failed++
				result.FailedIDs = append(result.FailedIDs, id)
				s.logger.Warn("cylinder delete failed",
					zap.String("id", id.String()), zap.Error(err))
				continue
			}
			result.Deleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk delete finished",
		zap.Int("deleted", result.Deleted), zap.Int("failed", result.Failed))
	return result, nil
}

// BulkRefill sets the fill date of every listed cylinder and re-derives its
// expiry as fill + one year, discarding manual overrides. All rows commit
// together or not at all.
func (s *CylinderService) BulkRefill(ctx context.Context, ids []uuid.UUID, fillDate time.Time) (*BulkRefillResult, error) {
	if len(ids) == 0 {
		return nil, shared.ErrEmptySelection
	}
	if fillDate.IsZero() {
		return nil, shared.NewDomainError("MISSING_FILL_DATE", "Refill date is required")
	}

	result := &BulkRefillResult{}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, id := range ids {
			cylinder, err := repos.Cylinders().FindByID(ctx, id)
			if err != nil {
				return fmt.Errorf("refill %s: %w", id, err)
			}
			if err := cylinder.Refill(fillDate); err != nil {
				return err
			}
			if err := repos.Cylinders().Save(ctx, cylinder); err != nil {
				return fmt.Errorf("refill %s: %w", id, err)
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk refill committed",
		zap.Int("updated", result.Updated), zap.Time("fill_date", fillDate))
	return result, nil
}

// Get returns one cylinder with its tier computed at read time
func (s *CylinderService) Get(ctx context.Context, id uuid.UUID) (*CylinderResponse, error) {
	cylinder, err := s.cylinderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := NewCylinderResponse(cylinder, s.now())
	return &resp, nil
}

// List returns cylinders matching the filter. tier, when non-empty, keeps
// only cylinders classifying into that tier at read time.
func (s *CylinderService) List(ctx context.Context, filter shared.Filter, tier fleet.Tier) ([]CylinderResponse, error) {
	cylinders, err := s.cylinderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]CylinderResponse, 0, len(cylinders))
	for i := range cylinders {
		resp := NewCylinderResponse(&cylinders[i], now)
		if tier != "" && resp.Tier != tier {
			continue
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ListByCustomer returns a customer's cylinders with computed tiers
func (s *CylinderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]CylinderResponse, error) {
	cylinders, err := s.cylinderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]CylinderResponse, len(cylinders))
	for i := range cylinders {
		responses[i] = NewCylinderResponse(&cylinders[i], now)
	}
	return responses, nil
}

// DueForService returns the outbound-call worklist: every cylinder already
// expired or inside the due-soon window, soonest expiry first. The store
// query compares raw instants while tiers compare calendar dates, so it
// over-fetches past the window and the classifier makes the final cut; the
// worklist can never disagree with the tier a Get reports.
func (s *CylinderService) DueForService(ctx context.Context) ([]CylinderResponse, error) {
	now := s.now()
	cutoff := now.AddDate(0, 0, fleet.DueSoonWindowDays+2)
	cylinders, err := s.cylinderRepo.FindExpiringBy(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	responses := make([]CylinderResponse, 0, len(cylinders))
	for i := range cylinders {
		resp := NewCylinderResponse(&cylinders[i], now)
		if resp.Tier == fleet.TierNormal {
			continue
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// insertUnit allocates-or-validates a serial and inserts one cylinder. It
// must run inside a transaction scope so the counter increment commits with
// the row it numbers.
func (s *CylinderService) insertUnit(ctx context.Context, repos TransactionalRepositories, req AddCylinderRequest) (*fleet.Cylinder, error) {
	serial := req.ManualSerial
	if serial != "" {
		taken, err := repos.Cylinders().ExistsBySerial(ctx, serial)
		if err != nil {
			return nil, fmt.Errorf("check serial: %w", err)
		}
		if taken {
			return nil, shared.NewSerialConflictError(serial)
		}
	} else {
		year := req.FillDate.Year()
		seq, err := repos.Counters().Next(ctx, numbering.CategoryCylinder, year)
		if err != nil {
			return nil, fmt.Errorf("allocate serial: %w", err)
		}
		serial = numbering.FormatSerial(numbering.CategoryCylinder, year, seq)
	}

	cylinder, err := fleet.NewCylinder(req.CustomerID, serial, req.Category, req.Weight, req.FillDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if req.Location != "" {
		cylinder.SetLocation(req.Location)
	}

	if err := repos.Cylinders().Save(ctx, cylinder); err != nil {
		return nil, fmt.Errorf("insert cylinder: %w", err)
	}
	return cylinder, nil
}

func (s *CylinderService) requireCustomer(ctx context.Context, customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("MISSING_CUSTOMER", "A customer must be selected")
	}
	exists, err := s.customerRepo.ExistsByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}
	return nil
}

type addedUnit struct {
	cylinder *fleet.Cylinder
}

// expandLines turns cart lines into per-unit requests, honoring quantity.
// A manual serial cannot be repeated, so it is only legal on a single-unit
// line.
func expandLines(req BulkAddRequest) ([]AddCylinderRequest, error) {
	var units []AddCylinderRequest
	for _, line := range req.Lines {
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
		}
		if line.ManualSerial != "" && quantity > 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "A manual serial is only valid for a single unit")
		}
		for i := 0; i < quantity; i++ {
			units = append(units, AddCylinderRequest{
				CustomerID:   req.CustomerID,
				Category:     line.Category,
				Weight:       line.Weight,
				FillDate:     line.FillDate,
				ExpiryDate:   line.ExpiryDate,
				ManualSerial: line.ManualSerial,
			})
		}
	}
	if len(units) == 0 {
		return nil, shared.ErrEmptySelection
	}
	return units, nil
}

func serialsOf(added []addedUnit) []string {
	return lo.Map(added, func(u addedUnit, _ int) string {
		return u.cylinder.Serial
	})
}

// groupSerials buckets minted serials by (category, weight) for label
// printing counts.
func groupSerials(added []addedUnit) []SerialGroup {
	type groupKey struct {
		category string
		weight   string
	}

	buckets := lo.GroupBy(added, func(u addedUnit) groupKey {
		return groupKey{category: u.cylinder.Category, weight: u.cylinder.Weight.String()}
	})

	keys := lo.Keys(buckets)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].weight < keys[j].weight
	})
	groups := make([]SerialGroup, 0, len(keys))
	for _, key := range keys {
		units := buckets[key]
		weight, _ := decimal.NewFromString(key.weight)
		groups = append(groups, SerialGroup{
			Category: key.category,
			Weight:   weight,
			Count:    len(units),
			Serials:  serialsOf(units),
		})
	}
	return groups
}
