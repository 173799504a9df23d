package stock

import (
	"context"
	"strings"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerMetrics receives a notification for every committed ledger entry
type LedgerMetrics interface {
	LedgerTransactionApplied(txType string)
}

// LedgerService applies stock movements to materials
type LedgerService struct {
	txRepo  stock.TransactionRepository
	txScope TransactionScope
	metrics LedgerMetrics
	logger  *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(txRepo stock.TransactionRepository, txScope TransactionScope, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		txRepo:  txRepo,
		txScope: txScope,
		logger:  logger,
	}
}

// SetMetrics sets the metrics sink
func (s *LedgerService) SetMetrics(m LedgerMetrics) {
	s.metrics = m
}

// ApplyTransaction records a movement and updates the material's quantity on
// hand in one database transaction. Checks run in order: material exists,
// type is known, quantity is non-zero. Nothing is written when any check fails.
func (s *LedgerService) ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*ApplyTransactionResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "apply")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrMaterialID, req.MaterialID.String(),
		telemetry.SpanAttrTxType, req.Type,
		telemetry.SpanAttrQuantity, req.Quantity.String(),
	)

	var (
		entry  *stock.Transaction
		newQty decimal.Decimal
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		material, err := repos.MaterialRepo().FindByID(ctx, req.MaterialID)
		if err != nil {
			return err
		}

		txType, err := stock.ParseTransactionType(req.Type)
		if err != nil {
			return err
		}
		if req.Quantity.IsZero() {
			return stock.ErrZeroQuantity
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return err
		}

		entry, err = stock.NewTransaction(material.ID, txType, req.Quantity, date, req.Note)
		if err != nil {
			return err
		}
		if err := repos.TransactionRepo().Create(ctx, entry); err != nil {
			return err
		}
		newQty, err = repos.MaterialRepo().AddQuantity(ctx, material.ID, entry.Delta())
		return err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.LedgerTransactionApplied(entry.Type.String())
	}
	s.logger.Info("Stock transaction applied",
		zap.String("material_id", entry.MaterialID.String()),
		zap.String("type", entry.Type.String()),
		zap.String("quantity", entry.Quantity.String()),
		zap.String("quantity_on_hand", newQty.String()),
	)

	return &ApplyTransactionResult{
		Transaction:    ToTransactionResponse(entry),
		QuantityOnHand: newQty,
	}, nil
}

// ListTransactions returns ledger entries newest first
func (s *LedgerService) ListTransactions(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	}
	if filter.MaterialID != nil {
		domainFilter.Filters["material_id"] = *filter.MaterialID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	rows, err := s.txRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransactionResponses(rows), total, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, shared.NewValidationError("date must be YYYY-MM-DD")
	}
	return d, nil
}
