package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinicore/internal/apierror"
	"clinicore/internal/config"
	"clinicore/internal/dto"
	"clinicore/internal/infra"
	"clinicore/internal/metrics"
	"clinicore/internal/model"
	"clinicore/internal/repository"
	"clinicore/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BillingService is the billing engine: it computes bill totals, persists
// bills with their inventory side effects, and renders invoices.
//
// Bill lifecycle: Computed -> Persisted -> {Rendered, Edited, Deleted}.
// A persisted bill can be re-rendered and edited any number of times.
type BillingService interface {
	Generate(ctx context.Context, req dto.GenerateBillRequest) (*dto.BillResponse, []byte, error)
	List(ctx context.Context) ([]dto.BillResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBillRequest) (*dto.BillResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	DownloadPDF(ctx context.Context, id uuid.UUID) (*model.Bill, []byte, error)
	DownloadDOCX(ctx context.Context, id uuid.UUID) (*model.Bill, []byte, error)
	// RenderToCache warms the redis PDF cache; used by the worker pool.
	RenderToCache(ctx context.Context, id uuid.UUID) error
}

type billingService struct {
	repo       repository.BillRepository
	stockRepo  repository.StockRepository
	tmpl       *infra.TemplateStore
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
	cfg        *config.Config
	// storeName identifies which logical store this engine serves; it rides
	// along on render jobs so the worker picks the same store.
	storeName string
}

func NewBillingService(
	repo repository.BillRepository,
	stockRepo repository.StockRepository,
	tmpl *infra.TemplateStore,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
	storeName string,
) BillingService {
	return &billingService{
		repo:       repo,
		stockRepo:  stockRepo,
		tmpl:       tmpl,
		rdb:        rdb,
		dispatcher: dispatcher,
		cfg:        cfg,
		storeName:  storeName,
	}
}

const pdfCacheTTL = 24 * time.Hour

// ── Generate ─────────────────────────────────────────────────────────────────

func (s *billingService) Generate(ctx context.Context, req dto.GenerateBillRequest) (*dto.BillResponse, []byte, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, nil, apierror.Validation("Bill id is required.")
	}
	if req.TypeOfPayment != model.PaymentUPI && req.TypeOfPayment != model.PaymentCash {
		return nil, nil, apierror.Validation("typeOfPayment must be UPI or Cash.")
	}
	products, notes, err := splitLines(req.Type, req.Items)
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.repo.FindByBillNo(ctx, req.ID); err == nil {
		return nil, nil, apierror.Conflict("Bill id already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	st := computeStatement(req.Type, products, notes, req.Discount, req.ConsultingFee, req.TreatmentFee)

	bill := &model.Bill{
		BillNo:        req.ID,
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		BillType:      req.Type,
		PaymentMethod: req.TypeOfPayment,
		Date:          req.Date,
		DiscountPct:   req.Discount,
		ConsultingFee: req.ConsultingFee,
		TreatmentFee:  req.TreatmentFee,
		Items:         statementToItems(st),
	}

	// Stock check and decrement are one conditional UPDATE per line, inside
	// the same transaction as the bill row: concurrent bills for the same
	// product can never oversell, and a failed line rolls everything back.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, bill); err != nil {
			// The precheck above is advisory; a concurrent insert of the
			// same bill id lands here via the unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierror.Conflict("Bill id already exists.")
			}
			return err
		}
		for _, line := range products {
			if err := s.decrementStockTx(tx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}
	metrics.BillsGenerated.Inc()

	pdf, err := s.renderPDF(ctx, bill, st)
	if err != nil {
		return nil, nil, err
	}
	s.cachePDF(ctx, bill, pdf)

	return billToResponse(bill, st), pdf, nil
}

// splitLines converts request items into the tagged line variants. Product
// bills carry stock-backed lines; every other type gets note lines only.
func splitLines(billType string, items []dto.BillItemRequest) ([]ProductLine, []NoteLine, error) {
	if billType == model.BillTypeProduct {
		if len(items) == 0 {
			return nil, nil, apierror.Validation("items must be a non-empty list.")
		}
		products := make([]ProductLine, 0, len(items))
		for _, it := range items {
			if it.Quantity < 1 {
				return nil, nil, apierror.Validation(fmt.Sprintf("Item %q needs a quantity of at least 1.", it.Description))
			}
			products = append(products, ProductLine{
				Description: it.Description,
				HSN:         it.HSN,
				GSTPct:      it.GST,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
		}
		return products, nil, nil
	}

	notes := make([]NoteLine, 0, len(items))
	for _, it := range items {
		notes = append(notes, NoteLine{Description: it.Description})
	}
	return nil, notes, nil
}

func (s *billingService) decrementStockTx(tx *gorm.DB, line ProductLine) error {
	n, err := s.stockRepo.DecrementIfAvailableTx(tx, line.Description, line.Quantity)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	item, err := s.stockRepo.FindByProductNameTx(tx, line.Description)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.NotFound(fmt.Sprintf("No stock item matches %q.", line.Description))
	}
	if err != nil {
		return err
	}
	return apierror.InsufficientStock(
		fmt.Sprintf("Insufficient stock for %q: %d available.", line.Description, item.Quantity))
}

// ── Ledger operations ────────────────────────────────────────────────────────

func (s *billingService) List(ctx context.Context) ([]dto.BillResponse, error) {
	bills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BillResponse, len(bills))
	for i := range bills {
		resp[i] = *billToResponse(&bills[i], s.recompute(&bills[i]))
	}
	return resp, nil
}

func (s *billingService) Get(ctx context.Context, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Bill not found.")
	}
	return billToResponse(bill, s.recompute(bill)), nil
}

// Update replaces items and discount only. Type and fees never change; by
// default edits are clerical corrections that do not touch inventory, unless
// the reconcile policy is enabled.
func (s *billingService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBillRequest) (*dto.BillResponse, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Bill not found.")
	}

	products, notes, err := splitLines(bill.BillType, req.Items)
	if err != nil {
		return nil, err
	}
	st := computeStatement(bill.BillType, products, notes, req.Discount, bill.ConsultingFee, bill.TreatmentFee)
	newItems := statementToItems(st)

	oldItems := bill.Items
	reconcile := s.cfg != nil && s.cfg.BillEditReconcileStock && bill.BillType == model.BillTypeProduct

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if reconcile {
			for _, it := range oldItems {
				if it.Quantity > 0 {
					if _, err := s.stockRepo.AddQuantityByProductNameTx(tx, it.Description, it.Quantity); err != nil {
						return err
					}
				}
			}
			for _, line := range products {
				if err := s.decrementStockTx(tx, line); err != nil {
					return err
				}
			}
		}
		bill.DiscountPct = req.Discount
		return s.repo.ReplaceItemsTx(tx, bill, newItems)
	})
	if txErr != nil {
		return nil, txErr
	}

	bill.Items = newItems
	bill.UpdatedAt = time.Now()
	s.dispatcher.EnqueueRender(ctx, s.storeName, bill.ID)
	return billToResponse(bill, st), nil
}

func (s *billingService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierror.NotFound("Bill not found.")
	}
	return nil
}

func (s *billingService) DeleteAll(ctx context.Context) error {
	_, err := s.repo.DeleteAll(ctx)
	return err
}

// ── Rendering ────────────────────────────────────────────────────────────────

// recompute re-derives the statement from stored items. Stored aggregates
// are display-only; downloads must reproduce the creation-time formula.
func (s *billingService) recompute(bill *model.Bill) *Statement {
	var products []ProductLine
	var notes []NoteLine
	if bill.BillType == model.BillTypeProduct {
		for _, it := range bill.Items {
			products = append(products, ProductLine{
				Description: it.Description,
				HSN:         it.HSNCode,
				GSTPct:      it.GSTPct,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
		}
	} else {
		for _, it := range bill.Items {
			notes = append(notes, NoteLine{Description: it.Description})
		}
	}
	return computeStatement(bill.BillType, products, notes, bill.DiscountPct, bill.ConsultingFee, bill.TreatmentFee)
}

func (s *billingService) DownloadPDF(ctx context.Context, id uuid.UUID) (*model.Bill, []byte, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, apierror.NotFound("Bill not found.")
	}

	if s.rdb != nil {
		if data, err := s.rdb.Get(ctx, s.cacheKey(bill)).Bytes(); err == nil {
			metrics.RenderCacheHits.Inc()
			return bill, data, nil
		}
	}

	pdf, err := s.renderPDF(ctx, bill, s.recompute(bill))
	if err != nil {
		return nil, nil, err
	}
	s.cachePDF(ctx, bill, pdf)
	return bill, pdf, nil
}

func (s *billingService) DownloadDOCX(ctx context.Context, id uuid.UUID) (*model.Bill, []byte, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, apierror.NotFound("Bill not found.")
	}
	data, err := s.tmpl.RenderDOCX(s.buildInvoice(bill, s.recompute(bill)))
	if err != nil {
		return nil, nil, err
	}
	metrics.InvoicesRendered.WithLabelValues("docx").Inc()
	return bill, data, nil
}

func (s *billingService) RenderToCache(ctx context.Context, id uuid.UUID) error {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	pdf, err := s.renderPDF(ctx, bill, s.recompute(bill))
	if err != nil {
		return err
	}
	s.cachePDF(ctx, bill, pdf)
	return nil
}

func (s *billingService) renderPDF(ctx context.Context, bill *model.Bill, st *Statement) ([]byte, error) {
	timeout := 30 * time.Second
	if s.cfg != nil && s.cfg.RenderTimeoutSeconds > 0 {
		timeout = time.Duration(s.cfg.RenderTimeoutSeconds) * time.Second
	}
	renderCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pdf, err := infra.RenderInvoicePDF(renderCtx, s.buildInvoice(bill, st))
	if err != nil {
		return nil, err
	}
	metrics.InvoicesRendered.WithLabelValues("pdf").Inc()
	return pdf, nil
}

func (s *billingService) buildInvoice(bill *model.Bill, st *Statement) *infra.Invoice {
	inv := &infra.Invoice{
		BillNo:         bill.BillNo,
		PatientName:    bill.Name,
		Phone:          bill.Phone,
		Address:        bill.Address,
		Date:           bill.Date,
		BillType:       bill.BillType,
		PaymentMethod:  bill.PaymentMethod,
		ItemSubtotal:   st.ItemSubtotal,
		FeeLabel:       st.FeeLabel,
		FeeAmount:      st.FeeAmount,
		Subtotal:       st.Subtotal,
		DiscountPct:    st.DiscountPct,
		DiscountAmount: st.DiscountAmount,
		Total:          st.Total,
	}
	if s.cfg != nil {
		inv.Clinic = infra.Letterhead{
			Name:    s.cfg.ClinicName,
			Address: s.cfg.ClinicAddress,
			Phone:   s.cfg.ClinicPhone,
			GSTIN:   s.cfg.ClinicGSTIN,
		}
	}
	for _, row := range st.Rows {
		inv.Lines = append(inv.Lines, infra.InvoiceLine{
			Description: row.Description,
			HSN:         row.HSN,
			Quantity:    row.Quantity,
			Price:       row.Price,
			GSTPct:      row.GSTPct,
			GSTAmount:   row.GSTAmount,
			Amount:      row.FinalAmount,
			Product:     row.Product,
		})
	}
	return inv
}

// cacheKey versions by UpdatedAt, so edits naturally invalidate: the stale
// entry is never read again and expires with its TTL.
func (s *billingService) cacheKey(bill *model.Bill) string {
	return fmt.Sprintf("invoice:pdf:%s:%d", bill.ID, bill.UpdatedAt.Unix())
}

func (s *billingService) cachePDF(ctx context.Context, bill *model.Bill, pdf []byte) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, s.cacheKey(bill), pdf, pdfCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("bill_no", bill.BillNo).Msg("failed to cache rendered invoice")
	}
}

func statementToItems(st *Statement) []model.BillItem {
	items := make([]model.BillItem, 0, len(st.Rows))
	for _, row := range st.Rows {
		items = append(items, model.BillItem{
			Description: row.Description,
			HSNCode:     row.HSN,
			Quantity:    row.Quantity,
			Price:       row.Price,
			GSTPct:      row.GSTPct,
			BaseTotal:   row.BaseTotal,
			GSTAmount:   row.GSTAmount,
			FinalAmount: row.FinalAmount,
		})
	}
	return items
}

func billToResponse(bill *model.Bill, st *Statement) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(st.Rows))
	for _, row := range st.Rows {
		items = append(items, dto.BillItemResponse{
			Description: row.Description,
			Price:       row.Price,
			HSN:         row.HSN,
			Quantity:    row.Quantity,
			GST:         row.GSTPct,
			BaseTotal:   row.BaseTotal,
			GSTAmount:   row.GSTAmount,
			FinalAmount: row.FinalAmount,
		})
	}
	return &dto.BillResponse{
		BillID:        bill.ID.String(),
		ID:            bill.BillNo,
		Name:          bill.Name,
		Phone:         bill.Phone,
		Address:       bill.Address,
		Date:          bill.Date,
		Type:          bill.BillType,
		TypeOfPayment: bill.PaymentMethod,
		Discount:      bill.DiscountPct,
		ConsultingFee: bill.ConsultingFee,
		TreatmentFee:  bill.TreatmentFee,
		Items:         items,
		Subtotal:      st.Subtotal,
		DiscountAmt:   st.DiscountAmount,
		Total:         st.Total,
		CreatedAt:     bill.CreatedAt.Format(time.RFC3339),
	}
}
