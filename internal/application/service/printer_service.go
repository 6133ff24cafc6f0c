package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/pkg/money"
	"github.com/tewankitchen/pos-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService formats receipts and sends them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	ledger      *LedgerService
	header      entity.ReceiptHeader
	printerType string
	width       int
	loc         *time.Location
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	ledger *LedgerService,
	header entity.ReceiptHeader,
	printerType string,
	width int,
	loc *time.Location,
	log *zap.Logger,
) *PrinterService {
	if loc == nil {
		loc = time.Local
	}
	return &PrinterService{
		printer:     p,
		ledger:      ledger,
		header:      header,
		printerType: printerType,
		width:       width,
		loc:         loc,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintTransaction prints the receipt of a settled transaction. The receipt
// is returned even when printing fails so the caller can show it on screen.
func (s *PrinterService) PrintTransaction(ctx context.Context, id snowflake.ID) (*entity.Receipt, error) {
	tx, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	receipt := s.newReceipt("RECEIPT", tx.TableID, tx.Timestamp, tx.Items, tx.Rates, tx.Breakdown())
	receipt.ReceiptNo = tx.ReceiptNo
	receipt.PaymentMethod = tx.PaymentMethod.String()

	return receipt, s.print(ctx, receipt)
}

// PrintBill prints the pre-payment bill of an occupied table.
func (s *PrinterService) PrintBill(ctx context.Context, bill *Bill) (*entity.Receipt, error) {
	if len(bill.Table.Order) == 0 {
		return nil, ErrNothingToSettle
	}
	receipt := s.newReceipt("BILL", bill.Table.ID, time.Now(), bill.Table.Order, bill.Rates, bill.Breakdown)
	return receipt, s.print(ctx, receipt)
}

func (s *PrinterService) newReceipt(title string, tableID int, at time.Time, items entity.Order, rates money.Rates, b money.Breakdown) *entity.Receipt {
	return &entity.Receipt{
		Header:          s.header,
		Title:           title,
		Date:            at.In(s.loc).Format("2006-01-02 15:04"),
		TableID:         tableID,
		Items:           entity.ReceiptItems(items),
		Subtotal:        b.Subtotal,
		ServicePercent:  rates.ServiceChargePercent,
		ServiceCharge:   b.ServiceCharge,
		TaxPercent:      rates.TaxPercent,
		Tax:             b.Tax,
		DiscountPercent: rates.DiscountPercent,
		Discount:        b.Discount,
		Total:           b.Total,
	}
}

func (s *PrinterService) print(ctx context.Context, r *entity.Receipt) error {
	if err := s.printer.Print(ctx, FormatReceipt(r, s.width)); err != nil {
		s.log.Warn("printer error", zap.String("title", r.Title), zap.Int("table_id", r.TableID), zap.Error(err))
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}
	doc.SetBold(true).Text(r.Title).SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	if r.ReceiptNo != "" {
		doc.KeyValue("Receipt:", r.ReceiptNo)
	}
	doc.KeyValue("Table:", fmt.Sprintf("%d", r.TableID)).
		KeyValue("Date:", r.Date)
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money.Format(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", money.Format(item.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money.Format(r.Subtotal))
	if r.ServiceCharge.IsPositive() {
		doc.KeyValue(fmt.Sprintf("Service %s%%:", r.ServicePercent.String()), money.Format(r.ServiceCharge))
	}
	if r.Tax.IsPositive() {
		doc.KeyValue(fmt.Sprintf("VAT %s%%:", r.TaxPercent.String()), money.Format(r.Tax))
	}
	if r.Discount.IsPositive() {
		doc.KeyValue(fmt.Sprintf("Discount %s%%:", r.DiscountPercent.String()), "-"+money.Format(r.Discount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL (THB):", money.Format(r.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
