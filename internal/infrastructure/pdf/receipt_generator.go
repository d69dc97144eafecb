// Package pdf renders the printable order receipt.
//
// A5 layout:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: vendor name  │  order id + date     │
//	│  ────────────────────────────────────────    │
//	│  CUSTOMER: username / matric / phone         │
//	│  ────────────────────────────────────────    │
//	│  TABLE: item | qty | unit price | total      │
//	│  ────────────────────────────────────────    │
//	│  STATUS + TOTAL                              │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/turbocafe/turbocafe-api/internal/application/usecase"
	"github.com/turbocafe/turbocafe-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 190, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implements usecase.ReceiptGenerator using Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator builds the generator.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{}
}

// GenerateOrderReceipt renders the receipt and returns its bytes.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(_ context.Context, order *repository.OrderDetail) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order Receipt", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: vendor name (left), short order id + date (right).
func headerRow(order *repository.OrderDetail) core.Row {
	vendor := order.VendorName
	if vendor == "" {
		vendor = "TurboCafe vendor"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(vendor, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Campus food order receipt", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDER "+shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// customerRow: who placed the order.
func customerRow(order *repository.OrderDetail) core.Row {
	contact := order.Username
	if order.MatricNumber != "" {
		contact += "   |   Matric: " + order.MatricNumber
	}
	if order.UserPhone != "" {
		contact += "   |   Tel: " + order.UserPhone
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("CUSTOMER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(contact, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(6, "Item"),
		headerCell(2, "Qty"),
		headerCell(2, "Unit"),
		headerCell(2, "Total"),
	)
}

func headerCell(size int, label string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}),
	)
}

func itemRow(order *repository.OrderDetail) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(order.MenuItemName, props.Text{Size: 8})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", order.Quantity), props.Text{Size: 8})),
		col.New(2).Add(text.New(order.MenuItemPrice.StringFixed(2), props.Text{Size: 8})),
		col.New(2).Add(text.New(order.TotalPrice.StringFixed(2), props.Text{Size: 8})),
	)
}

func totalsRow(order *repository.OrderDetail) core.Row {
	return row.New(10).Add(
		col.New(6).Add(
			text.New("Status: "+strings.ToUpper(string(order.Status)), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("TOTAL  "+order.TotalPrice.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1, Color: colorPrimary,
			}),
		),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
