package repos

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"ucpmerchant/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID            string  `db:"id"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
	BuyerName     string  `db:"buyer_name"`
	BuyerEmail    string  `db:"buyer_email"`
	Subtotal      float64 `db:"subtotal"`
	Total         float64 `db:"total"`
	PaymentToken  string  `db:"payment_token"`
	PaymentStatus string  `db:"payment_status"`
	PaymentNote   string  `db:"payment_note"`
}

type orderItemRow struct {
	ProductID       string  `db:"product_id"`
	ProductName     string  `db:"product_name"`
	Qty             int     `db:"qty"`
	UnitPrice       float64 `db:"unit_price"`
	LineTotal       float64 `db:"line_total"`
	FulfillmentJSON string  `db:"fulfillment_json"`
}

// Insert writes the full order in one transaction. Order ids are generated,
// so a duplicate key here is an internal invariant violation and surfaces as
// a plain error.
func (r *OrderRepo) Insert(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, seq, status, created_at, buyer_name, buyer_email, subtotal, total,
	     payment_token, payment_status, payment_note)
	  VALUES
	    (?, (SELECT COALESCE(MAX(seq),0)+1 FROM orders), ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.OrderID, o.Status, o.CreatedAt, o.Buyer.Name, o.Buyer.Email,
		o.Totals.Subtotal, o.Totals.Total,
		o.Payment.Token, o.Payment.Status, o.Payment.Note); err != nil {
		return err
	}

	for i, li := range o.LineItems {
		fj, err := json.Marshal(o.Fulfillment[i])
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`
		  INSERT INTO order_items
		    (order_id, seq, product_id, product_name, qty, unit_price, line_total, fulfillment_json)
		  VALUES (?,?,?,?,?,?,?,?)
		`, o.OrderID, i, li.ProductID, li.ProductName, li.Quantity, li.UnitPrice, li.Total, string(fj)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get reassembles a stored order; sql.ErrNoRows on miss.
func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `
	  SELECT id, status, created_at, buyer_name, buyer_email, subtotal, total,
	         payment_token, payment_status, payment_note
	  FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, err
	}
	return r.assemble(row)
}

// ListRecent returns the most-recently-inserted limit orders in insertion
// order (oldest of the window first).
func (r *OrderRepo) ListRecent(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []orderRow
	if err := r.db.Select(&rows, `
	  SELECT id, status, created_at, buyer_name, buyer_email, subtotal, total,
	         payment_token, payment_status, payment_note
	  FROM orders ORDER BY seq DESC LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		o, err := r.assemble(rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Count returns the total number of stored orders.
func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) assemble(row orderRow) (domain.Order, error) {
	var items []orderItemRow
	if err := r.db.Select(&items, `
	  SELECT product_id, product_name, qty, unit_price, line_total, fulfillment_json
	  FROM order_items WHERE order_id = ? ORDER BY seq
	`, row.ID); err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		OrderID:   row.ID,
		Status:    row.Status,
		Sandbox:   true,
		CreatedAt: row.CreatedAt,
		Buyer:     domain.Buyer{Name: row.BuyerName, Email: row.BuyerEmail},
		Totals:    domain.Totals{Subtotal: row.Subtotal, Total: row.Total},
		Payment:   domain.Payment{Token: row.PaymentToken, Status: row.PaymentStatus, Note: row.PaymentNote},
	}
	for _, it := range items {
		o.LineItems = append(o.LineItems, domain.PricedLineItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Qty,
			UnitPrice:   it.UnitPrice,
			Total:       it.LineTotal,
		})
		var fr domain.FulfillmentRecord
		if err := json.Unmarshal([]byte(it.FulfillmentJSON), &fr); err != nil {
			return domain.Order{}, err
		}
		o.Fulfillment = append(o.Fulfillment, fr)
	}
	return o, nil
}
