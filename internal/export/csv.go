// internal/export/csv.go
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"libtrack/internal/catalog"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
)

// WriteItems serializes catalog items as CSV with a header row.
func WriteItems(w io.Writer, items []*catalog.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "creator", "available"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write([]string{item.Name, item.Creator, strconv.FormatBool(item.Available)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUsers serializes accounts as CSV. Credential material is never
// exported.
func WriteUsers(w io.Writer, users []*membership.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"username", "role", "subscription_end", "fines"}); err != nil {
		return err
	}
	for _, user := range users {
		end := ""
		if user.SubscriptionEnd != nil {
			end = user.SubscriptionEnd.Format(time.DateOnly)
		}
		record := []string{
			user.Username,
			string(user.Role),
			end,
			strconv.FormatFloat(user.Fines, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLoans serializes the full loan history as CSV.
func WriteLoans(w io.Writer, records []*ledger.LoanRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"username", "item_name", "item_type", "issue_date", "due_date", "return_date", "status"}); err != nil {
		return err
	}
	for _, record := range records {
		returned := ""
		if record.ReturnDate != nil {
			returned = record.ReturnDate.Format(time.DateOnly)
		}
		row := []string{
			record.Username,
			record.ItemName,
			string(record.ItemType),
			record.IssueDate.Format(time.DateOnly),
			record.DueDate.Format(time.DateOnly),
			returned,
			string(record.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
