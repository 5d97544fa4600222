// internal/export/csv_test.go
package export

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libtrack/internal/catalog"
	"libtrack/internal/ledger"
	"libtrack/internal/membership"
)

func TestWriteItems(t *testing.T) {
	items := []*catalog.Item{
		{Type: catalog.TypeBook, Name: "1984", Creator: "George Orwell", Available: true},
		{Type: catalog.TypeBook, Name: "Brave New World", Creator: "Aldous Huxley", Available: false},
	}

	var sb strings.Builder
	require.NoError(t, WriteItems(&sb, items))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,creator,available", lines[0])
	assert.Equal(t, "1984,George Orwell,true", lines[1])
	assert.Equal(t, "Brave New World,Aldous Huxley,false", lines[2])
}

func TestWriteUsersOmitsCredentials(t *testing.T) {
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	users := []*membership.User{
		{Username: "admin", PasswordHash: "secret-hash", Role: membership.RoleAdmin},
		{Username: "user1", PasswordHash: "secret-hash", Role: membership.RoleUser, SubscriptionEnd: &end, Fines: 7},
	}

	var sb strings.Builder
	require.NoError(t, WriteUsers(&sb, users))

	out := sb.String()
	assert.NotContains(t, out, "secret-hash")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "username,role,subscription_end,fines", lines[0])
	assert.Equal(t, "admin,admin,,0.00", lines[1])
	assert.Equal(t, "user1,user,2024-06-01,7.00", lines[2])
}

func TestWriteLoans(t *testing.T) {
	issued := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	due := issued.AddDate(0, 0, 15)
	returned := issued.AddDate(0, 0, 5)

	records := []*ledger.LoanRecord{
		{
			ID:        uuid.New(),
			Username:  "user1",
			ItemType:  catalog.TypeBook,
			ItemName:  "1984",
			IssueDate: issued,
			DueDate:   due,
			Status:    ledger.StatusIssued,
		},
		{
			ID:         uuid.New(),
			Username:   "user2",
			ItemType:   catalog.TypeMovie,
			ItemName:   "Inception",
			IssueDate:  issued,
			DueDate:    due,
			ReturnDate: &returned,
			Status:     ledger.StatusReturned,
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteLoans(&sb, records))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "username,item_name,item_type,issue_date,due_date,return_date,status", lines[0])
	assert.Equal(t, "user1,1984,Book,2024-03-01,2024-03-16,,Issued", lines[1])
	assert.Equal(t, "user2,Inception,Movie,2024-03-01,2024-03-16,2024-03-06,Returned", lines[2])
}

func TestWriteItemsEmpty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteItems(&sb, nil))
	assert.Equal(t, "name,creator,available\n", sb.String())
}
