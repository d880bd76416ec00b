package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/allisson/datashare/internal/app"

	accountsDomain "github.com/allisson/datashare/internal/accounts/domain"
	transactionsDomain "github.com/allisson/datashare/internal/transactions/domain"
)

var demoProducts = []struct {
	category string
	name     string
}{
	{"TRANS_AND_SAVINGS_ACCOUNTS", "Everyday Saver"},
	{"CRED_AND_CHRG_CARDS", "Platinum Rewards Card"},
	{"TERM_DEPOSITS", "Fixed Term Deposit"},
}

var demoDescriptions = []string{
	"Grocery store purchase",
	"Salary deposit",
	"Electricity bill payment",
	"Coffee shop",
	"Online subscription",
}

// RunSeedDemoData inserts a demo customer with accounts and transactions for local
// development. All rows are written in a single database transaction, so a partial
// seed never lands. The internal account identifiers are printed so they can be
// cross-checked against the tokenized values the API returns.
func RunSeedDemoData(
	ctx context.Context,
	container *app.Container,
	w io.Writer,
	customerID string,
	numAccounts int,
	numTransactions int,
) error {
	if customerID == "" {
		return fmt.Errorf("customer-id is required")
	}
	if numAccounts < 1 || numTransactions < 0 {
		return fmt.Errorf("accounts must be >= 1 and transactions must be >= 0")
	}

	txManager, err := container.TxManager()
	if err != nil {
		return fmt.Errorf("failed to initialize transaction manager: %w", err)
	}

	accountRepo, err := container.AccountRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize account repository: %w", err)
	}

	transactionRepo, err := container.TransactionRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize transaction repository: %w", err)
	}

	now := time.Now().UTC()
	accountIDs := make([]string, 0, numAccounts)

	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		for i := 0; i < numAccounts; i++ {
			product := demoProducts[i%len(demoProducts)]
			account := &accountsDomain.Account{
				ID:              uuid.NewString(),
				CustomerID:      customerID,
				DisplayName:     fmt.Sprintf("%s %d", product.name, i+1),
				Nickname:        fmt.Sprintf("demo-%d", i+1),
				MaskedNumber:    fmt.Sprintf("xxxx-%04d", 1000+i),
				ProductCategory: product.category,
				ProductName:     product.name,
				OpenStatus:      accountsDomain.OpenStatusOpen,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := account.Validate(); err != nil {
				return fmt.Errorf("demo account is invalid: %w", err)
			}
			if err := accountRepo.Create(ctx, account); err != nil {
				return fmt.Errorf("failed to create demo account: %w", err)
			}
			accountIDs = append(accountIDs, account.ID)

			for j := 0; j < numTransactions; j++ {
				executionAt := now.AddDate(0, 0, -j)
				transaction := &transactionsDomain.Transaction{
					ID:          uuid.NewString(),
					AccountID:   account.ID,
					Status:      transactionsDomain.StatusPosted,
					Description: demoDescriptions[j%len(demoDescriptions)],
					Reference:   fmt.Sprintf("REF-%d-%d", i+1, j+1),
					Amount:      decimal.NewFromFloat(-12.5).Mul(decimal.NewFromInt(int64(j + 1))),
					Currency:    "AUD",
					ExecutionAt: executionAt,
					CreatedAt:   now,
				}
				// Most recent transaction stays pending, without a posting date
				if j == 0 {
					transaction.Status = transactionsDomain.StatusPending
				} else {
					postingAt := executionAt.Add(24 * time.Hour)
					transaction.PostingAt = &postingAt
				}
				if err := transactionRepo.Create(ctx, transaction); err != nil {
					return fmt.Errorf("failed to create demo transaction: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "seeded customer %q with %d accounts and %d transactions per account\n",
		customerID, numAccounts, numTransactions)
	for _, id := range accountIDs {
		fmt.Fprintf(w, "account: %s\n", id)
	}
	return nil
}
