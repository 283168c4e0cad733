// internal/domain/bank/match.go
package bank

import "strings"

// FindPayment returns the first transaction whose description contains
// keyword case-insensitively and whose amount is strictly positive
// (incoming funds only). There is no amount-equality requirement: the
// matched transaction's amount is recorded as-is.
func FindPayment(transactions []Transaction, keyword string) (Transaction, bool) {
	needle := strings.ToLower(keyword)
	for _, tx := range transactions {
		if strings.Contains(strings.ToLower(tx.Description), needle) && tx.Amount.IsPositive() {
			return tx, true
		}
	}
	return Transaction{}, false
}
