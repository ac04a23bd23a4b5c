package services

import (
	"errors"

	"github.com/dmitrijs2005/quizhub/internal/common"
)

// storageError tags a failed database step with message. Failures to begin
// or commit keep the transaction kind.
func storageError(message string, err error) error {
	if errors.Is(err, common.ErrorTransaction) {
		return common.NewError(common.ErrorTransaction, message, err)
	}
	return common.NewError(common.ErrorStorage, message, err)
}
