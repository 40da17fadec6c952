package checkout

import (
	"fmt"

	"github.com/fjod/chess_academy/internal/domain"
)

var (
	ErrEmptyCart        = fmt.Errorf("%w: cart is empty, nothing to checkout", domain.ErrValidation)
	ErrUnknownAIPackage = fmt.Errorf("%w: unknown AI package", domain.ErrValidation)
)
