package cart

import (
	"fmt"

	"github.com/fjod/chess_academy/internal/domain"
)

var (
	ErrInvalidLine   = fmt.Errorf("%w: invalid cart line", domain.ErrValidation)
	ErrAlreadyOwned  = fmt.Errorf("%w: item already purchased", domain.ErrValidation)
	ErrAlreadyInCart = fmt.Errorf("%w: item already in cart", domain.ErrValidation)
)
