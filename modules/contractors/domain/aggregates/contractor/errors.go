package contractor

import "github.com/facilops/facilops/pkg/serrors"

var (
	ErrNotFound  = serrors.NewError("CONTRACTOR_NOT_FOUND", "contractor not found", "")
	ErrDuplicate = serrors.NewError("CONTRACTOR_DUPLICATE", "contractor already exists", "")
)
